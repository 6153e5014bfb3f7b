package relay

import (
	"encoding/json"
	"log/slog"
)

type roomPayload struct {
	Room   string `json:"room"`
	UserID string `json:"userId"`
}

type authPayload struct {
	UserID string `json:"userId"`
}

type dmOpenPayload struct {
	ToUserID string `json:"toUserId"`
}

type framePayload struct {
	Room string `json:"room"`
	Data string `json:"data"`
}

// Dispatch routes one inbound event. Unknown events and malformed payloads
// are dropped; a relay peer gets no error channel.
func (h *Hub) Dispatch(c *Client, event string, payload json.RawMessage) {
	switch event {
	case "auth:register":
		var p authPayload
		if unmarshal(payload, &p) {
			h.Register(c, p.UserID)
		}

	case "dm:open":
		var p dmOpenPayload
		if unmarshal(payload, &p) {
			h.OpenDM(c, p.ToUserID)
		}

	case "dm:join":
		var p roomPayload
		if unmarshal(payload, &p) {
			h.JoinDM(c, p.Room)
		}

	case "presence:get":
		var p roomPayload
		if unmarshal(payload, &p) {
			h.SendPresence(c, p.Room)
		}

	case "chat:send":
		// The message body is forwarded untouched; only the room is read.
		var p roomPayload
		if unmarshal(payload, &p) && p.Room != "" {
			h.Relay(c, p.Room, "chat:new", payload)
		}

	case "typing":
		var p roomPayload
		if unmarshal(payload, &p) && p.Room != "" {
			h.Relay(c, p.Room, "typing", nil)
		}

	case "call:invite":
		var p roomPayload
		if unmarshal(payload, &p) && p.Room != "" {
			h.Relay(c, p.Room, "call:ringing", map[string]string{"fromUserId": c.UserID})
		}

	case "call:accept":
		h.relayCallEvent(c, payload, "call:accepted")

	case "call:decline":
		h.relayCallEvent(c, payload, "call:declined")

	case "call:hangup":
		h.relayCallEvent(c, payload, "call:ended")

	case "call:frame":
		var p framePayload
		if unmarshal(payload, &p) && p.Room != "" && p.Data != "" {
			h.Relay(c, p.Room, "call:frame", map[string]string{"data": p.Data})
		}

	case "join":
		var p roomPayload
		if unmarshal(payload, &p) && p.Room != "" {
			if p.UserID != "" {
				h.bind(c, p.UserID)
			}
			h.Join(c, p.Room)
		}

	case "leave":
		var p roomPayload
		if unmarshal(payload, &p) {
			h.Leave(c, p.Room)
		}

	default:
		slog.Debug("relay event ignored", "event", event, "sid", c.SID)
	}
}

func (h *Hub) relayCallEvent(c *Client, payload json.RawMessage, event string) {
	var p roomPayload
	if unmarshal(payload, &p) && p.Room != "" {
		h.Relay(c, p.Room, event, map[string]string{})
	}
}

func unmarshal(payload json.RawMessage, v any) bool {
	if len(payload) == 0 {
		return false
	}
	if err := json.Unmarshal(payload, v); err != nil {
		slog.Debug("relay payload rejected", "error", err)
		return false
	}
	return true
}
