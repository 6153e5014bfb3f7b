package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// WebSocketHandler upgrades HTTP requests and pumps relay events between the
// connection and the hub.
type WebSocketHandler struct {
	hub           *Hub
	allowedOrigin string
}

// NewWebSocketHandler creates a new WebSocket handler over hub.
func NewWebSocketHandler(hub *Hub, allowedOrigin string) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, allowedOrigin: allowedOrigin}
}

// wsSender serializes writes to one connection; the websocket library allows
// a single concurrent writer.
type wsSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSender) send(event string, payload any) {
	data, err := json.Marshal(Envelope{Event: event, Payload: payload})
	if err != nil {
		slog.Error("relay envelope marshal failed", "event", event, "error", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.Write(context.Background(), websocket.MessageText, data); err != nil {
		slog.Debug("relay write failed", "event", event, "error", err)
	}
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("failed to accept relay WebSocket", "error", err, "ip", r.RemoteAddr)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("failed to close relay websocket", "error", closeErr)
		}
	}()

	client := h.hub.Connect(uuid.NewString(), &wsSender{conn: ws})
	defer h.hub.Disconnect(client)

	h.readLoop(r.Context(), ws, client)
}

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowedOrigin == "*" || origin == h.allowedOrigin {
		return true
	}
	slog.Warn("relay WebSocket origin rejected", "origin", origin, "allowed", h.allowedOrigin)
	return false
}

type inboundEnvelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func (h *WebSocketHandler) readLoop(ctx context.Context, ws *websocket.Conn, client *Client) {
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("relay WebSocket closed by client", "sid", client.SID)
			} else {
				slog.Warn("relay WebSocket read error", "sid", client.SID, "error", err)
			}
			return
		}

		var env inboundEnvelope
		if err := json.Unmarshal(data, &env); err != nil || env.Event == "" {
			slog.Debug("relay frame rejected", "sid", client.SID, "error", err)
			continue
		}
		h.hub.Dispatch(client, env.Event, env.Payload)
	}
}
