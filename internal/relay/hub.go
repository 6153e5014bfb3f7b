// Package relay provides the WebSocket relay for direct chat and mock call
// signaling between a customer and an agent. The relay never inspects
// message content: it registers identities, manages rooms, and forwards
// events to room peers.
package relay

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Envelope is the wire frame for every relay event, both directions.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// Peer describes one connection inside a room.
type Peer struct {
	SID    string `json:"sid"`
	UserID string `json:"userId"`
}

// sender delivers events to one connection. The WebSocket handler provides
// the real implementation; tests substitute their own.
type sender interface {
	send(event string, payload any)
}

// Client is one registered connection. UserID stays empty until the client
// identifies itself.
type Client struct {
	SID    string
	UserID string
	out    sender
}

// Hub tracks connections, identities, and room membership.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	byUser  map[string]map[*Client]struct{}
	inRooms map[*Client]map[string]struct{}
}

// NewHub creates an empty relay hub.
func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]map[*Client]struct{}),
		byUser:  make(map[string]map[*Client]struct{}),
		inRooms: make(map[*Client]map[string]struct{}),
	}
}

// DMRoom names the direct-message room for a user pair. The pair is sorted
// so both sides compute the same room.
func DMRoom(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return "dm:" + strings.Join(pair, ":")
}

// Connect registers a new connection with the hub.
func (h *Hub) Connect(sid string, out sender) *Client {
	c := &Client{SID: sid, out: out}
	h.mu.Lock()
	h.inRooms[c] = make(map[string]struct{})
	h.mu.Unlock()
	slog.Info("relay client connected", "sid", sid)
	return c
}

// Disconnect removes the connection from its identity and all rooms.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.UserID != "" {
		if set, ok := h.byUser[c.UserID]; ok {
			delete(set, c)
			if len(set) == 0 {
				delete(h.byUser, c.UserID)
			}
		}
	}
	for room := range h.inRooms[c] {
		h.removeFromRoom(c, room)
	}
	delete(h.inRooms, c)
	slog.Info("relay client disconnected", "sid", c.SID, "user_id", c.UserID)
}

// Register binds a user identity to the connection and acknowledges it.
func (h *Hub) Register(c *Client, userID string) {
	if userID == "" {
		return
	}
	h.bind(c, userID)
	c.out.send("auth:ok", map[string]string{"userId": userID})
	slog.Info("relay client registered", "sid", c.SID, "user_id", userID)
}

// bind records the identity without the auth acknowledgment. Generic room
// joins may carry an identity too.
func (h *Hub) bind(c *Client, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.UserID = userID
	if _, ok := h.byUser[userID]; !ok {
		h.byUser[userID] = make(map[*Client]struct{})
	}
	h.byUser[userID][c] = struct{}{}
}

// OpenDM joins the initiator to the pair room, announces presence, and rings
// every connection of the target user.
func (h *Hub) OpenDM(c *Client, toUserID string) {
	if c.UserID == "" || toUserID == "" {
		return
	}
	room := DMRoom(c.UserID, toUserID)
	h.Join(c, room)

	c.out.send("dm:pending", map[string]string{"room": room, "toUserId": toUserID})

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.byUser[toUserID]))
	for t := range h.byUser[toUserID] {
		targets = append(targets, t)
	}
	h.mu.RUnlock()
	for _, t := range targets {
		t.out.send("dm:request", map[string]string{"room": room, "fromUserId": c.UserID})
	}
	slog.Info("dm opened", "from", c.UserID, "to", toUserID, "room", room)
}

// JoinDM joins a pair room directly. Once both sides are present the room is
// announced ready.
func (h *Hub) JoinDM(c *Client, room string) {
	if room == "" {
		return
	}
	h.Join(c, room)

	h.mu.RLock()
	size := len(h.rooms[room])
	h.mu.RUnlock()
	if size >= 2 {
		h.Broadcast(room, "dm:ready", map[string]string{"room": room})
	}
}

// Join adds the connection to a room and announces the new presence list.
func (h *Hub) Join(c *Client, room string) {
	if room == "" {
		return
	}
	h.mu.Lock()
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	h.inRooms[c][room] = struct{}{}
	h.mu.Unlock()

	h.emitPresence(room)
}

// Leave removes the connection from a room and announces the change.
func (h *Hub) Leave(c *Client, room string) {
	if room == "" {
		return
	}
	h.mu.Lock()
	h.removeFromRoom(c, room)
	delete(h.inRooms[c], room)
	h.mu.Unlock()

	h.emitPresence(room)
}

// removeFromRoom must be called with h.mu held.
func (h *Hub) removeFromRoom(c *Client, room string) {
	if set, ok := h.rooms[room]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Peers lists the connections currently in a room.
func (h *Hub) Peers(room string) []Peer {
	h.mu.RLock()
	defer h.mu.RUnlock()
	peers := make([]Peer, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		uid := c.UserID
		if uid == "" {
			uid = "unknown"
		}
		peers = append(peers, Peer{SID: c.SID, UserID: uid})
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i].SID < peers[j].SID })
	return peers
}

type presenceList struct {
	Room  string `json:"room"`
	Peers []Peer `json:"peers"`
}

// SendPresence sends the room's presence list to one connection.
func (h *Hub) SendPresence(c *Client, room string) {
	if room == "" {
		return
	}
	c.out.send("presence:list", presenceList{Room: room, Peers: h.Peers(room)})
}

func (h *Hub) emitPresence(room string) {
	h.Broadcast(room, "presence:list", presenceList{Room: room, Peers: h.Peers(room)})
}

// Broadcast sends an event to every connection in the room, sender included.
func (h *Hub) Broadcast(room, event string, payload any) {
	for _, c := range h.members(room) {
		c.out.send(event, payload)
	}
}

// Relay sends an event to every connection in the room except from. This is
// the chat path: the sender already rendered its own message locally, so an
// echo would duplicate it.
func (h *Hub) Relay(from *Client, room, event string, payload any) {
	for _, c := range h.members(room) {
		if c != from {
			c.out.send(event, payload)
		}
	}
}

func (h *Hub) members(room string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		out = append(out, c)
	}
	return out
}
