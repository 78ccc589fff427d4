// Package websocket delivers in-app notifications to connected clients in
// real time. The durable record lives in the in-app store; this layer is
// best-effort fan-out to whoever is online.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/doktu-co/notify/internal/model"
)

// Message is one real-time event pushed to a client.
type Message struct {
	Type         string                   `json:"type"`
	Notification *model.InAppNotification `json:"notification,omitempty"`
}

// Hub maintains the set of active WebSocket clients grouped by user.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[int64]map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub under its user.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.clients[c.userID] == nil {
		h.clients[c.userID] = make(map[*Client]struct{})
	}
	h.clients[c.userID][c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set, ok := h.clients[c.userID]; ok {
		if _, ok := set[c]; ok {
			delete(set, c)
			close(c.send)
		}
		if len(set) == 0 {
			delete(h.clients, c.userID)
		}
	}
	h.mu.Unlock()
}

// Notify pushes a freshly delivered in-app notification to all of the
// user's connected clients. Offline users miss nothing: they read the
// in-app store on next load.
func (h *Hub) Notify(userID int64, n *model.InAppNotification) {
	msg := Message{Type: "notification", Notification: n}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal notification message", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		select {
		case c.send <- data:
		default:
			// Client buffer full — drop rather than block delivery
		}
	}
}

// ClientCount returns the number of connected clients across all users.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}
