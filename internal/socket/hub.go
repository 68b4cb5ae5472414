// internal/socket/hub.go
package socket

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub tracks connected storefront clients and fans notices out to them.
type Hub struct {
	// clients maps a connection ID to its websocket connection.
	clients map[string]*websocket.Conn
	// mu guards the clients map across handler goroutines.
	mu  sync.RWMutex
	log *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
		log:     log,
	}
}

// Register adds a new client to the hub.
func (h *Hub) Register(clientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientID] = conn
	h.log.Infof("WebSocket client registered: %s", clientID)
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[clientID]; ok {
		delete(h.clients, clientID)
		h.log.Infof("WebSocket client unregistered: %s", clientID)
	}
}

// Broadcast sends a message to every connected client. A client that
// cannot be written to is not treated as a hard error; it will drop off
// through its read loop.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for clientID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.log.Warnf("WebSocket write to %s failed: %v", clientID, err)
		}
	}
}

// Notify implements the catalog repository's notifier: operation notices
// are broadcast to every storefront client as a small JSON envelope.
func (h *Hub) Notify(kind, message string) {
	payload, err := json.Marshal(notice{Type: "notice", Kind: kind, Message: message})
	if err != nil {
		return
	}
	h.Broadcast(payload)
}

type notice struct {
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
