package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub tracks open connections per user so schedule events can be pushed to
// every tab/device a user has open.
type Hub struct {
	mu    sync.RWMutex
	users map[uuid.UUID]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		users: make(map[uuid.UUID]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.users[userID] == nil {
		h.users[userID] = make(map[*websocket.Conn]bool)
	}
	h.users[userID][conn] = true
	log.Printf("ws: client connected for user %s (total: %d)", userID, len(h.users[userID]))
}

func (h *Hub) RemoveConnection(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.users[userID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.users, userID)
		}
		log.Printf("ws: client disconnected for user %s", userID)
	}
}

func (h *Hub) Broadcast(userID uuid.UUID, message WSMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.users[userID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}
