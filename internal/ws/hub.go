package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"social-media-service/internal/models"
	"social-media-service/internal/observability"
)

// Hub maintains active feed subscribers: a firehose room receiving
// every message event, and per-account rooms receiving only events for
// messages posted by that account.
type Hub struct {
	firehose     map[*websocket.Conn]bool
	accountRooms map[int]map[*websocket.Conn]bool
	connInfo     map[*websocket.Conn]ConnInfo
	mu           sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		firehose:     make(map[*websocket.Conn]bool),
		accountRooms: make(map[int]map[*websocket.Conn]bool),
		connInfo:     make(map[*websocket.Conn]ConnInfo),
	}
}

// AddFirehoseClient registers a connection on the firehose feed.
func (h *Hub) AddFirehoseClient(conn *websocket.Conn, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.firehose[conn] = true
	h.connInfo[conn] = info
}

// RemoveFirehoseClient removes a firehose connection.
func (h *Hub) RemoveFirehoseClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.firehose, conn)
	delete(h.connInfo, conn)
}

// AddAccountClient registers a connection on an account's feed room.
func (h *Hub) AddAccountClient(accountID int, conn *websocket.Conn, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.accountRooms[accountID]; !ok {
		h.accountRooms[accountID] = make(map[*websocket.Conn]bool)
	}
	h.accountRooms[accountID][conn] = true
	h.connInfo[conn] = info
}

// RemoveAccountClient removes a connection from an account's room.
func (h *Hub) RemoveAccountClient(accountID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.accountRooms[accountID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.accountRooms, accountID)
		}
	}
	delete(h.connInfo, conn)
}

// BroadcastCreated notifies subscribers of a new message.
func (h *Hub) BroadcastCreated(msg models.Message) {
	h.broadcast(msg.PostedBy, models.MessageEvent{Type: "message_created", Message: &msg})
}

// BroadcastUpdated notifies subscribers of a text update.
func (h *Hub) BroadcastUpdated(msg models.Message) {
	h.broadcast(msg.PostedBy, models.MessageEvent{Type: "message_updated", Message: &msg})
}

// BroadcastDeleted notifies subscribers of a deletion.
func (h *Hub) BroadcastDeleted(postedBy, messageID int) {
	h.broadcast(postedBy, models.MessageEvent{Type: "message_deleted", MessageID: messageID})
}

func (h *Hub) broadcast(postedBy int, event models.MessageEvent) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.firehose))
	for conn := range h.firehose {
		conns = append(conns, conn)
	}
	accountConns := make([]*websocket.Conn, 0)
	for conn := range h.accountRooms[postedBy] {
		accountConns = append(accountConns, conn)
	}
	h.mu.RUnlock()

	payload, _ := json.Marshal(event)
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			h.RemoveFirehoseClient(conn)
			observability.IncWSEvent("firehose", "ws_error")
		}
	}
	for _, conn := range accountConns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			h.RemoveAccountClient(postedBy, conn)
			observability.IncWSEvent("account", "ws_error")
		}
	}
}
