package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Admin feed message types
const (
	MsgConnected      MessageType = "connected"
	MsgRecordSaved    MessageType = "record_saved"
	MsgRecordsCleared MessageType = "records_cleared"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans admin events out to every connected viewer
type Hub struct {
	adminConns map[*Connection]struct{}
	mu         sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *Message
	done       chan struct{}

	logger *zap.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	Admin string
	Send  chan []byte
}

// NewHub creates a new WebSocket hub
func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		adminConns: make(map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for conn := range h.adminConns {
				delete(h.adminConns, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.adminConns[conn] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("admin connected to live feed", zap.String("admin", conn.Admin))

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.adminConns[conn]; ok {
				delete(h.adminConns, conn)
				close(conn.Send)
				h.logger.Info("admin disconnected from live feed", zap.String("admin", conn.Admin))
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg)
			if err != nil {
				h.logger.Error("failed to encode ws message", zap.Error(err))
				continue
			}
			h.mu.RLock()
			for conn := range h.adminConns {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection. It returns false once the hub is closed.
func (h *Hub) Register(conn *Connection) bool {
	select {
	case h.register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Count returns the number of connected viewers
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.adminConns)
}

// Close disconnects every viewer and stops the hub
func (h *Hub) Close() {
	close(h.done)
}

// BroadcastToAdmins sends a message to every admin viewer (implements service.Broadcaster)
func (h *Hub) BroadcastToAdmins(msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode ws payload", zap.String("type", msgType), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- &Message{Type: MessageType(msgType), Payload: data}:
	case <-h.done:
	default:
		h.logger.Warn("ws broadcast queue full, dropping message", zap.String("type", msgType))
	}
}
