package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wealthy-cats/events"
)

// sendBuffer is how many messages a client may lag behind before it is dropped.
const sendBuffer = 256

type client struct {
	sessionID string
	conn      ConnInterface
	send      chan []byte
	closeOnce sync.Once
}

func (c *client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

// writeLoop drains send to the connection and closes it when send is closed.
func (c *client) writeLoop(log *zap.Logger) {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Warn("⚠️ websocket write failed", zap.String("session", c.sessionID), zap.Error(err))
			// the read loop sees the close and unsubscribes, which ends the drain
			c.conn.Close()
			for range c.send {
			}
			return
		}
	}
}

// Hub fans session events out to every connected client of that session.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*client]struct{}
	log   *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{rooms: make(map[string]map[*client]struct{}), log: log}
}

// Message is the wire form of everything the hub sends.
type Message struct {
	Type   string      `json:"type"`
	Seq    uint64      `json:"seq,omitempty"`
	Player int         `json:"player,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

func buildMessage(msgType string, data interface{}) []byte {
	msg, _ := json.Marshal(Message{Type: msgType, Data: data})
	return msg
}

// Sink returns the events.Sink that broadcasts to session sessionID.
func (h *Hub) Sink(sessionID string) events.Sink {
	return events.SinkFunc(func(e events.Event) {
		msg, err := json.Marshal(Message{Type: string(e.Type), Seq: e.Seq, Player: e.Player, Data: e.Data})
		if err != nil {
			h.log.Error("❌ encode event", zap.String("type", string(e.Type)), zap.Error(err))
			return
		}
		h.broadcast(sessionID, msg)
	})
}

// broadcast never blocks; clients with a full buffer are dropped.
func (h *Hub) broadcast(sessionID string, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[sessionID] {
		select {
		case c.send <- msg:
		default:
			h.log.Warn("⚠️ client too slow, dropping", zap.String("session", sessionID))
			delete(h.rooms[sessionID], c)
			c.close()
		}
	}
}

// subscribe registers conn with first queued ahead of any event.
func (h *Hub) subscribe(sessionID string, conn ConnInterface, first []byte) *client {
	c := &client{sessionID: sessionID, conn: conn, send: make(chan []byte, sendBuffer)}
	if first != nil {
		c.send <- first
	}
	h.mu.Lock()
	if h.rooms[sessionID] == nil {
		h.rooms[sessionID] = make(map[*client]struct{})
	}
	h.rooms[sessionID][c] = struct{}{}
	n := len(h.rooms[sessionID])
	h.mu.Unlock()
	go c.writeLoop(h.log)
	h.log.Info("🔌 client joined", zap.String("session", sessionID), zap.Int("clients", n))
	return c
}

func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	if set, ok := h.rooms[c.sessionID]; ok {
		if _, ok := set[c]; ok {
			delete(set, c)
			c.close()
		}
		if len(set) == 0 {
			delete(h.rooms, c.sessionID)
		}
	}
	h.mu.Unlock()
	h.log.Info("👋 client left", zap.String("session", c.sessionID))
}

// Close disconnects every client of sessionID.
func (h *Hub) Close(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[sessionID] {
		c.close()
	}
	delete(h.rooms, sessionID)
}

// Count returns how many clients watch sessionID.
func (h *Hub) Count(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[sessionID])
}
