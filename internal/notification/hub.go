package notification

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

type envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// connection is a single subscriber. All frames go through the send channel
// so exactly one goroutine (its writePump) ever writes the websocket.
type connection struct {
	clientID string
	conn     *websocket.Conn
	send     chan []byte
}

// Hub tracks websocket subscribers (admin consoles, mostly) and fans events
// out to all of them. A client that cannot keep up is skipped, not waited on.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*connection
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, exists := h.connections[c.clientID]; exists {
		close(old.send)
	}
	h.connections[c.clientID] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.connections[c.clientID]; ok && existing == c {
		delete(h.connections, c.clientID)
		close(c.send)
	}
}

// Broadcast queues the message for every subscriber. Marshal failures drop
// the message; a full send buffer drops that one client for this message.
func (h *Hub) Broadcast(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		select {
		case c.send <- data:
		default:
			// Client too slow — skip.
		}
	}
}

// BroadcastRefresh tells subscribers the pending list changed and they should
// re-render from the payload.
func (h *Hub) BroadcastRefresh(data interface{}) {
	h.Broadcast(envelope{Type: "pending_list_refresh", Data: data})
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.connections)
}

// Close drops every subscriber; their write pumps close the sockets.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.connections {
		close(c.send)
		delete(h.connections, id)
	}
}

// ServeWS registers the connection and starts its read/write loops. Blocks
// until the client disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, clientID string) {
	c := &connection{
		clientID: clientID,
		conn:     conn,
		send:     make(chan []byte, 256),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// readPump discards inbound frames; the feed is one-way. It exists to detect
// disconnects and answer pings.
func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
