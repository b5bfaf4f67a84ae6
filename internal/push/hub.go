// Package push fans scan change events out to connected dashboard
// clients over websockets.
package push

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/scans"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/lifecycle"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Event is the wire format for one pushed change.
type Event struct {
	Kind string     `json:"kind"`
	Scan scans.Scan `json:"scan"`
}

// Hub tracks connected clients and broadcasts scan changes to all of
// them. Slow clients are dropped rather than allowed to stall the
// broadcast loop.
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	logger     *slog.Logger
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a Hub. Start must be called before Serve or Broadcast.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, sendBuffer),
		logger:     logger.With("system", "push"),
	}
}

// Start registers the hub's run loop with the lifecycle coordinator.
func (h *Hub) Start(lc *lifecycle.Coordinator) {
	h.logger.Info("starting push hub")

	lc.OnShutdown(func() {
		h.run(lc)
	})
}

// Broadcast queues a scan change for delivery to every connected client.
// Events are dropped if the hub's queue is full.
func (h *Hub) Broadcast(s scans.Scan) {
	data, err := json.Marshal(Event{Kind: "scan_changed", Scan: s})
	if err != nil {
		h.logger.Warn("event marshal failed", "id", s.ID, "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("push queue full, event dropped", "id", s.ID)
	}
}

// Serve upgrades the request to a websocket connection and attaches it
// to the hub.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	h.register <- c

	go c.writePump()
	go c.readPump()
}

func (h *Hub) run(lc *lifecycle.Coordinator) {
	for {
		select {
		case <-lc.Context().Done():
			for c := range h.clients {
				close(c.send)
			}
			h.logger.Info("push hub stopped")
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.logger.Debug("client connected", "clients", len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case data := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// readPump discards inbound frames; the connection is push-only. It
// exists to process control frames and detect the close handshake.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
