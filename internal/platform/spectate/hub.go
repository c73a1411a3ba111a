// Package spectate streams board events to read-only websocket clients.
// A Hub owns the client set in its own goroutine; games feed it through an
// Observer that never blocks the level.
package spectate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Events buffered between the games and the hub loop.
	publishBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Spectators are read-only
		return true
	},
}

// Client is one spectator connection.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	session string // empty follows every session
}

// Hub maintains the set of spectators and fans events out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	logger     *log.Logger
	done       chan struct{}

	mu     sync.RWMutex
	latest map[string]Event // last event with a board, per session
}

// NewHub creates a hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, publishBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
		done:       make(chan struct{}),
		latest:     make(map[string]Event),
	}
}

// Run starts the hub's event loop and returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.unregisterClient(client)
			}
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case ev := <-h.broadcast:
			h.broadcastEvent(ev)
		}
	}
}

// Publish queues an event for the spectators. It never blocks: when the
// queue is full the event is dropped.
func (h *Hub) Publish(ev Event) {
	if ev.Board != "" {
		h.mu.Lock()
		h.latest[ev.Session] = ev
		h.mu.Unlock()
	}

	select {
	case h.broadcast <- ev:
	default:
		h.logger.Debug("spectator queue full, event dropped", "session", ev.Session, "kind", ev.Kind)
	}
}

// Latest returns the last board of every session.
func (h *Hub) Latest() map[string]Event {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make(map[string]Event, len(h.latest))
	for k, v := range h.latest {
		out[k] = v
	}
	return out
}

// Forget drops the stored board of a finished session.
func (h *Hub) Forget(session string) {
	h.mu.Lock()
	delete(h.latest, session)
	h.mu.Unlock()
}

// ServeWS upgrades the request and follows session, or every session when
// it is empty.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, session string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, 256),
		session: session,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// registerClient adds a client.
func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true
	h.logger.Info("spectator joined", "session", client.session, "total", len(h.clients))
}

// unregisterClient removes a client and closes its queue.
func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.logger.Info("spectator left", "session", client.session, "remaining", len(h.clients))
	}
}

// broadcastEvent sends an event to every client following its session.
func (h *Hub) broadcastEvent(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("cannot marshal event", "error", err)
		return
	}

	for client := range h.clients {
		if client.session != "" && client.session != ev.Session {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Client's send channel is full, drop it
			h.unregisterClient(client)
		}
	}
}

// readPump keeps the connection alive and notices when the peer leaves.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Spectators do not send commands
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket error", "error", err)
			}
			break
		}
	}
}

// writePump pumps events from the hub to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
