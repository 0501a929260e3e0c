package live

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/loomui/loom/pkg/fiber"
)

// Config configures a Hub.
type Config struct {
	// Snapshot renders the current output tree to HTML. Required.
	Snapshot func() string

	// Logger for connection lifecycle events. Default: slog.Default().
	Logger *slog.Logger

	// WriteTimeout bounds each WebSocket write. Default: 10s.
	WriteTimeout time.Duration

	// PingInterval is the keepalive ping period. Default: 30s.
	PingInterval time.Duration

	// QueueSize is the per-client send buffer. A client that falls this
	// many frames behind is disconnected. Default: 16.
	QueueSize int
}

func (c *Config) applyDefaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.PingInterval <= 0 {
		c.PingInterval = 30 * time.Second
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 16
	}
}

// Hub broadcasts one frame per committed render pass to every
// connected WebSocket client.
type Hub struct {
	fiber.NopObserver

	config   Config
	upgrader websocket.Upgrader

	seq atomic.Uint64

	mu       sync.Mutex
	clients  map[*client]struct{}
	lastSum  uint64
	haveSum  bool
	lastHTML string
	closed   bool
}

// NewHub creates a Hub. Register it on the Runtime as an Observer
// (alone or via fiber.MultiObserver) so Committed fires per pass.
func NewHub(config Config) *Hub {
	config.applyDefaults()
	return &Hub{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Committed implements fiber.Observer. It renders the snapshot,
// checksums it, and broadcasts a frame. The HTML body is included only
// when the checksum changed since the previous commit.
func (h *Hub) Committed(stats fiber.CommitStats) {
	html := h.config.Snapshot()
	sum := xxhash.Sum64String(html)
	seq := h.seq.Add(1)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	frame := Frame{
		Seq:      seq,
		Checksum: fmt.Sprintf("%016x", sum),
		Stats:    statsToWire(stats),
	}
	if !h.haveSum || sum != h.lastSum {
		frame.HTML = html
	}
	h.lastSum = sum
	h.haveSum = true
	h.lastHTML = html

	data, err := encodeFrame(frame)
	if err != nil {
		h.config.Logger.Error("frame encode error", "error", err)
		return
	}

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client can't keep up; drop it rather than block commits.
			h.config.Logger.Warn("client queue full, disconnecting", "remote", c.remote)
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Routes returns the Hub's HTTP surface: GET /ws upgrades to a frame
// stream, GET /snapshot serves the latest rendered HTML.
func (h *Hub) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/ws", h.serveWS)
	r.Get("/snapshot", h.serveSnapshot)
	return r
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.config.Logger.Error("upgrade error", "error", err)
		return
	}

	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, h.config.QueueSize),
		remote: r.RemoteAddr,
	}

	// Greet with the current state so late joiners don't wait for the
	// next commit.
	greeting, ok := h.register(c)
	if !ok {
		conn.Close()
		return
	}
	if greeting != nil {
		c.send <- greeting
	}

	h.config.Logger.Info("client connected", "remote", c.remote)

	go c.writePump()
	go c.readPump()
}

func (h *Hub) serveSnapshot(w http.ResponseWriter, _ *http.Request) {
	html := h.config.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Checksum", fmt.Sprintf("%016x", xxhash.Sum64String(html)))
	w.Write([]byte(html))
}

// register adds the client and builds its greeting frame under the
// hub lock. Returns ok=false if the hub is closed.
func (h *Hub) register(c *client) ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	h.clients[c] = struct{}{}

	if !h.haveSum {
		return nil, true
	}
	frame := Frame{
		Seq:      h.seq.Load(),
		Checksum: fmt.Sprintf("%016x", h.lastSum),
		HTML:     h.lastHTML,
	}
	data, err := encodeFrame(frame)
	if err != nil {
		h.config.Logger.Error("frame encode error", "error", err)
		return nil, true
	}
	return data, true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Close disconnects all clients. The Hub must not be reused after.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// client is one WebSocket subscriber.
type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	remote string
}

// writePump drains the send queue to the connection and keeps the
// connection alive with periodic pings.
func (c *client) writePump() {
	ticker := time.NewTicker(c.hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.hub.config.Logger.Error("write error", "remote", c.remote, "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound messages; the stream is one-way. It exists
// to process control frames and detect disconnects.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
		c.hub.config.Logger.Info("client disconnected", "remote", c.remote)
	}()

	c.conn.SetReadLimit(1024)
	readWait := 2 * c.hub.config.PingInterval
	c.conn.SetReadDeadline(time.Now().Add(readWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(readWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.hub.config.Logger.Error("read error", "remote", c.remote, "error", err)
			}
			return
		}
	}
}
