package hub

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"argus-hub-go/internal/config"
	"argus-hub-go/internal/models"
)

// HandlerFunc processes one inbound event from a client. Handlers run on the
// client's reader goroutine, so messages from a single connection are handled
// in FIFO order.
type HandlerFunc func(c *Client, data json.RawMessage)

// Hub is the shared broadcast domain. Every connected client (browsers and
// the camera unit alike) is registered here; broadcasts fan out to all of
// them. Slow consumers lose messages instead of blocking the sender.
type Hub struct {
	cfg *config.Config

	mu       sync.RWMutex
	clients  map[string]*Client
	handlers map[string]HandlerFunc

	disconnectHooks []func(clientID string)

	dropped atomic.Uint64
	closed  atomic.Bool
}

// New creates an empty hub
func New(cfg *config.Config) *Hub {
	return &Hub{
		cfg:      cfg,
		clients:  make(map[string]*Client),
		handlers: make(map[string]HandlerFunc),
	}
}

// HandleFunc registers the handler for an event name. Registration happens
// during wiring, before any client connects.
func (h *Hub) HandleFunc(event string, fn HandlerFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[event] = fn
}

// OnDisconnect registers a hook that runs synchronously when a client goes
// away, after the client has been removed from the broadcast set.
func (h *Hub) OnDisconnect(fn func(clientID string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disconnectHooks = append(h.disconnectHooks, fn)
}

// Register wraps an upgraded connection in a Client, adds it to the
// broadcast set and starts its read/write pumps.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	c := &Client{
		id:         uuid.NewString(),
		remoteAddr: conn.RemoteAddr().String(),
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, h.cfg.WSSendBuffer),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	count := len(h.clients)
	h.mu.Unlock()

	log.Info().
		Str("client_id", c.id).
		Str("remote_addr", c.remoteAddr).
		Int("connected", count).
		Msg("Client connected")

	go c.writePump()
	go c.readPump()

	return c
}

// unregister removes the client and runs disconnect hooks. The hooks fire
// before this returns, so lease cleanup happens before the reader goroutine
// exits.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.id)
	close(c.send)
	count := len(h.clients)
	hooks := h.disconnectHooks
	h.mu.Unlock()

	log.Info().
		Str("client_id", c.id).
		Str("remote_addr", c.remoteAddr).
		Int("connected", count).
		Msg("Client disconnected")

	for _, fn := range hooks {
		fn(c.id)
	}
}

// Broadcast sends an event to every connected client, sender included.
// Clients whose send buffer is full are skipped; frame traffic tolerates
// loss and control traffic is small enough that a full buffer means the
// connection is already beyond saving.
func (h *Hub) Broadcast(event string, data any) {
	payload, err := json.Marshal(models.Envelope{Event: event, Data: marshalData(event, data)})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("Failed to encode broadcast")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.dropped.Add(1)
			log.Warn().
				Str("client_id", c.id).
				Str("event", event).
				Msg("Send buffer full, dropping message")
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns how many messages were lost to slow consumers
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Close disconnects every client. Used on shutdown.
func (h *Hub) Close() {
	h.closed.Store(true)

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for _, c := range h.clients {
		conns = append(conns, c.conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		conn.Close()
	}
}

func (h *Hub) dispatch(c *Client, env models.Envelope) {
	h.mu.RLock()
	fn, ok := h.handlers[env.Event]
	h.mu.RUnlock()

	if !ok {
		log.Debug().
			Str("client_id", c.id).
			Str("event", env.Event).
			Msg("Unknown event, dropping")
		return
	}

	fn(c, env.Data)
}

// marshalData avoids double-encoding payloads that are already raw JSON
func marshalData(event string, data any) json.RawMessage {
	if raw, ok := data.(json.RawMessage); ok {
		return raw
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("Failed to encode payload")
		return nil
	}
	return encoded
}
