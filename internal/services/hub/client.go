package hub

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"argus-hub-go/internal/models"
)

// Client is one socket connection with its own identity and outbound queue.
// The identity lives exactly as long as the connection.
type Client struct {
	id         string
	remoteAddr string
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
}

// ID returns the connection identity
func (c *Client) ID() string {
	return c.id
}

// RemoteAddr returns the peer address
func (c *Client) RemoteAddr() string {
	return c.remoteAddr
}

// Send queues an event for this client only. Like broadcasts, it never
// blocks the caller; a full buffer drops the message.
func (c *Client) Send(event string, data any) {
	payload, err := json.Marshal(models.Envelope{Event: event, Data: marshalData(event, data)})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("Failed to encode message")
		return
	}

	select {
	case c.send <- payload:
	default:
		c.hub.dropped.Add(1)
		log.Warn().
			Str("client_id", c.id).
			Str("event", event).
			Msg("Send buffer full, dropping message")
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.cfg.WSMaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.WSPongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.WSPongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if !c.hub.closed.Load() &&
				websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("client_id", c.id).Msg("Unexpected socket close")
			}
			return
		}

		var env models.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Warn().Err(err).Str("client_id", c.id).Msg("Malformed envelope, dropping")
			continue
		}
		if env.Event == "" {
			log.Warn().Str("client_id", c.id).Msg("Envelope without event name, dropping")
			continue
		}

		c.hub.dispatch(c, env)
	}
}

func (c *Client) writePump() {
	pingPeriod := c.hub.cfg.WSPongWait * 9 / 10
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WSWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WSWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
