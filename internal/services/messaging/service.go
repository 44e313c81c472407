package messaging

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"argus-hub-go/internal/config"
)

// Service is a thin wrapper around the NATS connection. The hub uses it for
// the command audit trail and for camera units that report status over the
// bus instead of holding a socket.
type Service struct {
	conn *nats.Conn
	cfg  *config.Config
}

// NewService connects to NATS. The connection retries in the background on
// loss; edge transitions are logged, never fatal.
func NewService(cfg *config.Config) (*Service, error) {
	opts := []nats.Option{
		nats.Name("argus-hub"),
		nats.Timeout(cfg.NatsConnectTimeout),
		nats.ReconnectWait(cfg.NatsReconnectWait),
		nats.MaxReconnects(cfg.NatsMaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS connection lost")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	conn, err := nats.Connect(cfg.NatsURL, opts...)
	if err != nil {
		return nil, err
	}

	log.Info().Str("url", cfg.NatsURL).Msg("NATS connection established")

	return &Service{
		conn: conn,
		cfg:  cfg,
	}, nil
}

// Publish sends a JSON-encoded message to a subject
func (s *Service) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.conn.Publish(subject, payload)
}

// Subscribe registers a handler for a subject
func (s *Service) Subscribe(subject string, handler func([]byte)) (*nats.Subscription, error) {
	return s.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
}

// IsConnected reports whether the bus is currently reachable
func (s *Service) IsConnected() bool {
	return s.conn != nil && s.conn.IsConnected()
}

// Shutdown drains the connection, falling back to an immediate close
func (s *Service) Shutdown(_ context.Context) error {
	if s.conn != nil {
		if err := s.conn.Drain(); err != nil {
			log.Warn().Err(err).Msg("Failed to drain NATS connection gracefully, closing immediately")
			s.conn.Close()
		}
	}
	return nil
}
