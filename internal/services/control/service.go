package control

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"argus-hub-go/internal/config"
	"argus-hub-go/internal/models"
)

// Session is the slice of a hub client the control layer needs: an identity
// and a way to answer the requester directly.
type Session interface {
	ID() string
	Send(event string, data any)
}

// Broadcaster fans an event out to every connected client
type Broadcaster interface {
	Broadcast(event string, data any)
}

// Publisher mirrors control transitions and forwarded commands onto the
// message bus for auditing. Optional; a nil publisher disables the trail.
type Publisher interface {
	Publish(subject string, data any) error
	IsConnected() bool
}

// Service arbitrates exclusive manual control of the camera and relays
// PTZ/recording commands from the current holder. The lease is the only
// state shared across connections; every check-then-set runs under the
// mutex, and the status broadcasts a transition triggers are emitted while
// it is still held, so clients observe transitions in order.
type Service struct {
	cfg   *config.Config
	hub   Broadcaster
	audit Publisher

	mu         sync.Mutex
	holder     string
	acquiredAt time.Time
}

// NewService creates the control service. audit may be nil.
func NewService(cfg *config.Config, hub Broadcaster, audit Publisher) *Service {
	return &Service{
		cfg:   cfg,
		hub:   hub,
		audit: audit,
	}
}

// HandleControlStatus answers get_control_status. The reply goes to the
// requester only and carries the isYou flag; nothing is broadcast.
func (s *Service) HandleControlStatus(c Session, _ json.RawMessage) {
	s.mu.Lock()
	status := s.statusLocked()
	isYou := s.holder != "" && s.holder == c.ID()
	s.mu.Unlock()

	status.IsYou = &isYou
	c.Send(models.EventControlStatusUpdate, status)
}

// HandleManualMode grants or releases the control lease. The payload is a
// bare boolean: true requests manual control, false hands it back.
func (s *Service) HandleManualMode(c Session, data json.RawMessage) {
	var enable bool
	if err := json.Unmarshal(data, &enable); err != nil {
		log.Warn().Err(err).Str("client_id", c.ID()).Msg("Malformed manual_mode payload")
		c.Send(models.EventManualModeResponse, models.CommandResponse{
			Success: false,
			Message: "Invalid manual mode request",
		})
		return
	}

	if enable {
		s.request(c)
	} else {
		s.release(c)
	}
}

// HandleDisconnect releases the lease when its holder goes away. There is
// nobody left to answer, so only the broadcasts are emitted.
func (s *Service) HandleDisconnect(clientID string) {
	s.mu.Lock()
	if s.holder != clientID {
		s.mu.Unlock()
		return
	}
	held := time.Since(s.acquiredAt)
	s.holder = ""
	s.acquiredAt = time.Time{}
	s.broadcastAutomaticLocked()
	s.mu.Unlock()

	log.Info().
		Str("client_id", clientID).
		Dur("held_for", held).
		Msg("Manual control released on disconnect")
	s.publishControl("released_on_disconnect", clientID)
}

// Status returns the current control state without an isYou flag
func (s *Service) Status() models.ControlStatusUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Service) request(c Session) {
	s.mu.Lock()
	switch {
	case s.holder == "":
		s.holder = c.ID()
		s.acquiredAt = time.Now()
		s.hub.Broadcast(models.EventControlStatusUpdate, s.statusLocked())
		s.hub.Broadcast(models.EventManualModeCommand, models.ManualModeCommand{
			Enabled:  true,
			ClientID: c.ID(),
		})
		s.mu.Unlock()

		log.Info().Str("client_id", c.ID()).Msg("Manual control granted")
		c.Send(models.EventManualModeResponse, models.CommandResponse{
			Success: true,
			Message: "Manual mode enabled",
		})
		s.publishControl("granted", c.ID())

	case s.holder == c.ID():
		// Repeated request from the holder; no transition, no broadcast.
		s.mu.Unlock()
		c.Send(models.EventManualModeResponse, models.CommandResponse{
			Success: true,
			Message: "Manual mode enabled",
		})

	default:
		s.mu.Unlock()
		log.Debug().Str("client_id", c.ID()).Msg("Manual control denied, lease held")
		c.Send(models.EventManualModeResponse, models.CommandResponse{
			Success: false,
			Message: "Another user currently has manual control",
		})
	}
}

func (s *Service) release(c Session) {
	s.mu.Lock()
	if s.holder != c.ID() {
		// Releasing without holding the lease is a no-op; the UI toggle
		// still expects a success reply.
		s.mu.Unlock()
		c.Send(models.EventManualModeResponse, models.CommandResponse{
			Success: true,
			Message: "Manual mode disabled",
		})
		return
	}

	held := time.Since(s.acquiredAt)
	s.holder = ""
	s.acquiredAt = time.Time{}
	s.broadcastAutomaticLocked()
	s.mu.Unlock()

	log.Info().
		Str("client_id", c.ID()).
		Dur("held_for", held).
		Msg("Manual control released")
	c.Send(models.EventManualModeResponse, models.CommandResponse{
		Success: true,
		Message: "Manual mode disabled",
	})
	s.publishControl("released", c.ID())
}

func (s *Service) statusLocked() models.ControlStatusUpdate {
	if s.holder == "" {
		return models.ControlStatusUpdate{Status: models.ControlModeAutomatic}
	}
	return models.ControlStatusUpdate{
		Status:       models.ControlModeManual,
		ControlledBy: s.holder,
	}
}

func (s *Service) broadcastAutomaticLocked() {
	s.hub.Broadcast(models.EventControlStatusUpdate, s.statusLocked())
	s.hub.Broadcast(models.EventManualModeCommand, models.ManualModeCommand{Enabled: false})
}

func (s *Service) isHolder(clientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holder != "" && s.holder == clientID
}

func (s *Service) publishControl(action, clientID string) {
	if s.audit == nil || !s.audit.IsConnected() {
		return
	}
	err := s.audit.Publish(s.cfg.ControlSubject, map[string]any{
		"action":    action,
		"client_id": clientID,
		"at":        time.Now().UTC(),
	})
	if err != nil {
		log.Debug().Err(err).Str("action", action).Msg("Failed to publish control transition")
	}
}
