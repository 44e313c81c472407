package control

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"argus-hub-go/internal/models"
)

// HandlePTZ validates and forwards a pan/tilt/zoom command from a client to
// the camera-facing broadcast. Out-of-enum directions are rejected before
// they can reach the camera. Forwarding is fire-and-forget; no ack from the
// camera unit is awaited.
func (s *Service) HandlePTZ(c Session, data json.RawMessage) {
	var direction models.PTZDirection
	if err := json.Unmarshal(data, &direction); err != nil {
		s.reject(c, "Invalid PTZ payload")
		return
	}
	if !direction.IsValid() {
		s.reject(c, fmt.Sprintf("Invalid PTZ direction: %q", string(direction)))
		return
	}
	if s.cfg.StrictRelay && !s.isHolder(c.ID()) {
		s.reject(c, "Manual control required")
		return
	}

	cmd := models.PTZCommand{Direction: direction, ClientID: c.ID()}
	s.hub.Broadcast(models.EventPTZCommand, cmd)
	s.publishCommand("ptz", string(direction), c.ID())

	log.Debug().
		Str("client_id", c.ID()).
		Str("direction", string(direction)).
		Msg("PTZ command forwarded")
}

// HandleRecording validates and forwards a recording start/stop command
func (s *Service) HandleRecording(c Session, data json.RawMessage) {
	var action models.RecordingAction
	if err := json.Unmarshal(data, &action); err != nil {
		s.reject(c, "Invalid recording payload")
		return
	}
	if !action.IsValid() {
		s.reject(c, fmt.Sprintf("Invalid recording action: %q", string(action)))
		return
	}
	if s.cfg.StrictRelay && !s.isHolder(c.ID()) {
		s.reject(c, "Manual control required")
		return
	}

	cmd := models.RecordingCommand{Action: action, ClientID: c.ID()}
	s.hub.Broadcast(models.EventRecordingCommand, cmd)
	s.publishCommand("recording", string(action), c.ID())

	log.Info().
		Str("client_id", c.ID()).
		Str("action", string(action)).
		Msg("Recording command forwarded")
}

func (s *Service) reject(c Session, reason string) {
	log.Warn().Str("client_id", c.ID()).Str("reason", reason).Msg("Command rejected")
	c.Send(models.EventCommandRejected, models.CommandResponse{
		Success: false,
		Message: reason,
	})
}

func (s *Service) publishCommand(kind, value, clientID string) {
	if s.audit == nil || !s.audit.IsConnected() {
		return
	}
	err := s.audit.Publish(s.cfg.CommandSubject, map[string]any{
		"type":      kind,
		"value":     value,
		"client_id": clientID,
		"at":        time.Now().UTC(),
	})
	if err != nil {
		log.Debug().Err(err).Str("type", kind).Msg("Failed to publish command audit")
	}
}
