package messaging

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"argus-hub-go/internal/models"
)

// Broadcaster fans an event out to every connected socket client
type Broadcaster interface {
	Broadcast(event string, data any)
}

// StartStatusBridge subscribes to the camera status subjects and rebroadcasts
// each report to socket clients. This lets the camera unit report recording
// and motion state over the bus instead of holding a socket connection; the
// payloads are forwarded as-is after a shape check.
func (s *Service) StartStatusBridge(hub Broadcaster) error {
	_, err := s.Subscribe(s.cfg.StatusSubjectPrefix+".recording", func(data []byte) {
		var status models.RecordingStatus
		if err := json.Unmarshal(data, &status); err != nil {
			log.Warn().Err(err).Msg("Malformed recording status from bus, dropping")
			return
		}
		hub.Broadcast(models.EventRecordingStatus, status)
	})
	if err != nil {
		return err
	}

	_, err = s.Subscribe(s.cfg.StatusSubjectPrefix+".motion", func(data []byte) {
		var status models.PTZMotionStatus
		if err := json.Unmarshal(data, &status); err != nil {
			log.Warn().Err(err).Msg("Malformed motion status from bus, dropping")
			return
		}
		hub.Broadcast(models.EventPTZStatus, status)
	})
	if err != nil {
		return err
	}

	log.Info().Str("prefix", s.cfg.StatusSubjectPrefix).Msg("Camera status bridge started")
	return nil
}
