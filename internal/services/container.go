package services

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"argus-hub-go/internal/config"
	"argus-hub-go/internal/models"
	"argus-hub-go/internal/services/control"
	"argus-hub-go/internal/services/drive"
	"argus-hub-go/internal/services/hub"
	"argus-hub-go/internal/services/messaging"
	"argus-hub-go/internal/services/stream"
)

// ServiceContainer holds all services
type ServiceContainer struct {
	Config    *config.Config
	Hub       *hub.Hub
	Control   *control.Service
	Stream    *stream.Service
	Messaging *messaging.Service
	Drive     *drive.Service
}

// NewServiceContainer builds the service graph and wires every socket event
// to its handler.
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	socketHub := hub.New(cfg)

	// NATS is optional: without it the hub still arbitrates and relays, it
	// just loses the audit trail and the bus-side camera status bridge.
	var messagingSvc *messaging.Service
	var audit control.Publisher
	if svc, err := messaging.NewService(cfg); err != nil {
		log.Warn().Err(err).Msg("NATS unavailable, continuing without audit trail and status bridge")
	} else {
		messagingSvc = svc
		audit = svc
		if err := svc.StartStatusBridge(socketHub); err != nil {
			log.Warn().Err(err).Msg("Failed to start camera status bridge")
		}
	}

	controlSvc := control.NewService(cfg, socketHub, audit)
	streamSvc := stream.NewService(cfg, socketHub)
	driveSvc := drive.NewService(cfg)

	// Inbound socket events
	socketHub.HandleFunc(models.EventGetControlStatus, func(c *hub.Client, data json.RawMessage) {
		controlSvc.HandleControlStatus(c, data)
	})
	socketHub.HandleFunc(models.EventManualMode, func(c *hub.Client, data json.RawMessage) {
		controlSvc.HandleManualMode(c, data)
	})
	socketHub.HandleFunc(models.EventPTZControl, func(c *hub.Client, data json.RawMessage) {
		controlSvc.HandlePTZ(c, data)
	})
	socketHub.HandleFunc(models.EventRecordingControl, func(c *hub.Client, data json.RawMessage) {
		controlSvc.HandleRecording(c, data)
	})
	socketHub.HandleFunc(models.EventFrame, func(_ *hub.Client, data json.RawMessage) {
		streamSvc.HandleFrame(data)
	})

	// A camera unit holding a socket reports status through the same channel;
	// validate the shape and rebroadcast verbatim.
	socketHub.HandleFunc(models.EventRecordingStatus, func(c *hub.Client, data json.RawMessage) {
		var status models.RecordingStatus
		if err := json.Unmarshal(data, &status); err != nil {
			log.Warn().Err(err).Str("client_id", c.ID()).Msg("Malformed recording status, dropping")
			return
		}
		socketHub.Broadcast(models.EventRecordingStatus, status)
	})
	socketHub.HandleFunc(models.EventPTZStatus, func(c *hub.Client, data json.RawMessage) {
		var status models.PTZMotionStatus
		if err := json.Unmarshal(data, &status); err != nil {
			log.Warn().Err(err).Str("client_id", c.ID()).Msg("Malformed motion status, dropping")
			return
		}
		socketHub.Broadcast(models.EventPTZStatus, status)
	})

	// Disconnect of the lease holder is an implicit release
	socketHub.OnDisconnect(controlSvc.HandleDisconnect)

	return &ServiceContainer{
		Config:    cfg,
		Hub:       socketHub,
		Control:   controlSvc,
		Stream:    streamSvc,
		Messaging: messagingSvc,
		Drive:     driveSvc,
	}, nil
}

// Shutdown gracefully shuts down all services
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	if sc.Hub != nil {
		sc.Hub.Close()
	}

	if sc.Messaging != nil {
		if err := sc.Messaging.Shutdown(ctx); err != nil {
			return err
		}
	}

	return nil
}
