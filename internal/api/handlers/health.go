package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"argus-hub-go/internal/config"
	"argus-hub-go/internal/services/hub"
	"argus-hub-go/internal/services/messaging"
	"argus-hub-go/internal/services/stream"
)

type HealthHandler struct {
	cfg       *config.Config
	hub       *hub.Hub
	stream    *stream.Service
	messaging *messaging.Service
}

func NewHealthHandler(cfg *config.Config, h *hub.Hub, s *stream.Service, m *messaging.Service) *HealthHandler {
	return &HealthHandler{
		cfg:       cfg,
		hub:       h,
		stream:    s,
		messaging: m,
	}
}

type HealthResponse struct {
	Status        string `json:"status" example:"healthy"`
	HubID         string `json:"hub_id" example:"hub-1"`
	Clients       int    `json:"clients"`
	NatsConnected bool   `json:"nats_connected"`
	FeedStale     bool   `json:"feed_stale"`
}

type HubInfoResponse struct {
	HubID        string   `json:"hub_id" example:"hub-1"`
	Status       string   `json:"status" example:"running"`
	Version      string   `json:"version" example:"1.0.0"`
	Capabilities []string `json:"capabilities"`
}

// HealthCheck godoc
// @Summary Health check
// @Description Check hub health, connected clients and feed freshness
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:        "healthy",
		HubID:         h.cfg.HubID,
		Clients:       h.hub.ClientCount(),
		NatsConnected: h.messaging != nil && h.messaging.IsConnected(),
		FeedStale:     h.stream.Stats().Stale,
	})
}

// HubInfo godoc
// @Summary Hub information
// @Description Get basic hub information and capabilities
// @Tags health
// @Produce json
// @Success 200 {object} HubInfoResponse
// @Router / [get]
func (h *HealthHandler) HubInfo(c *gin.Context) {
	c.JSON(http.StatusOK, HubInfoResponse{
		HubID:   h.cfg.HubID,
		Status:  "running",
		Version: h.cfg.Version,
		Capabilities: []string{
			"frame_relay",
			"manual_control",
			"drive_playback",
		},
	})
}
