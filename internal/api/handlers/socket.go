package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"argus-hub-go/internal/config"
	"argus-hub-go/internal/services/hub"
)

type SocketHandler struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

func NewSocketHandler(cfg *config.Config, socketHub *hub.Hub) *SocketHandler {
	return &SocketHandler{
		hub: socketHub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.WSReadBufferSize,
			WriteBufferSize: cfg.WSWriteBufferSize,
			// Same open policy as the CORS middleware
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handle godoc
// @Summary Socket channel
// @Description Upgrade to the websocket event channel shared by browser clients and the camera unit
// @Tags socket
// @Success 101
// @Router /socket [get]
func (h *SocketHandler) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response
		log.Warn().Err(err).Str("remote_addr", c.ClientIP()).Msg("Socket upgrade failed")
		return
	}

	h.hub.Register(conn)
}
