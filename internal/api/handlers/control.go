package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"argus-hub-go/internal/services/control"
)

type ControlHandler struct {
	control *control.Service
}

func NewControlHandler(controlService *control.Service) *ControlHandler {
	return &ControlHandler{control: controlService}
}

// Status godoc
// @Summary Control status
// @Description Get the current manual-control state
// @Tags control
// @Produce json
// @Success 200 {object} models.ControlStatusUpdate
// @Router /control/status [get]
func (h *ControlHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.control.Status())
}
