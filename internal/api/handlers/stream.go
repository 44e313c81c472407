package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"argus-hub-go/internal/services/stream"
)

type StreamHandler struct {
	stream *stream.Service
}

func NewStreamHandler(streamService *stream.Service) *StreamHandler {
	return &StreamHandler{stream: streamService}
}

// LatestFrame godoc
// @Summary Latest frame snapshot
// @Description Get the most recent live frame as a JPEG image
// @Tags stream
// @Produce image/jpeg
// @Success 200 {file} image/jpeg
// @Failure 404 {object} map[string]string
// @Router /stream/frame [get]
func (h *StreamHandler) LatestFrame(c *gin.Context) {
	frame, at, ok := h.stream.LatestFrame()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No frame received yet"})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Last-Modified", at.UTC().Format(http.TimeFormat))
	c.Data(http.StatusOK, "image/jpeg", frame)
}

// Stats godoc
// @Summary Stream statistics
// @Description Get frame counters and feed freshness
// @Tags stream
// @Produce json
// @Success 200 {object} stream.Stats
// @Router /stream/stats [get]
func (h *StreamHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.stream.Stats())
}
