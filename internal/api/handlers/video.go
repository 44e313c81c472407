package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"argus-hub-go/internal/services/drive"
)

type VideoHandler struct {
	drive *drive.Service
}

func NewVideoHandler(driveService *drive.Service) *VideoHandler {
	return &VideoHandler{drive: driveService}
}

// ListVideos godoc
// @Summary List recorded videos
// @Description List playable videos from the cloud drive folder, newest first
// @Tags videos
// @Produce json
// @Success 200 {array} models.Video
// @Failure 502 {object} map[string]string
// @Router /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	videos, err := h.drive.ListVideos(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list drive videos")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to list videos"})
		return
	}

	c.JSON(http.StatusOK, videos)
}

// StreamVideo godoc
// @Summary Stream a video
// @Description Proxy video content from the cloud drive with HTTP range support
// @Tags videos
// @Produce application/octet-stream
// @Param id path string true "Video ID"
// @Success 200 {file} video/mp4
// @Success 206 {file} video/mp4
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /videos/{id}/stream [get]
func (h *VideoHandler) StreamVideo(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video id is required"})
		return
	}

	content, err := h.drive.StreamVideo(c.Request.Context(), id, c.GetHeader("Range"))
	if err != nil {
		log.Error().Err(err).Str("video_id", id).Msg("Failed to fetch video content")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch video"})
		return
	}
	defer content.Body.Close()

	c.Header("Accept-Ranges", "bytes")
	if content.ContentType != "" {
		c.Header("Content-Type", content.ContentType)
	} else {
		c.Header("Content-Type", "video/mp4")
	}
	if content.ContentLength != "" {
		c.Header("Content-Length", content.ContentLength)
	}
	if content.ContentRange != "" {
		c.Header("Content-Range", content.ContentRange)
	}

	c.Status(content.StatusCode)
	if _, err := io.Copy(c.Writer, content.Body); err != nil {
		// Client went away mid-playback; nothing to answer anymore
		log.Debug().Err(err).Str("video_id", id).Msg("Video stream interrupted")
	}
}
