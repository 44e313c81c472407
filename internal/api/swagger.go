package api

import (
	"net/http"

	_ "argus-hub-go/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (s *Server) setupSwagger() {
	s.router.GET("/api/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"title":       "Argus Hub API",
			"version":     s.cfg.Version,
			"description": "Camera control hub: live frame relay, manual-control arbitration, and cloud drive playback",
			"swagger_ui":  "/docs/index.html",
			"endpoints": gin.H{
				"health":   "/health",
				"hub_info": "/",
				"socket":   "/socket",
				"videos":   "/videos",
				"control":  "/control",
				"stream":   "/stream",
			},
			"hub_id": s.cfg.HubID,
			"port":   s.cfg.Port,
		})
	})

	s.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.router.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
}
