package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"argus-hub-go/internal/api/handlers"
	"argus-hub-go/internal/config"
	"argus-hub-go/internal/services"
)

type Server struct {
	cfg       *config.Config
	router    *gin.Engine
	server    *http.Server
	container *services.ServiceContainer

	healthHandler  *handlers.HealthHandler
	videoHandler   *handlers.VideoHandler
	controlHandler *handlers.ControlHandler
	streamHandler  *handlers.StreamHandler
	socketHandler  *handlers.SocketHandler
}

func NewServer(cfg *config.Config) (*Server, error) {
	container, err := services.NewServiceContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build services: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		cfg:       cfg,
		router:    router,
		container: container,

		healthHandler:  handlers.NewHealthHandler(cfg, container.Hub, container.Stream, container.Messaging),
		videoHandler:   handlers.NewVideoHandler(container.Drive),
		controlHandler: handlers.NewControlHandler(container.Control),
		streamHandler:  handlers.NewStreamHandler(container.Stream),
		socketHandler:  handlers.NewSocketHandler(cfg, container.Hub),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupSwagger()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	return s, nil
}

func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.container.Shutdown(ctx); err != nil {
		return err
	}
	return s.server.Shutdown(ctx)
}
