package api

func (s *Server) setupRoutes() {
	s.router.GET("/", s.healthHandler.HubInfo)
	s.router.GET("/health", s.healthHandler.HealthCheck)

	s.router.GET("/socket", s.socketHandler.Handle)

	videos := s.router.Group("/videos")
	{
		videos.GET("", s.videoHandler.ListVideos)
		videos.GET("/:id/stream", s.videoHandler.StreamVideo)
	}

	control := s.router.Group("/control")
	{
		control.GET("/status", s.controlHandler.Status)
	}

	stream := s.router.Group("/stream")
	{
		stream.GET("/frame", s.streamHandler.LatestFrame)
		stream.GET("/stats", s.streamHandler.Stats)
	}

	// Frontend build, when one is deployed next to the hub
	if s.cfg.StaticDir != "" {
		s.router.Static("/app", s.cfg.StaticDir)
	}
}
