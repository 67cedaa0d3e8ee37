package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskman/configs"
	"taskman/delivery/rest"
	"taskman/delivery/rest/middleware"
	"taskman/infrastructure/logger"
)

// Server wraps the gin engine
type Server struct {
	engine     *gin.Engine
	config     configs.ServerConfig
	httpServer *http.Server
}

// NewServer creates a new HTTP server
func NewServer(cfg configs.ServerConfig, h *rest.Handler) *Server {
	engine := gin.New()

	engine.Use(middleware.Logger())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.CORS())

	s := &Server{
		engine: engine,
		config: cfg,
	}

	s.registerRoutes(engine, h)

	return s
}

// registerRoutes sets up all API routes
func (s *Server) registerRoutes(engine *gin.Engine, h *rest.Handler) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Task Manager API is running",
		})
	})

	tasks := engine.Group("/tasks")
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/stats/summary", h.GetStats)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.PATCH("/:id/toggle", h.ToggleTask)
		tasks.DELETE("/:id", h.DeleteTask)
	}
}

// Engine exposes the gin engine, mainly for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.config.Address(),
		Handler: s.engine,
	}

	logger.Info("Starting HTTP server on " + s.config.Address())
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
