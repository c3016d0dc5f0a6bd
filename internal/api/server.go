package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ledgerlens/reconcile-backend/internal/api/handlers"
	"github.com/ledgerlens/reconcile-backend/internal/domain/recon"
	"github.com/ledgerlens/reconcile-backend/internal/infrastructure/store"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	EngineDefaults recon.MatchConfig
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		EngineDefaults: recon.DefaultConfig(),
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
	repo       store.Repository
}

// NewServer creates a new API server.
func NewServer(cfg Config, repo store.Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		config: cfg,
		router: router,
		logger: logger,
		repo:   repo,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	s.router.Use(s.requestLogger())
}

// requestLogger logs each request through the structured logger,
// skipping health checks.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Millisecond).String())
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	s.router.GET("/health", handlers.Health)

	api := s.router.Group("/api")
	{
		reconcileHandler := handlers.NewReconcileHandler(s.repo, s.config.EngineDefaults, s.logger)
		api.POST("/reconcile", reconcileHandler.Reconcile)

		runsHandler := handlers.NewRunsHandler(s.repo)
		api.GET("/runs", runsHandler.List)
		api.GET("/runs/:id", runsHandler.Get)
		api.GET("/runs/:id/unmatched", runsHandler.Unmatched)

		statsHandler := handlers.NewStatsHandler(s.repo)
		api.GET("/stats", statsHandler.Get)
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the gin engine for testing.
func (s *Server) Router() http.Handler {
	return s.router
}
