// Package http provides the HTTP server hosting the anti-forgery API.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	antiforgeryHTTP "github.com/allisson/antiforgery/internal/antiforgery/http"
	"github.com/allisson/antiforgery/internal/antiforgery/usecase"
	"github.com/allisson/antiforgery/internal/config"
	"github.com/allisson/antiforgery/internal/metrics"
)

// Server hosts the session and token registry API.
type Server struct {
	server         *http.Server
	router         *gin.Engine
	logger         *slog.Logger
	cfg            *config.Config
	sessionHandler *antiforgeryHTTP.SessionHandler
	sessionUseCase usecase.SessionUseCase
	meterProvider  metric.MeterProvider
}

// NewServer creates a new HTTP server. meterProvider may be nil when metrics
// are disabled.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	sessionHandler *antiforgeryHTTP.SessionHandler,
	sessionUseCase usecase.SessionUseCase,
	meterProvider metric.MeterProvider,
) *Server {
	return &Server{
		logger:         logger,
		cfg:            cfg,
		sessionHandler: sessionHandler,
		sessionUseCase: sessionUseCase,
		meterProvider:  meterProvider,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter assembles the gin router with all middleware and routes.
func (s *Server) SetupRouter() *gin.Engine {
	gin.SetMode(s.cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if s.meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.meterProvider, s.cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if s.cfg.RateLimitEnabled {
		v1.Use(antiforgeryHTTP.RateLimitMiddleware(
			s.cfg.RateLimitRequestsPerSec,
			s.cfg.RateLimitBurst,
			s.logger,
		))
	}

	v1.POST("/sessions", s.sessionHandler.CreateHandler)
	v1.DELETE("/sessions/:id", s.sessionHandler.DeleteHandler)
	v1.POST("/sessions/:id/tokens", s.sessionHandler.GenerateTokenHandler)
	v1.DELETE("/sessions/:id/tokens", s.sessionHandler.ClearTokensHandler)
	v1.POST("/sessions/:id/verify", s.sessionHandler.VerifyTokenHandler)
	v1.GET("/sessions/:id/stats", s.sessionHandler.StatsHandler)

	return router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can accept traffic.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"sessions": "ok"}
	if s.sessionUseCase == nil {
		components["sessions"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		s.router = s.SetupRouter()
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
