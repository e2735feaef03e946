package server

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/staffroster/core/docs"
	httpHandlers "github.com/staffroster/core/internal/adapters/http"
	"github.com/staffroster/core/internal/infrastructure/config"
	"github.com/staffroster/core/internal/infrastructure/logger"
	"github.com/staffroster/core/internal/infrastructure/metrics"
	"github.com/staffroster/core/internal/ports"
)

// StoreState is the part of the employee store the health checks look at
type StoreState interface {
	Len() int
	Stale() bool
}

// SnapshotState describes the snapshot file for the health checks
type SnapshotState interface {
	HealthCheck() error
	Info() ports.SnapshotInfo
}

// Server represents the HTTP server
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   *logger.Logger
	store    StoreState
	snapshot SnapshotState
	metrics  *metrics.Metrics
}

// New creates a new server instance. m may be nil when metrics are disabled.
func New(
	cfg *config.Config,
	employeeService ports.EmployeeService,
	store StoreState,
	snapshot SnapshotState,
	m *metrics.Metrics,
	appLogger *logger.Logger,
) (*Server, error) {
	if employeeService == nil || store == nil || snapshot == nil {
		return nil, errors.New("server: employee service, store and snapshot are required")
	}

	e := echo.New()

	e.Validator = httpHandlers.NewValidator()

	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug || cfg.App.IsDevelopment()

	e.HTTPErrorHandler = customErrorHandler(appLogger, e.Debug)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	server := &Server{
		echo:     e,
		config:   cfg,
		logger:   appLogger.WithComponent("http"),
		store:    store,
		snapshot: snapshot,
		metrics:  m,
	}

	server.setupMiddleware()

	if cfg.Metrics.Enabled && m != nil {
		server.setupMetrics()
	}

	employeeHandler := httpHandlers.NewEmployeeHandler(employeeService, server.logger)
	server.setupRoutes(employeeHandler)

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(employeeHandler *httpHandlers.EmployeeHandler) {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	employeeHandler.Register(s.echo.Group("/employees"))
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	s.echo.Use(s.metrics.Middleware())
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	storage := map[string]interface{}{
		"status":    "ok",
		"employees": s.store.Len(),
		"stale":     s.store.Stale(),
		"snapshot":  s.snapshot.Info(),
	}
	if err := s.snapshot.HealthCheck(); err != nil {
		status = "error"
		storage["status"] = "error"
		storage["error"] = err.Error()
	} else if s.store.Stale() {
		status = "degraded"
		storage["status"] = "degraded"
	}
	checks["storage"] = storage

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  runtime.Version(),
		},
	}

	if status == "error" {
		return c.JSON(http.StatusServiceUnavailable, response)
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if s.store.Stale() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "snapshot_stale",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}
