package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nerrad567/device-timeline/internal/audit"
	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/export"
	"github.com/nerrad567/device-timeline/internal/infrastructure/config"
	"github.com/nerrad567/device-timeline/internal/infrastructure/database"
	"github.com/nerrad567/device-timeline/internal/infrastructure/logging"
	"github.com/nerrad567/device-timeline/internal/infrastructure/metrics"
	"github.com/nerrad567/device-timeline/internal/infrastructure/mqtt"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

const defaultMetricsPath = "/metrics"


// Searcher finds encyclopedia candidates for a query.
// lookup.Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string) []device.LookupResult
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.APIConfig
	WS       config.WebSocketConfig
	Logger   *logging.Logger
	Registry *device.Registry
	Lookup   Searcher
	Renderer *export.Renderer

	// Optional integrations, reported by GET /api/v1/metrics.
	DB      *database.DB
	MQTT    *mqtt.Client
	Metrics *metrics.Metrics

	// Audit, if set, serves GET /api/v1/activity.
	Audit audit.Repository

	// UI, if set, serves the browser screen for every path outside the API.
	UI http.Handler

	// MetricsPath is where Prometheus scrapes. Defaults to /metrics.
	MetricsPath string

	// Hub, if set, is used instead of a hub created by New. main injects it
	// so the registry notifier can broadcast before the server starts.
	Hub *Hub

	Version string
}

// Server is the HTTP API server for the device timeline.
//
// The server is created with New() and started with Start().
type Server struct {
	cfg       config.APIConfig
	wsCfg     config.WebSocketConfig
	logger    *logging.Logger
	registry  *device.Registry
	lookup    Searcher
	renderer  *export.Renderer
	db        *database.DB
	mqtt      *mqtt.Client
	metrics   *metrics.Metrics
	metricsAt string
	ui        http.Handler
	audit     audit.Repository
	hub       *Hub
	version   string
	startTime time.Time
	server    *http.Server
	cancel    context.CancelFunc
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Parameters:
//   - deps: Required dependencies (config, logger, registry, lookup, renderer)
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Registry == nil {
		return nil, fmt.Errorf("device registry is required")
	}
	if deps.Lookup == nil {
		return nil, fmt.Errorf("lookup client is required")
	}
	if deps.Renderer == nil {
		return nil, fmt.Errorf("export renderer is required")
	}

	hub := deps.Hub
	if hub == nil {
		hub = NewHub(deps.WS, deps.Logger)
	}
	metricsAt := deps.MetricsPath
	if metricsAt == "" {
		metricsAt = defaultMetricsPath
	}

	return &Server{
		cfg:       deps.Config,
		wsCfg:     deps.WS,
		logger:    deps.Logger,
		registry:  deps.Registry,
		lookup:    deps.Lookup,
		renderer:  deps.Renderer,
		db:        deps.DB,
		mqtt:      deps.MQTT,
		metrics:   deps.Metrics,
		metricsAt: metricsAt,
		ui:        deps.UI,
		audit:     deps.Audit,
		hub:       hub,
		version:   deps.Version,
		startTime: time.Now(),
	}, nil
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the fully wired router. Start uses it; tests call it
// directly with httptest.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub and launches the HTTP listener in a
// background goroutine. The server can be stopped with Close().
//
// Parameters:
//   - ctx: Parent context for the hub's lifetime
//
// Returns:
//   - error: If the server fails to start
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	go s.hub.Run(srvCtx)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}
