package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Prometheus scrape endpoint, outside the versioned API.
	if s.metrics != nil {
		r.Handle(s.metricsAt, s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/metrics", s.handleMetrics)

		r.Route("/devices", func(r chi.Router) {
			r.Get("/", s.handleListDevices)
			r.Post("/", s.handleCreateDevice)
			r.Delete("/", s.handleResetDevices)
			r.Post("/from-lookup", s.handleCreateFromLookup)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDevice)
				r.Put("/", s.handleUpdateDevice)
				r.Delete("/", s.handleDeleteDevice)
			})
		})

		r.Get("/timeline", s.handleTimeline)
		if s.audit != nil {
			r.Get("/activity", s.handleActivity)
		}
		r.Get("/lookup", s.handleLookup)
		r.Post("/import", s.handleImport)
		r.Get("/export/{format}", s.handleExport)

		r.Get("/ws", s.handleWebSocket)
	})

	if s.ui != nil {
		r.Handle("/*", s.ui)
	}

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err != nil {
			status = "degraded"
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  status,
		"version": s.version,
	})
}
