// Package api exposes the computed analysis read-only over HTTP: summary,
// aggregates, data quality and test results. The API never mutates the
// book; every value is recomputed at startup from the source file.
package api

import (
	"net/http"
	"time"

	"riskbook/app"
	"riskbook/domain/core"
	"riskbook/internal"
	"riskbook/internal/analysis"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// State holds one analysis run's outputs for serving
type State struct {
	Report   *app.EDAReport
	Sweep    *analysis.SweepResult
	RunID    core.RunID
	LoadedAt time.Time
}

// Server is the read-only JSON API
type Server struct {
	state  *State
	logger *internal.Logger
	router chi.Router
}

// NewServer creates the API server over precomputed state
func NewServer(state *State, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{state: state, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/profile", s.handleProfile)
		r.Get("/aggregates/{dimension}", s.handleAggregates)
		r.Get("/tests", s.handleTests)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the server on addr
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("API listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}
