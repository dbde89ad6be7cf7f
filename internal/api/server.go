// SPDX-License-Identifier: MIT

// Package api exposes the daemon's HTTP surface: health and readiness
// probes, the refresh trigger, run status, the generated channel document,
// and Prometheus metrics.
package api

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuGH/sportfeed/internal/config"
	"github.com/ManuGH/sportfeed/internal/pipeline"
)

// refreshTimeout bounds one triggered refresh run. A run is a handful of
// feed fetches, so anything longer means an upstream is wedged.
const refreshTimeout = 2 * time.Minute

// ConfigSource yields the current configuration and supports an explicit
// reload. Implemented by config.Holder.
type ConfigSource interface {
	Get() config.Config
	Reload(ctx context.Context) error
}

// Server is the HTTP API for the daemon.
type Server struct {
	mu         sync.RWMutex
	refreshing atomic.Bool // serialize refreshes via atomic flag
	ready      atomic.Bool // latched after the first successful run
	cfg        ConfigSource
	status     pipeline.Status
	startTime  time.Time

	// refreshFn allows tests to stub the refresh run; defaults to
	// pipeline.Refresh.
	refreshFn func(context.Context, config.Config) (*pipeline.Status, error)
}

// New creates an API server reading configuration from src.
func New(src ConfigSource) *Server {
	return &Server{
		cfg:       src,
		startTime: time.Now(),
		refreshFn: pipeline.Refresh,
	}
}

// SetStatus records the outcome of a refresh run. A successful run marks
// the server ready; readiness latches and never reverts.
func (s *Server) SetStatus(st pipeline.Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
	if st.Error == "" {
		s.ready.Store(true)
	}
}

// Status returns a copy of the last recorded run status.
func (s *Server) Status() pipeline.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// RunScheduledRefresh executes one refresh under the same serialization
// flag as the HTTP trigger. A tick that collides with a running refresh is
// skipped rather than queued; skips return (nil, nil).
func (s *Server) RunScheduledRefresh(ctx context.Context) (*pipeline.Status, error) {
	if !s.refreshing.CompareAndSwap(false, true) {
		return nil, nil
	}
	defer s.refreshing.Store(false)

	st, err := s.refreshFn(ctx, s.cfg.Get())
	if err != nil {
		s.mu.Lock()
		s.status.Error = "refresh failed"
		s.status.Channels = 0
		s.mu.Unlock()
		return nil, err
	}
	s.SetStatus(*st)
	return st, nil
}

// Handler builds the routed HTTP handler. The rate limit is read once at
// build time, so limit changes need a restart.
func (s *Server) Handler() http.Handler {
	limit := s.cfg.Get().APIRateLimit

	r := chi.NewRouter()
	r.Use(recoverer)
	r.Use(requestID)
	r.Use(requestMetrics)
	r.Use(accessLog)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/channels.json", s.handleDocument)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.With(rateLimit(limit, time.Minute)).Post("/refresh", s.handleRefresh)
		r.With(rateLimit(limit, time.Minute)).Post("/config/reload", s.handleConfigReload)
	})

	return r
}
