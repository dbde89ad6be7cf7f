// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	sflog "github.com/ManuGH/sportfeed/internal/log"
	"github.com/ManuGH/sportfeed/internal/version"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"version":        version.Version,
		"uptime_seconds": int64(time.Since(s.startTime).Seconds()),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Status())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	logger := sflog.WithComponentFromContext(r.Context(), "api")

	// Acquire the refresh flag atomically; fail fast when a run is active.
	if !s.refreshing.CompareAndSwap(false, true) {
		logger.Warn().
			Str("event", "refresh.conflict").
			Msg("refresh already in progress")
		w.Header().Set("Retry-After", "30")
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":  "conflict",
			"detail": "a refresh is already in progress",
		})
		return
	}
	defer s.refreshing.Store(false)

	cfg := s.cfg.Get()

	// Detach from the request context so a client disconnect does not
	// abort a run that is already rewriting the document.
	jobCtx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	start := time.Now()
	st, err := s.refreshFn(jobCtx, cfg)
	duration := time.Since(start)

	if err != nil {
		s.mu.Lock()
		s.status.Error = "refresh failed"
		s.status.Channels = 0
		s.mu.Unlock()

		logger.Error().
			Err(err).
			Str("event", "refresh.failed").
			Int64("duration_ms", duration.Milliseconds()).
			Msg("triggered refresh failed")
		// Do not leak internal error details to clients.
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.SetStatus(*st)
	logger.Info().
		Str("event", "refresh.success").
		Int("channels", st.Channels).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("triggered refresh completed")
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleConfigReload(w http.ResponseWriter, r *http.Request) {
	logger := sflog.WithComponentFromContext(r.Context(), "api")

	if err := s.cfg.Reload(r.Context()); err != nil {
		logger.Error().
			Err(err).
			Str("event", "config.reload_failed").
			Msg("triggered config reload failed")
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":  "reload_failed",
			"detail": "configuration was not applied; previous configuration stays active",
		})
		return
	}

	logger.Info().
		Str("event", "config.reload").
		Msg("configuration reloaded")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
