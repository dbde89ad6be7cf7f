// SPDX-License-Identifier: MIT

// Package daemon runs the long-lived mode: the HTTP API, the scheduled
// refresh loop, and the config and manual-list file watchers, with
// graceful shutdown.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/ManuGH/sportfeed/internal/api"
	"github.com/ManuGH/sportfeed/internal/config"
	sflog "github.com/ManuGH/sportfeed/internal/log"
)

const (
	readTimeout       = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	maxHeaderBytes    = 1 << 20
	shutdownTimeout   = 10 * time.Second
)

// Daemon ties the config holder, the API server, and the refresh ticker
// together.
type Daemon struct {
	holder *config.Holder
	server *api.Server
	logger zerolog.Logger
}

// New creates a daemon around an existing config holder.
func New(holder *config.Holder) *Daemon {
	return &Daemon{
		holder: holder,
		server: api.New(holder),
		logger: sflog.WithComponent("daemon"),
	}
}

// Run performs an initial refresh, starts the HTTP server and the config
// watcher, then refreshes on every interval tick until ctx is canceled.
// It returns nil on a clean shutdown.
func (d *Daemon) Run(ctx context.Context) error {
	cfg := d.holder.Get()

	d.refresh(ctx)

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           d.server.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		d.logger.Info().
			Str("event", "daemon.listen").
			Str("addr", cfg.Listen).
			Msg("API server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("api server: %w", err)
		}
	}()

	if err := d.holder.StartWatcher(ctx); err != nil {
		d.logger.Warn().
			Err(err).
			Str("event", "daemon.watcher_failed").
			Msg("config watcher not started, hot reload disabled")
	}
	defer d.holder.Stop()

	reloads := make(chan config.Config, 1)
	d.holder.RegisterListener(reloads)

	manualChanged := make(chan struct{}, 1)
	if err := d.watchManual(ctx, cfg.ManualFile, manualChanged); err != nil {
		d.logger.Warn().
			Err(err).
			Str("event", "daemon.manual_watch_failed").
			Str("path", cfg.ManualFile).
			Msg("manual list watcher not started, edits picked up on the next tick")
	}

	ticker := time.NewTicker(cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().
				Str("event", "daemon.shutdown").
				Msg("shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)

		case err := <-errChan:
			return err

		case next := <-reloads:
			if next.RefreshInterval != cfg.RefreshInterval {
				ticker.Reset(next.RefreshInterval)
				d.logger.Info().
					Str("event", "daemon.interval_changed").
					Dur("interval", next.RefreshInterval).
					Msg("refresh interval updated")
			}
			cfg = next

		case <-manualChanged:
			d.logger.Info().
				Str("event", "daemon.manual_changed").
				Msg("manual list edited, refreshing")
			d.refresh(ctx)

		case <-ticker.C:
			d.refresh(ctx)
		}
	}
}

// watchManual watches the manual list file and signals ch on debounced
// write/create events. The watcher is bound to the path from startup
// config; a missing file means there is nothing to watch yet and the
// regular ticker covers it.
func (d *Daemon) watchManual(ctx context.Context, path string, ch chan<- struct{}) error {
	if path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch manual file: %w", err)
	}

	d.logger.Info().
		Str("event", "daemon.manual_watch").
		Str("path", path).
		Msg("watching manual list for changes")

	go func() {
		defer func() { _ = watcher.Close() }()

		var debounce *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, func() {
					select {
					case ch <- struct{}{}:
					default:
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				d.logger.Error().
					Err(err).
					Str("event", "daemon.manual_watch_error").
					Msg("manual list watcher error")
			}
		}
	}()

	return nil
}

// refresh runs one scheduled cycle. Failures are logged and reflected in
// the status endpoint; they never stop the loop.
func (d *Daemon) refresh(ctx context.Context) {
	st, err := d.server.RunScheduledRefresh(ctx)
	switch {
	case err != nil:
		d.logger.Error().
			Err(err).
			Str("event", "daemon.refresh_failed").
			Msg("scheduled refresh failed")
	case st == nil:
		d.logger.Debug().
			Str("event", "daemon.tick_skipped").
			Msg("refresh already running, tick skipped")
	}
}
