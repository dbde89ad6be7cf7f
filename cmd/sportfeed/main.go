// SPDX-License-Identifier: MIT

// Command sportfeed builds the merged channel document from the configured
// match feeds. The default mode runs one refresh and exits, matching the
// cron job that has always produced the file; -daemon keeps the process
// alive with a refresh loop and the HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/sportfeed/internal/config"
	"github.com/ManuGH/sportfeed/internal/daemon"
	sflog "github.com/ManuGH/sportfeed/internal/log"
	"github.com/ManuGH/sportfeed/internal/pipeline"
	"github.com/ManuGH/sportfeed/internal/version"
)

// Exit codes: 1 covers configuration and startup problems, 2 is reserved
// for a failed document write so the cron wrapper can tell them apart.
const (
	exitOK          = 0
	exitConfigError = 1
	exitWriteError  = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to config file (YAML)")
	daemonMode := flag.Bool("daemon", false, "run the refresh loop and HTTP API instead of a single pass")
	once := flag.Bool("once", false, "force a single refresh pass even when -daemon is set")
	interval := flag.Duration("interval", 0, "override the refresh interval in daemon mode")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		return exitOK
	}

	// Level defaults to info; SPORTFEED_LOG_LEVEL overrides it inside
	// Configure.
	sflog.Configure(sflog.Config{
		Service: "sportfeed",
		Version: version.Version,
	})
	logger := sflog.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Explicit -config wins; otherwise pick up sportfeed.yaml from the
	// working directory when it exists.
	effectivePath := strings.TrimSpace(*configPath)
	if effectivePath == "" {
		if _, err := os.Stat("sportfeed.yaml"); err == nil {
			effectivePath = "sportfeed.yaml"
		}
	}

	cfg, err := config.Load(effectivePath)
	if err != nil {
		logger.Error().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", effectivePath).
			Msg("failed to load configuration")
		return exitConfigError
	}
	if *interval > 0 {
		cfg.RefreshInterval = *interval
	}

	logger.Info().
		Str("event", "startup").
		Str("version", version.Version).
		Str("commit", version.Commit).
		Str("build_date", version.Date).
		Str("output", cfg.OutputPath).
		Int("providers", len(cfg.EnabledProviders())).
		Bool("daemon", *daemonMode && !*once).
		Msg("starting sportfeed")

	if *daemonMode && !*once {
		return runDaemon(ctx, logger, cfg, effectivePath)
	}
	return runOnce(ctx, logger, cfg)
}

func runOnce(ctx context.Context, logger zerolog.Logger, cfg config.Config) int {
	start := time.Now()
	st, err := pipeline.Refresh(ctx, cfg)
	if err != nil {
		if errors.Is(err, pipeline.ErrWrite) {
			logger.Error().
				Err(err).
				Str("event", "run.write_failed").
				Msg("could not write channel document")
			return exitWriteError
		}
		logger.Error().
			Err(err).
			Str("event", "run.failed").
			Msg("refresh failed")
		return exitConfigError
	}

	logger.Info().
		Str("event", "run.complete").
		Int("channels", st.Channels).
		Int("manual", st.Manual).
		Int("curated", st.Curated).
		Int("auto", st.Auto).
		Int("dropped", st.Dropped).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("document updated")
	return exitOK
}

func runDaemon(ctx context.Context, logger zerolog.Logger, cfg config.Config, configPath string) int {
	holder := config.NewHolder(cfg, configPath)
	d := daemon.New(holder)
	if err := d.Run(ctx); err != nil {
		logger.Error().
			Err(err).
			Str("event", "daemon.failed").
			Msg("daemon exited with error")
		return exitConfigError
	}
	logger.Info().
		Str("event", "shutdown").
		Msg("sportfeed exiting")
	return exitOK
}
