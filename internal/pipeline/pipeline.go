// SPDX-License-Identifier: MIT

// Package pipeline runs the refresh cycle that produces the channel
// document: fetch each enabled provider in order, normalize and dedup its
// records, fold the batches together with the manual list, order the
// result, and write it atomically. A failed provider degrades to an empty
// batch; only a failed output write aborts the run.
package pipeline

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/ManuGH/sportfeed/internal/config"
	"github.com/ManuGH/sportfeed/internal/provider"
	"github.com/ManuGH/sportfeed/internal/source"
)

// Fetcher resolves a provider spec to its raw payloads: one per readable
// local snapshot, or a single remote feed. Implemented by source.Loader;
// faked in tests.
type Fetcher interface {
	Fetch(ctx context.Context, spec provider.Spec) ([][]byte, error)
}

// Status represents the outcome of the most recent refresh run.
type Status struct {
	LastRun  time.Time `json:"last_run"`
	Channels int       `json:"channels"`
	Manual   int       `json:"manual"`
	Curated  int       `json:"curated"`
	Auto     int       `json:"auto"`
	Dropped  int       `json:"dropped"`
	Error    string    `json:"error,omitempty"`
}

// Pipeline executes refresh runs against a Fetcher.
type Pipeline struct {
	fetcher Fetcher
	now     func() time.Time
}

// New creates a pipeline around the given fetcher.
func New(fetcher Fetcher) *Pipeline {
	return &Pipeline{fetcher: fetcher, now: time.Now}
}

// Refresh performs one complete cycle with a fetcher built from the
// configuration. Daemon mode calls this once per tick.
func Refresh(ctx context.Context, cfg config.Config) (*Status, error) {
	client := source.NewClient(source.Options{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
		Rate:      rate.Limit(cfg.FetchRate),
		Burst:     cfg.FetchBurst,
	})
	return New(source.NewLoader(client)).Refresh(ctx, cfg)
}
