// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	sflog "github.com/ManuGH/sportfeed/internal/log"
	"github.com/ManuGH/sportfeed/internal/metrics"
	"github.com/ManuGH/sportfeed/internal/provider"
)

// ErrNoSource is returned when every configured source for a provider is
// unavailable.
var ErrNoSource = errors.New("all sources unavailable")

// Loader resolves a provider's payloads: every readable, non-empty local
// snapshot file contributes one payload, and any local hit suppresses the
// remote URLs. With no local hit the URLs are tried in order and the first
// success yields a single payload. A provider with no working source yields
// an error; callers treat that as an empty batch, never as a fatal condition.
type Loader struct {
	client *Client
	logger zerolog.Logger
}

// NewLoader creates a loader around the given fetch client.
func NewLoader(client *Client) *Loader {
	return &Loader{
		client: client,
		logger: sflog.WithComponent("source"),
	}
}

// Fetch returns the raw payloads for spec.
func (l *Loader) Fetch(ctx context.Context, spec provider.Spec) ([][]byte, error) {
	var payloads [][]byte
	for _, path := range spec.LocalFiles {
		// #nosec G304 -- snapshot paths come from operator config
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				l.logger.Warn().
					Err(err).
					Str("event", "source.local_unreadable").
					Str("source", spec.Name).
					Str("path", path).
					Msg("skipping unreadable snapshot file")
			}
			continue
		}
		if len(data) == 0 {
			l.logger.Warn().
				Str("event", "source.local_empty").
				Str("source", spec.Name).
				Str("path", path).
				Msg("skipping empty snapshot file")
			continue
		}

		l.logger.Info().
			Str("event", "source.local").
			Str("source", spec.Name).
			Str("path", path).
			Int("bytes", len(data)).
			Msg("loaded local snapshot")
		metrics.IncSourceFetch(spec.Name, "local")
		payloads = append(payloads, data)
	}
	if len(payloads) > 0 {
		return payloads, nil
	}

	var lastErr error
	for _, u := range spec.URLs {
		data, err := l.client.Get(ctx, u)
		if err != nil {
			lastErr = err
			l.logger.Warn().
				Err(err).
				Str("event", "source.fetch_failed").
				Str("source", spec.Name).
				Str("url", u).
				Msg("feed fetch failed, trying next URL")
			continue
		}

		l.logger.Info().
			Str("event", "source.fetched").
			Str("source", spec.Name).
			Str("url", u).
			Int("bytes", len(data)).
			Msg("fetched feed")
		metrics.IncSourceFetch(spec.Name, "success")
		return [][]byte{data}, nil
	}

	metrics.IncSourceFetch(spec.Name, "failure")
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoSource
}
