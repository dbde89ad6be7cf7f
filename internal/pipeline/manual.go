// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ManuGH/sportfeed/internal/channels"
	"github.com/ManuGH/sportfeed/internal/config"
	"github.com/ManuGH/sportfeed/internal/fsutil"
	sflog "github.com/ManuGH/sportfeed/internal/log"
	"github.com/ManuGH/sportfeed/internal/metrics"
	"github.com/ManuGH/sportfeed/internal/provider"
)

// loadManual reads the curated manual list. A missing local file is normal
// and yields an empty batch; read or decode failures are logged and
// likewise yield an empty batch so a broken manual file never takes down
// the run. The manual source may be a local path or an http(s) URL.
func (p *Pipeline) loadManual(ctx context.Context, cfg config.Config) []channels.Channel {
	logger := sflog.WithComponentFromContext(ctx, "pipeline")
	if cfg.ManualFile == "" {
		return nil
	}

	data, err := p.readManual(ctx, cfg.ManualFile)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("event", "manual.load_failed").
			Str("source", cfg.ManualFile).
			Msg("manual list unavailable")
		metrics.IncRefreshFailure("manual")
		return nil
	}
	if data == nil {
		logger.Debug().
			Str("event", "manual.missing").
			Str("source", cfg.ManualFile).
			Msg("no manual list present")
		return nil
	}

	var items []channels.Channel
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn().
			Err(err).
			Str("event", "manual.decode_failed").
			Str("source", cfg.ManualFile).
			Msg("manual list not decodable")
		metrics.IncRefreshFailure("manual")
		return nil
	}

	if cfg.ManualThumbnail != "" {
		for i := range items {
			items[i].Thumbnail = cfg.ManualThumbnail
		}
	}

	logger.Info().
		Str("event", "manual.loaded").
		Str("source", cfg.ManualFile).
		Int("items", len(items)).
		Msg("manual list loaded")
	return items
}

// readManual resolves the manual source. It returns (nil, nil) when a
// local file does not exist.
func (p *Pipeline) readManual(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		payloads, err := p.fetcher.Fetch(ctx, provider.Spec{Name: "manual", URLs: []string{src}})
		if err != nil {
			return nil, err
		}
		if len(payloads) == 0 {
			return nil, nil
		}
		return payloads[0], nil
	}

	if err := fsutil.IsRegularFile(src); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("manual file: %w", err)
	}

	data, err := os.ReadFile(src) // #nosec G304 -- manual list path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read manual file: %w", err)
	}
	return data, nil
}
