// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ManuGH/sportfeed/internal/channels"
	"github.com/ManuGH/sportfeed/internal/config"
	"github.com/ManuGH/sportfeed/internal/feed"
	sflog "github.com/ManuGH/sportfeed/internal/log"
	"github.com/ManuGH/sportfeed/internal/metrics"
	"github.com/ManuGH/sportfeed/internal/provider"
)

// Refresh runs the full cycle: manual list, sequential provider fetches,
// ordering, replace rules, atomic write. Provider failures shrink the
// output instead of aborting it; the returned error is non-nil only when
// the document could not be written.
func (p *Pipeline) Refresh(ctx context.Context, cfg config.Config) (*Status, error) {
	ctx = sflog.ContextWithJobID(ctx, uuid.New().String())
	logger := sflog.WithComponentFromContext(ctx, "pipeline")
	start := p.now()

	enabled := cfg.EnabledProviders()
	logger.Info().
		Str("event", "refresh.start").
		Int("providers", len(enabled)).
		Msg("starting refresh")

	manual := p.loadManual(ctx, cfg)

	var curated, auto []channels.Channel
	dropped := 0
	for _, spec := range enabled {
		batch, skipped := p.collect(ctx, spec, cfg.Languages)
		dropped += skipped
		switch {
		case spec.Mode == provider.ModeCanonical:
			curated = append(curated, batch...)
		case spec.MergeByID:
			auto = channels.MergeByID(auto, batch)
		default:
			auto = append(auto, batch...)
		}
	}

	out := cfg.Ordering.Arrange(manual, curated, auto)
	channels.ApplyReplaceRules(out, cfg.ReplaceRules)

	// A canceled run must not replace a good document with the empty
	// batches its aborted fetches produced.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("refresh aborted: %w", err)
	}

	if err := p.write(ctx, cfg, out); err != nil {
		metrics.IncRefreshFailure("write")
		return nil, err
	}

	metrics.RecordChannelsWritten(len(out))
	metrics.RecordChannelSections(len(manual), len(curated), len(auto))
	metrics.ObserveRefreshDuration(p.now().Sub(start))
	metrics.RecordLastRefresh(p.now())

	status := &Status{
		LastRun:  p.now(),
		Channels: len(out),
		Manual:   len(manual),
		Curated:  len(curated),
		Auto:     len(auto),
		Dropped:  dropped,
	}
	logger.Info().
		Str("event", "refresh.success").
		Int("channels", status.Channels).
		Int("manual", status.Manual).
		Int("curated", status.Curated).
		Int("auto", status.Auto).
		Int("dropped", status.Dropped).
		Msg("refresh completed")
	return status, nil
}

// collect fetches and normalizes one provider's batch. It returns the
// admitted channels plus the number of records dropped by filters or
// dedup. Any failure yields an empty batch so the other providers still
// reach the output.
func (p *Pipeline) collect(ctx context.Context, spec provider.Spec, langs channels.LanguageDetector) ([]channels.Channel, int) {
	logger := sflog.WithComponentFromContext(ctx, "pipeline")

	payloads, err := p.fetcher.Fetch(ctx, spec)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("event", "refresh.provider_skipped").
			Str("provider", spec.Name).
			Msg("provider yielded no data")
		metrics.IncRefreshFailure("fetch")
		return nil, 0
	}

	if spec.Mode == provider.ModeCanonical {
		var items []channels.Channel
		for _, payload := range payloads {
			decoded, err := provider.DecodeCanonical(payload, spec)
			if err != nil {
				logger.Warn().
					Err(err).
					Str("event", "refresh.decode_failed").
					Str("provider", spec.Name).
					Msg("curated payload not decodable")
				metrics.IncRefreshFailure("decode")
				continue
			}
			items = append(items, decoded...)
		}
		metrics.RecordMatchesFetched(spec.Name, len(items))
		logger.Info().
			Str("event", "refresh.provider_done").
			Str("provider", spec.Name).
			Int("admitted", len(items)).
			Msg("curated batch loaded")
		return items, 0
	}

	var raws []feed.RawMatch
	for _, payload := range payloads {
		decoded, err := feed.DecodeCollection(payload, spec.EnvelopeKey)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("event", "refresh.decode_failed").
				Str("provider", spec.Name).
				Msg("feed payload not decodable")
			metrics.IncRefreshFailure("decode")
			continue
		}
		raws = append(raws, decoded...)
	}
	metrics.RecordMatchesFetched(spec.Name, len(raws))

	seen := channels.NewDedupIndex()
	batch := make([]channels.Channel, 0, len(raws))
	skipped := 0
	for _, m := range raws {
		ch, reason := provider.Normalize(m, len(batch)+1, spec, langs)
		if reason != provider.DropNone {
			logger.Debug().
				Str("event", "refresh.record_dropped").
				Str("provider", spec.Name).
				Str("reason", string(reason)).
				Msg("record dropped")
			metrics.IncRecordDropped(spec.Name, string(reason))
			skipped++
			continue
		}
		if !seen.Admit(ch.MatchID, langs.Bucket(ch.URL)) {
			logger.Debug().
				Str("event", "refresh.record_dropped").
				Str("provider", spec.Name).
				Str("reason", string(provider.DropDuplicate)).
				Str("match_id", ch.MatchID).
				Msg("record dropped")
			metrics.IncRecordDropped(spec.Name, string(provider.DropDuplicate))
			skipped++
			continue
		}
		batch = append(batch, ch)
	}

	logger.Info().
		Str("event", "refresh.provider_done").
		Str("provider", spec.Name).
		Int("fetched", len(raws)).
		Int("admitted", len(batch)).
		Int("dropped", skipped).
		Msg("provider batch normalized")
	return batch, skipped
}
