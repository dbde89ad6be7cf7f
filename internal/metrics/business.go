// SPDX-License-Identifier: MIT
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	sourceFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportfeed_source_fetch_total",
		Help: "Feed fetch attempts per source by outcome",
	}, []string{"source", "outcome"}) // outcome=success|failure|local

	matchesFetched = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sportfeed_matches_fetched",
		Help: "Raw match records decoded per source (last refresh)",
	}, []string{"source"})

	recordsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportfeed_records_dropped_total",
		Help: "Records dropped during normalization by reason",
	}, []string{"source", "reason"}) // reason=not_live|category|no_url|dup

	channelsWritten = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sportfeed_channels_written",
		Help: "Number of channels written to the output file in last refresh",
	})

	channelSections = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sportfeed_channel_sections",
		Help: "Channels by section in last refresh",
	}, []string{"section"}) // section=manual|curated|auto

	outputWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportfeed_output_write_errors_total",
		Help: "Total number of output file write failures",
	})

	// Operational metrics
	refreshFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportfeed_refresh_failures_total",
		Help: "Total number of refresh failures by stage",
	}, []string{"stage"}) // stage=manual|fetch|decode|write

	refreshDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sportfeed_refresh_duration_seconds",
		Help:    "Time spent running a full refresh",
		Buckets: prometheus.DefBuckets,
	})

	lastRefreshTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sportfeed_last_refresh_timestamp_seconds",
		Help: "Unix timestamp of the last successful refresh",
	})

	ratelimitWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sportfeed_ratelimit_wait_seconds",
		Help:    "Time spent waiting on the outbound fetch rate limiter",
		Buckets: []float64{.001, .01, .05, .1, .25, .5, 1, 2.5, 5},
	})
)

func IncSourceFetch(source, outcome string) {
	sourceFetchTotal.WithLabelValues(source, outcome).Inc()
}

func RecordMatchesFetched(source string, n int) {
	matchesFetched.WithLabelValues(source).Set(float64(n))
}

func IncRecordDropped(source, reason string) {
	recordsDroppedTotal.WithLabelValues(source, reason).Inc()
}

func RecordChannelsWritten(n int) { channelsWritten.Set(float64(n)) }

func RecordChannelSections(manual, curated, auto int) {
	channelSections.WithLabelValues("manual").Set(float64(manual))
	channelSections.WithLabelValues("curated").Set(float64(curated))
	channelSections.WithLabelValues("auto").Set(float64(auto))
}

func IncOutputWriteError()           { outputWriteErrors.Inc() }
func IncRefreshFailure(stage string) { refreshFailuresTotal.WithLabelValues(stage).Inc() }

func ObserveRefreshDuration(d time.Duration) {
	refreshDurationSeconds.Observe(d.Seconds())
}

func RecordLastRefresh(ts time.Time) {
	lastRefreshTimestamp.Set(float64(ts.Unix()))
}

func ObserveRatelimitWait(d time.Duration) {
	ratelimitWaitSeconds.Observe(d.Seconds())
}
