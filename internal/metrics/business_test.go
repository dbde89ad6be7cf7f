// SPDX-License-Identifier: MIT

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuGH/sportfeed/internal/metrics"
)

func scrape(t *testing.T) string {
	t.Helper()
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	promhttp.Handler().ServeHTTP(recorder, req)
	return recorder.Body.String()
}

func TestPromhttpExposure(t *testing.T) {
	srv := httptest.NewServer(promhttp.Handler())
	defer srv.Close()

	if _, err := srv.Client().Get(srv.URL); err != nil {
		t.Fatal(err)
	}
}

func TestSourceFetchOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		outcome string
	}{
		{"remote success", "fancode", "success"},
		{"remote failure", "sonyliv", "failure"},
		{"local file", "fancode", "local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// This should not panic
			metrics.IncSourceFetch(tt.source, tt.outcome)

			body := scrape(t)
			if !strings.Contains(body, "sportfeed_source_fetch_total") {
				t.Error("expected sportfeed_source_fetch_total metric to be present")
			}
			expectedLabel := `source="` + tt.source + `"`
			if !strings.Contains(body, expectedLabel) {
				t.Errorf("expected label %q to be present in metrics output", expectedLabel)
			}
		})
	}
}

func TestDropReasons(t *testing.T) {
	metrics.IncRecordDropped("fancode", "not_live")
	metrics.IncRecordDropped("fancode", "dup")
	metrics.IncRecordDropped("sonyliv", "no_url")

	body := scrape(t)
	for _, label := range []string{`reason="not_live"`, `reason="dup"`, `reason="no_url"`} {
		if !strings.Contains(body, label) {
			t.Errorf("expected %s in metrics output", label)
		}
	}
}

func TestRefreshGauges(t *testing.T) {
	metrics.RecordChannelsWritten(42)
	metrics.RecordChannelSections(3, 5, 34)
	metrics.RecordMatchesFetched("fancode", 17)
	metrics.ObserveRefreshDuration(1500 * time.Millisecond)
	metrics.RecordLastRefresh(time.Unix(1700000000, 0))
	metrics.IncRefreshFailure("write")
	metrics.IncOutputWriteError()
	metrics.ObserveRatelimitWait(5 * time.Millisecond)

	body := scrape(t)
	checks := []string{
		"sportfeed_channels_written 42",
		`sportfeed_channel_sections{section="manual"} 3`,
		`sportfeed_channel_sections{section="auto"} 34`,
		`sportfeed_matches_fetched{source="fancode"} 17`,
		"sportfeed_last_refresh_timestamp_seconds 1.7e+09",
		`sportfeed_refresh_failures_total{stage="write"}`,
		"sportfeed_output_write_errors_total",
		"sportfeed_refresh_duration_seconds_count",
		"sportfeed_ratelimit_wait_seconds_count",
	}
	for _, want := range checks {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}
}
