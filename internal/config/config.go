// SPDX-License-Identifier: MIT

// Package config resolves the sportfeed runtime configuration from three
// layers: built-in defaults, an optional YAML file, and SPORTFEED_*
// environment variables, in that precedence order.
package config

import (
	"strings"
	"time"

	"github.com/ManuGH/sportfeed/internal/channels"
	"github.com/ManuGH/sportfeed/internal/provider"
)

// Config is the resolved, immutable view handed to the pipeline and the
// daemon. Build one through Load; do not mutate it afterwards.
type Config struct {
	// Feed aggregation.
	Providers    []provider.Spec
	Languages    channels.LanguageDetector
	Ordering     channels.OrderingPolicy
	ReplaceRules []channels.ReplaceRule

	// Manual curated list.
	ManualFile      string
	ManualThumbnail string // when set, stamped on every manual record

	// Output document.
	OutputPath    string
	OutputIndent  int
	WrappedOutput bool // {"channels": [...], "last_updated": ...} instead of a bare list

	// Fetching.
	UserAgent   string
	HTTPTimeout time.Duration
	FetchRate   float64 // requests per second against upstream feeds
	FetchBurst  int

	// Daemon mode.
	Listen          string
	RefreshInterval time.Duration
	APIRateLimit    int // POST /api/refresh requests per minute per client
}

// Default returns the stock configuration: all built-in providers, the
// stock language table and ordering policy, and the paths the CI job has
// always used.
func Default() Config {
	return Config{
		Providers:       provider.Builtins(),
		Languages:       channels.DefaultLanguages(),
		Ordering:        channels.DefaultOrdering(),
		ManualFile:      "live_stream/all_streams.json",
		OutputPath:      "live_stream/auto_update_all_streams.json",
		OutputIndent:    2,
		UserAgent:       "Mozilla/5.0",
		HTTPTimeout:     12 * time.Second,
		FetchRate:       2,
		FetchBurst:      4,
		Listen:          ":8080",
		RefreshInterval: 5 * time.Minute,
		APIRateLimit:    10,
	}
}

// Load resolves the configuration: defaults, then the YAML file when path
// is non-empty, then environment variables. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		fc, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		fc.apply(&cfg)
	}

	applyEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays SPORTFEED_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	cfg.ManualFile = ParseString("SPORTFEED_MANUAL_FILE", cfg.ManualFile)
	cfg.ManualThumbnail = ParseString("SPORTFEED_MANUAL_THUMBNAIL", cfg.ManualThumbnail)
	cfg.OutputPath = ParseString("SPORTFEED_OUTPUT", cfg.OutputPath)
	cfg.OutputIndent = ParseInt("SPORTFEED_OUTPUT_INDENT", cfg.OutputIndent)
	cfg.WrappedOutput = ParseBool("SPORTFEED_OUTPUT_WRAPPED", cfg.WrappedOutput)
	cfg.UserAgent = ParseString("SPORTFEED_USER_AGENT", cfg.UserAgent)
	cfg.HTTPTimeout = ParseDuration("SPORTFEED_HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.FetchRate = ParseFloat("SPORTFEED_FETCH_RATE", cfg.FetchRate)
	cfg.FetchBurst = ParseInt("SPORTFEED_FETCH_BURST", cfg.FetchBurst)
	cfg.Listen = ParseString("SPORTFEED_LISTEN", cfg.Listen)
	cfg.RefreshInterval = ParseDuration("SPORTFEED_INTERVAL", cfg.RefreshInterval)
	cfg.APIRateLimit = ParseInt("SPORTFEED_API_RATE_LIMIT", cfg.APIRateLimit)

	// SPORTFEED_PROVIDERS narrows the enabled provider set to a
	// comma-separated name list, e.g. "fancode,crichd".
	if names := ParseString("SPORTFEED_PROVIDERS", ""); names != "" {
		enabled := map[string]bool{}
		for _, n := range strings.Split(names, ",") {
			enabled[strings.TrimSpace(strings.ToLower(n))] = true
		}
		for i := range cfg.Providers {
			cfg.Providers[i].Enabled = enabled[cfg.Providers[i].Name]
		}
	}
}

// EnabledProviders returns the providers switched on in this configuration,
// preserving fetch order.
func (c Config) EnabledProviders() []provider.Spec {
	out := make([]provider.Spec, 0, len(c.Providers))
	for _, p := range c.Providers {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}
