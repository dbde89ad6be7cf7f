// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/sportfeed/internal/channels"
	"github.com/ManuGH/sportfeed/internal/provider"
)

// Duration wraps time.Duration so YAML values like "30s" decode.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// FileConfig is the YAML representation. Absent sections leave the
// corresponding defaults untouched; a present providers or languages list
// replaces the built-in set wholesale, keeping deployment diffs explicit.
type FileConfig struct {
	Output *struct {
		Path    string `yaml:"path"`
		Indent  int    `yaml:"indent"`
		Wrapped *bool  `yaml:"wrapped"`
	} `yaml:"output"`

	Manual *struct {
		File      string `yaml:"file"`
		Thumbnail string `yaml:"thumbnail"`
	} `yaml:"manual"`

	Fetch *struct {
		UserAgent string   `yaml:"user_agent"`
		Timeout   Duration `yaml:"timeout"`
		Rate      float64  `yaml:"rate"`
		Burst     int      `yaml:"burst"`
	} `yaml:"fetch"`

	Daemon *struct {
		Listen       string   `yaml:"listen"`
		Interval     Duration `yaml:"interval"`
		APIRateLimit int      `yaml:"api_rate_limit"`
	} `yaml:"daemon"`

	Providers    []provider.Spec          `yaml:"providers"`
	Languages    []channels.LanguagePair  `yaml:"languages"`
	Ordering     *channels.OrderingPolicy `yaml:"ordering"`
	ReplaceRules []channels.ReplaceRule   `yaml:"replace_rules"`
}

// readFile parses path strictly: unknown fields, multiple documents and
// trailing content are rejected so config typos fail loudly.
func readFile(path string) (*FileConfig, error) {
	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields

	if err := dec.Decode(&fc); err != nil {
		if err == io.EOF {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fc, nil
}

// apply overlays the file values onto cfg.
func (fc *FileConfig) apply(cfg *Config) {
	if fc == nil {
		return
	}
	if fc.Output != nil {
		if fc.Output.Path != "" {
			cfg.OutputPath = fc.Output.Path
		}
		if fc.Output.Indent > 0 {
			cfg.OutputIndent = fc.Output.Indent
		}
		if fc.Output.Wrapped != nil {
			cfg.WrappedOutput = *fc.Output.Wrapped
		}
	}
	if fc.Manual != nil {
		if fc.Manual.File != "" {
			cfg.ManualFile = fc.Manual.File
		}
		if fc.Manual.Thumbnail != "" {
			cfg.ManualThumbnail = fc.Manual.Thumbnail
		}
	}
	if fc.Fetch != nil {
		if fc.Fetch.UserAgent != "" {
			cfg.UserAgent = fc.Fetch.UserAgent
		}
		if fc.Fetch.Timeout > 0 {
			cfg.HTTPTimeout = time.Duration(fc.Fetch.Timeout)
		}
		if fc.Fetch.Rate > 0 {
			cfg.FetchRate = fc.Fetch.Rate
		}
		if fc.Fetch.Burst > 0 {
			cfg.FetchBurst = fc.Fetch.Burst
		}
	}
	if fc.Daemon != nil {
		if fc.Daemon.Listen != "" {
			cfg.Listen = fc.Daemon.Listen
		}
		if fc.Daemon.Interval > 0 {
			cfg.RefreshInterval = time.Duration(fc.Daemon.Interval)
		}
		if fc.Daemon.APIRateLimit > 0 {
			cfg.APIRateLimit = fc.Daemon.APIRateLimit
		}
	}
	if len(fc.Providers) > 0 {
		cfg.Providers = fc.Providers
	}
	if len(fc.Languages) > 0 {
		cfg.Languages = channels.LanguageDetector(fc.Languages)
	}
	if fc.Ordering != nil {
		cfg.Ordering = *fc.Ordering
	}
	if len(fc.ReplaceRules) > 0 {
		cfg.ReplaceRules = fc.ReplaceRules
	}
}
