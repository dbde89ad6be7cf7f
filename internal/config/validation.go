// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/ManuGH/sportfeed/internal/provider"
	"github.com/ManuGH/sportfeed/internal/validate"
)

// Validate validates a Config using the centralized validation package
func Validate(cfg Config) error {
	v := validate.New()

	v.NotEmpty("OutputPath", cfg.OutputPath)
	v.Range("OutputIndent", cfg.OutputIndent, 1, 8)
	v.NotEmpty("UserAgent", cfg.UserAgent)

	if cfg.HTTPTimeout <= 0 {
		v.AddError("HTTPTimeout", "must be > 0", cfg.HTTPTimeout)
	}
	if cfg.FetchRate <= 0 {
		v.AddError("FetchRate", "must be > 0", cfg.FetchRate)
	}
	v.Positive("FetchBurst", cfg.FetchBurst)

	v.ListenAddr("Listen", cfg.Listen)
	if cfg.RefreshInterval <= 0 {
		v.AddError("RefreshInterval", "must be > 0", cfg.RefreshInterval)
	}
	v.Positive("APIRateLimit", cfg.APIRateLimit)

	seenNames := map[string]struct{}{}
	for i, p := range cfg.Providers {
		field := fmt.Sprintf("Providers[%d]", i)

		v.NotEmpty(field+".Name", p.Name)
		v.NotEmpty(field+".Platform", p.Platform)

		if _, ok := seenNames[p.Name]; ok {
			v.AddError(field+".Name", "duplicate provider name", p.Name)
		}
		seenNames[p.Name] = struct{}{}

		switch p.Mode {
		case "", provider.ModeRaw, provider.ModeCanonical:
		default:
			v.AddError(field+".Mode", "must be raw or canonical", string(p.Mode))
		}

		switch p.LiveCheck {
		case provider.LiveAny, provider.LiveSubstring, provider.LiveFlag:
		default:
			v.AddError(field+".LiveCheck", "must be substring or flag", string(p.LiveCheck))
		}

		switch p.Naming {
		case "", provider.NamingShort, provider.NamingFull:
		default:
			v.AddError(field+".Naming", "must be short or full", string(p.Naming))
		}

		if len(p.LocalFiles) == 0 && len(p.URLs) == 0 {
			v.AddError(field, "must configure at least one local file or URL", p.Name)
		}
		for j, u := range p.URLs {
			v.URL(fmt.Sprintf("%s.URLs[%d]", field, j), u, []string{"http", "https"})
		}

		if p.Mode != provider.ModeCanonical {
			v.Positive(field+".ChannelBase", p.ChannelBase)
			if len(p.URLCandidates) == 0 {
				v.AddError(field+".URLCandidates", "raw providers need at least one URL key", p.Name)
			}
		}

		if p.Proxy != nil {
			v.NotEmpty(field+".Proxy.Match", p.Proxy.Match)
			v.URL(field+".Proxy.WrapPrefix", p.Proxy.WrapPrefix, []string{"http", "https"})
			if p.Proxy.SkipPrefix != "" {
				v.URL(field+".Proxy.SkipPrefix", p.Proxy.SkipPrefix, []string{"http", "https"})
			}
		}
	}

	for i, r := range cfg.ReplaceRules {
		field := fmt.Sprintf("ReplaceRules[%d]", i)
		v.NotEmpty(field+".Old", r.Old)
		v.NotEmpty(field+".New", r.New)
	}

	if !v.IsValid() {
		return v.Err()
	}

	return nil
}
