// SPDX-License-Identifier: MIT

package channels

import (
	"strings"

	"github.com/ManuGH/sportfeed/internal/feed"
)

// ResolveStreamURL walks the provider's candidate fields in priority order
// and returns the first non-empty trimmed value. Candidates containing a dot
// are resolved through nested CDN sub-objects. When requireHTTP is set,
// values without an http(s) scheme prefix are skipped. An empty result is
// the drop signal for the whole record.
func ResolveStreamURL(m feed.RawMatch, candidates []string, requireHTTP bool) string {
	for _, key := range candidates {
		var v string
		if strings.Contains(key, ".") {
			v = m.NestedStr(key)
		} else {
			v = m.Str(key)
		}
		if v == "" {
			continue
		}
		if requireHTTP && !strings.HasPrefix(strings.ToLower(v), "http") {
			continue
		}
		return v
	}
	return ""
}

// ProxyRewriter wraps geo or hotlink restricted origin URLs in a relay
// endpoint so downstream playback works.
//
// Two prefixes mark a URL as already wrapped: WrapPrefix itself and the
// legacy SkipPrefix, which points at an older relay endpoint that existing
// curated entries still carry. The shipped values for the two endpoints
// intentionally differ; both are part of the deployed contract.
type ProxyRewriter struct {
	Match      string `yaml:"match" json:"match"`             // origin substring that triggers wrapping
	WrapPrefix string `yaml:"wrap_prefix" json:"wrap_prefix"` // relay endpoint the URL is appended to
	SkipPrefix string `yaml:"skip_prefix" json:"skip_prefix"` // legacy relay prefix, also counts as wrapped
}

// Rewrite wraps url when it matches the origin and is not already wrapped.
// Applying Rewrite twice yields the same result as applying it once.
func (p ProxyRewriter) Rewrite(url string) string {
	if url == "" || p.Match == "" || p.WrapPrefix == "" {
		return url
	}
	if !strings.Contains(url, p.Match) {
		return url
	}
	if strings.HasPrefix(url, p.WrapPrefix) {
		return url
	}
	if p.SkipPrefix != "" && strings.HasPrefix(url, p.SkipPrefix) {
		return url
	}
	return p.WrapPrefix + url
}

// ReplaceRule swaps one URL prefix for another. Applied to the final ordered
// list so manual and curated entries are rewritten too.
type ReplaceRule struct {
	Old string `yaml:"old" json:"old"`
	New string `yaml:"new" json:"new"`
}

// Apply rewrites url when it starts with the old prefix.
func (r ReplaceRule) Apply(url string) string {
	if r.Old == "" || !strings.HasPrefix(url, r.Old) {
		return url
	}
	return r.New + url[len(r.Old):]
}

// ApplyReplaceRules runs every rule over every channel URL in place.
func ApplyReplaceRules(chs []Channel, rules []ReplaceRule) {
	if len(rules) == 0 {
		return
	}
	for i := range chs {
		for _, rule := range rules {
			chs[i].URL = rule.Apply(chs[i].URL)
		}
	}
}
