// SPDX-License-Identifier: MIT

// Package provider binds upstream feeds to the normalization pipeline.
// Each feed is described by a Spec: where to fetch, which field aliases
// carry which logical value, what filters apply, and how channel numbers
// and display names are produced. Behavior differences between deployments
// are config diffs on a Spec, not code forks.
package provider

import (
	"github.com/ManuGH/sportfeed/internal/channels"
)

// Mode selects how a provider's payload is handled.
type Mode string

const (
	// ModeRaw runs the full extract/filter/normalize flow over untyped
	// match records.
	ModeRaw Mode = "raw"
	// ModeCanonical decodes records that are already in the canonical
	// channel shape and passes them through, optionally re-thumbnailed.
	ModeCanonical Mode = "canonical"
)

// LiveCheck selects how the live filter reads a raw record.
type LiveCheck string

const (
	// LiveAny disables the live filter.
	LiveAny LiveCheck = ""
	// LiveSubstring keeps records whose status field contains "live",
	// case-insensitively.
	LiveSubstring LiveCheck = "substring"
	// LiveFlag keeps records whose flag field is truthy.
	LiveFlag LiveCheck = "flag"
)

// Naming selects how display names are produced.
type Naming string

const (
	// NamingShort abbreviates team sides and tournament initials.
	NamingShort Naming = "short"
	// NamingFull keeps the full title, suffixed with the competition
	// name when one is present and not already mentioned.
	NamingFull Naming = "full"
)

// Spec describes one upstream feed and its normalization rules.
type Spec struct {
	Name     string `yaml:"name" json:"name"`
	Platform string `yaml:"platform" json:"platform"`
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Mode     Mode   `yaml:"mode" json:"mode"`

	// MergeByID folds this provider's batch into the accumulated auto list
	// by match ID instead of appending it: colliding records are replaced
	// in place, new IDs append. Off by default, matching the plain
	// concatenation the stock providers use.
	MergeByID bool `yaml:"merge_by_id" json:"merge_by_id"`

	// Fetching. Local files are preferred when any of them is readable;
	// remote URLs are fallbacks tried in order.
	LocalFiles  []string `yaml:"local_files" json:"local_files"`
	URLs        []string `yaml:"urls" json:"urls"`
	EnvelopeKey string   `yaml:"envelope_key" json:"envelope_key"`

	// Field alias chains, tried in order (ModeRaw).
	TitleKeys      []string `yaml:"title_keys" json:"title_keys"`
	Team1Keys      []string `yaml:"team1_keys" json:"team1_keys"`
	Team2Keys      []string `yaml:"team2_keys" json:"team2_keys"`
	TournamentKeys []string `yaml:"tournament_keys" json:"tournament_keys"`
	CategoryKeys   []string `yaml:"category_keys" json:"category_keys"`
	StatusKeys     []string `yaml:"status_keys" json:"status_keys"`
	IDKeys         []string `yaml:"id_keys" json:"id_keys"`
	ThumbnailKeys  []string `yaml:"thumbnail_keys" json:"thumbnail_keys"`
	StartTimeKeys  []string `yaml:"start_time_keys" json:"start_time_keys"`
	URLCandidates  []string `yaml:"url_candidates" json:"url_candidates"`

	// Filters.
	LiveCheck         LiveCheck `yaml:"live_check" json:"live_check"`
	AllowedCategories []string  `yaml:"allowed_categories" json:"allowed_categories"`
	RequireHTTP       bool      `yaml:"require_http" json:"require_http"`

	// Presentation.
	Naming         Naming   `yaml:"naming" json:"naming"`
	LanguageSuffix bool     `yaml:"language_suffix" json:"language_suffix"`
	CategoryTags   []string `yaml:"category_tags" json:"category_tags"`
	SubText        string   `yaml:"sub_text" json:"sub_text"`
	OwnerInfo      string   `yaml:"owner_info" json:"owner_info"`

	// Channel numbers: an integer match ID wins; otherwise digits are
	// salvaged from mixed IDs when ExtractDigits is set; the final
	// fallback is ChannelBase, plus the positional index when
	// PositionalNumbers is set. Bases differ per platform so numbers from
	// concatenated batches do not collide.
	ChannelBase       int  `yaml:"channel_base" json:"channel_base"`
	PositionalNumbers bool `yaml:"positional_numbers" json:"positional_numbers"`
	ExtractDigits     bool `yaml:"extract_digits" json:"extract_digits"`

	// Thumbnails.
	DefaultThumbnail  string `yaml:"default_thumbnail" json:"default_thumbnail"`
	ThumbnailOverride string `yaml:"thumbnail_override" json:"thumbnail_override"` // ModeCanonical: stamped on every record

	// Proxy wrap rule applied to resolved stream URLs (optional).
	Proxy *channels.ProxyRewriter `yaml:"proxy" json:"proxy"`
}

// FanCode returns the built-in spec for the match aggregator feed.
func FanCode() Spec {
	return Spec{
		Name:        "fancode",
		Platform:    channels.PlatformFanCode,
		Enabled:     true,
		Mode:        ModeRaw,
		LocalFiles:  []string{"fancode1.json", "fancode2.json", "fancode3.json"},
		EnvelopeKey: "matches",
		URLs: []string{
			"https://allinonereborn.online/fc/fancode.json",
			"https://allinonereborn.fun/fc/fancode.json",
			"https://raw.githubusercontent.com/drmlive/fancode-live-events/main/fancode.json",
			"https://raw.githubusercontent.com/Jitendraunatti/fancode/refs/heads/main/data/fancode.json",
		},
		TitleKeys:      []string{"title", "match_name"},
		Team1Keys:      []string{"team_1", "team1"},
		Team2Keys:      []string{"team_2", "team2"},
		TournamentKeys: []string{"tournament", "competition"},
		CategoryKeys:   []string{"category", "event_category"},
		StatusKeys:     []string{"status"},
		IDKeys:         []string{"match_id", "id", "matchId"},
		ThumbnailKeys:  []string{"src", "image"},
		StartTimeKeys:  []string{"startTime", "start_time"},
		URLCandidates: []string{
			"India", "adfree_url", "dai_url", "daiUrl",
			"stream_url", "src", "srcUrl", "url", "video_url",
		},
		LiveCheck:         LiveSubstring,
		AllowedCategories: []string{"cricket", "kabaddi", "football"},
		Naming:            NamingShort,
		LanguageSuffix:    true,
		CategoryTags:      []string{"Kabaddi", "Football"},
		SubText:           channels.DefaultSubText,
		OwnerInfo:         channels.DefaultOwnerInfo,
		ChannelBase:       600,
		PositionalNumbers: true,
		DefaultThumbnail:  "https://gitlab.com/appzombies/ipl_data_api/-/raw/main/cricket_league_vectors/all_live_streaming.png",
		Proxy: &channels.ProxyRewriter{
			Match:      "fancode.com",
			WrapPrefix: "https://allinonereborn.fun/fcw/stream_proxy.php?url=",
			SkipPrefix: "https://allinonereborn.fun/fc/play.php?url=",
		},
	}
}

// SonyLiv returns the built-in spec for the broadcaster feed.
func SonyLiv() Spec {
	return Spec{
		Name:        "sonyliv",
		Platform:    channels.PlatformSonyLiv,
		Enabled:     true,
		Mode:        ModeRaw,
		EnvelopeKey: "matches",
		URLs: []string{
			"https://raw.githubusercontent.com/drmlive/sliv-live-events/main/sonyliv.json",
		},
		TitleKeys:         []string{"event_name"},
		CategoryKeys:      []string{"event_category"},
		StatusKeys:        []string{"isLive"},
		IDKeys:            []string{"contentId"},
		ThumbnailKeys:     []string{"src"},
		URLCandidates:     []string{"dai_url", "video_url"},
		LiveCheck:         LiveFlag,
		AllowedCategories: []string{"cricket", "football", "hockey", "kabaddi"},
		Naming:            NamingFull,
		SubText:           channels.DefaultSubText,
		OwnerInfo:         channels.DefaultOwnerInfo,
		ChannelBase:       900,
		ExtractDigits:     true,
		DefaultThumbnail:  "https://i.ibb.co/ygQ6gT3/sonyliv.png",
	}
}

// CricHD returns the built-in spec for the curated selection list, which is
// already in the canonical channel shape.
func CricHD() Spec {
	return Spec{
		Name:     "crichd",
		Platform: channels.PlatformCricHD,
		Enabled:  true,
		Mode:     ModeCanonical,
		URLs: []string{
			"https://raw.githubusercontent.com/jitupatel2506/crichd-auto-fetch/refs/heads/main/crichd-auto-fetch/auto_crichd_selected_api.json",
		},
		ThumbnailOverride: "https://gitlab.com/ranginfotech89/ipl_data_api/-/raw/main/stream_categories/cricket_league_vectors/all_live_streaming_worldwide.png",
	}
}

// Builtins returns the stock provider set in fetch order.
func Builtins() []Spec {
	return []Spec{FanCode(), SonyLiv(), CricHD()}
}
