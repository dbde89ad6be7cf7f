// SPDX-License-Identifier: MIT

package provider

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/ManuGH/sportfeed/internal/channels"
	"github.com/ManuGH/sportfeed/internal/feed"
	"github.com/ManuGH/sportfeed/internal/normalize"
)

// DropReason labels why a raw record produced no channel. Used as the
// metrics reason label.
type DropReason string

const (
	DropNone      DropReason = ""
	DropNotLive   DropReason = "not_live"
	DropCategory  DropReason = "category"
	DropNoURL     DropReason = "no_url"
	DropDuplicate DropReason = "dup"
)

var digitsRE = regexp.MustCompile(`\d+`)

// Normalize runs the full per-record flow for a ModeRaw provider: live and
// category filters, title extraction, stream-URL resolution and proxy wrap,
// display-name construction, channel-number assignment, record assembly.
// idx is the positional index used for fallback numbering; callers advance
// it only for admitted records.
//
// A record without a usable stream URL is always dropped: a channel with an
// empty URL must never reach the output document.
func Normalize(m feed.RawMatch, idx int, spec Spec, langs channels.LanguageDetector) (channels.Channel, DropReason) {
	if !isLive(m, spec) {
		return channels.Channel{}, DropNotLive
	}

	category := normalize.Token(m.First(spec.CategoryKeys...))
	if !categoryAllowed(category, spec.AllowedCategories) {
		return channels.Channel{}, DropCategory
	}

	title := m.First(spec.TitleKeys...)
	if title == "" {
		t1 := m.First(spec.Team1Keys...)
		t2 := m.First(spec.Team2Keys...)
		if t1 != "" && t2 != "" {
			title = t1 + " vs " + t2
		}
	}
	if title == "" {
		title = "Unknown Match"
	}

	url := channels.ResolveStreamURL(m, spec.URLCandidates, spec.RequireHTTP)
	if url == "" {
		return channels.Channel{}, DropNoURL
	}
	if spec.Proxy != nil {
		url = spec.Proxy.Rewrite(url)
	}

	name := title
	if spec.Naming == NamingShort {
		name = channels.CleanTitle(channels.ShortTitle(title, m.First(spec.TournamentKeys...)))
	} else if comp := m.First(spec.TournamentKeys...); comp != "" {
		name = channels.TitleWithCompetition(title, comp)
	}
	if spec.LanguageSuffix {
		name = channels.AppendLanguage(name, langs.Detect(url))
	}
	if len(spec.CategoryTags) > 0 {
		name = channels.AppendCategoryTags(name, category, spec.CategoryTags...)
	}

	id := m.First(spec.IDKeys...)
	number := assignNumber(id, idx, spec)
	if id == "" {
		id = strconv.Itoa(number)
	}

	thumb := m.First(spec.ThumbnailKeys...)
	if thumb == "" {
		thumb = spec.DefaultThumbnail
	}

	return channels.Channel{
		Number:    number,
		LinkType:  channels.LinkTypeApp,
		Platform:  spec.Platform,
		Name:      normalize.CollapseWhitespace(name),
		SubText:   spec.SubText,
		StartTime: channels.NormalizeStartTime(m.First(spec.StartTimeKeys...)),
		OwnerInfo: spec.OwnerInfo,
		Thumbnail: thumb,
		URL:       url,
		MatchID:   id,
		Category:  category,
	}, DropNone
}

func isLive(m feed.RawMatch, spec Spec) bool {
	switch spec.LiveCheck {
	case LiveSubstring:
		status := normalize.Token(m.First(spec.StatusKeys...))
		return strings.Contains(status, "live")
	case LiveFlag:
		for _, k := range spec.StatusKeys {
			if m.Bool(k) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func categoryAllowed(category string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if category == a {
			return true
		}
	}
	return false
}

// assignNumber derives the channel number: an integer match ID wins, digit
// salvage applies to mixed IDs when enabled, and the base offset (plus
// positional index when enabled) is the final fallback.
func assignNumber(id string, idx int, spec Spec) int {
	if id != "" {
		if n, err := strconv.Atoi(id); err == nil {
			return n
		}
		if spec.ExtractDigits {
			if ds := digitsRE.FindString(id); ds != "" {
				if n, err := strconv.Atoi(ds); err == nil {
					return n
				}
			}
		}
	}
	if spec.PositionalNumbers {
		return spec.ChannelBase + idx
	}
	return spec.ChannelBase
}

// DecodeCanonical parses a ModeCanonical payload: a bare array of records
// already in the canonical shape. The thumbnail override, when configured,
// is stamped on every record.
func DecodeCanonical(data []byte, spec Spec) ([]channels.Channel, error) {
	var items []channels.Channel
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if spec.ThumbnailOverride != "" {
		for i := range items {
			items[i].Thumbnail = spec.ThumbnailOverride
		}
	}
	return items, nil
}
