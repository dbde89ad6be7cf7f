// SPDX-License-Identifier: MIT

// Package channels defines the canonical channel record emitted to the
// downstream viewer and the normalization primitives that produce it:
// language detection, title shortening, stream-URL resolution and proxy
// rewriting, dedup, and output ordering.
package channels

import (
	"strings"
	"time"
)

// Platform values carried in the canonical record.
const (
	PlatformFanCode = "FanCode"
	PlatformSonyLiv = "SonyLiv"
	PlatformCricHD  = "CricHD"
	PlatformManual  = "manual"
)

// Display constants shared by all auto-generated records.
const (
	LinkTypeApp      = "app"
	DefaultSubText   = "Live Streaming Now"
	DefaultOwnerInfo = "Stream provided by public source"
)

// Channel is the canonical record consumed by the viewer app. Field names
// and JSON casing are part of the downstream contract and must not change.
type Channel struct {
	Number     int    `json:"channelNumber"`
	LinkType   string `json:"linkType"`
	Platform   string `json:"platform"`
	Name       string `json:"channelName"`
	SubText    string `json:"subText"`
	StartTime  string `json:"startTime"`
	DRMLicence string `json:"drm_licence"`
	OwnerInfo  string `json:"ownerInfo"`
	Thumbnail  string `json:"thumbnail"`
	URL        string `json:"channelUrl"`
	MatchID    string `json:"match_id"`
	Category   string `json:"category,omitempty"`
}

// startTimeInput is the schedule stamp format some feeds deliver,
// e.g. "07:30:00 PM 27-08-2025".
const startTimeInput = "03:04:05 PM 02-01-2006"

// startTimeOutput is the viewer-facing form, e.g. "2025-08-27 07:30 PM".
const startTimeOutput = "2006-01-02 03:04 PM"

// NormalizeStartTime converts a feed schedule stamp into the viewer-facing
// form. Input that does not match the known feed format passes through
// trimmed, so unexpected formats stay visible rather than vanish.
func NormalizeStartTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	t, err := time.Parse(startTimeInput, raw)
	if err != nil {
		return raw
	}
	return t.Format(startTimeOutput)
}
