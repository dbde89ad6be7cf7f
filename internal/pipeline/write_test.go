// SPDX-License-Identifier: MIT
package pipeline

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ManuGH/sportfeed/internal/channels"
)

func TestEncodeDocumentEmptyList(t *testing.T) {
	data, err := EncodeDocument(nil, 2, false, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestEncodeDocumentKeepsQuerySeparators(t *testing.T) {
	chs := []channels.Channel{{
		Name: "Wrapped",
		URL:  "https://proxy.example/stream.php?url=http://cdn/a.m3u8&lang=hi",
	}}
	data, err := EncodeDocument(chs, 2, false, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Contains(string(data), `\u0026`) {
		t.Fatalf("ampersand was escaped: %s", data)
	}
	if !strings.Contains(string(data), "&lang=hi") {
		t.Fatalf("query separator missing: %s", data)
	}
}

func TestEncodeDocumentIndent(t *testing.T) {
	chs := []channels.Channel{{Name: "A", URL: "http://cdn/a.m3u8"}}
	data, err := EncodeDocument(chs, 4, false, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(string(data), "\n        \"channelNumber\"") {
		t.Fatalf("expected 4-space indent, got: %s", data)
	}
}

func TestEncodeDocumentWrapped(t *testing.T) {
	now := time.Date(2025, 8, 27, 19, 30, 0, 0, time.UTC)
	chs := []channels.Channel{{Name: "A", URL: "http://cdn/a.m3u8"}}
	data, err := EncodeDocument(chs, 2, true, now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var doc struct {
		Channels    []channels.Channel `json:"channels"`
		LastUpdated string             `json:"last_updated"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if len(doc.Channels) != 1 {
		t.Fatalf("expected 1 channel, got %d", len(doc.Channels))
	}
	if doc.LastUpdated != "2025-08-27 19:30:00" {
		t.Fatalf("unexpected last_updated: %q", doc.LastUpdated)
	}
}

func TestEncodeDocumentFieldOrder(t *testing.T) {
	chs := []channels.Channel{{
		Number:   7,
		LinkType: channels.LinkTypeApp,
		Platform: channels.PlatformFanCode,
		Name:     "Alpha vs Beta",
		URL:      "http://cdn/a.m3u8",
		MatchID:  "m1",
	}}
	data, err := EncodeDocument(chs, 2, false, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	s := string(data)
	numIdx := strings.Index(s, `"channelNumber"`)
	urlIdx := strings.Index(s, `"channelUrl"`)
	idIdx := strings.Index(s, `"match_id"`)
	if numIdx == -1 || urlIdx == -1 || idIdx == -1 {
		t.Fatalf("missing keys in document: %s", s)
	}
	if !(numIdx < urlIdx && urlIdx < idIdx) {
		t.Fatalf("unexpected key order: %s", s)
	}
}
