// SPDX-License-Identifier: MIT

package channels

import "testing"

func TestDedupIndexAdmit(t *testing.T) {
	d := NewDedupIndex()

	// First sighting of a match is admitted.
	if !d.Admit("123", "hindi") {
		t.Fatal("first hindi record must be admitted")
	}
	// A different language bucket for the same match is admitted.
	if !d.Admit("123", DefaultLanguageBucket) {
		t.Fatal("untagged record must occupy its own bucket")
	}
	// Exact repeat of the untagged bucket is rejected.
	if d.Admit("123", DefaultLanguageBucket) {
		t.Fatal("second untagged record must be rejected")
	}
	// And the same for the tagged one.
	if d.Admit("123", "hindi") {
		t.Fatal("second hindi record must be rejected")
	}

	if d.Len() != 1 {
		t.Errorf("Len = %d, want 1", d.Len())
	}
}

func TestDedupIndexLanguageInvariant(t *testing.T) {
	// Retained count for one match ID equals the number of distinct
	// language buckets among its records.
	buckets := []string{"hindi", "tamil", "hindi", "default", "tamil", "default", "odia"}
	distinct := map[string]struct{}{}

	d := NewDedupIndex()
	retained := 0
	for _, b := range buckets {
		if d.Admit("match-7", b) {
			retained++
		}
		distinct[b] = struct{}{}
	}

	if retained != len(distinct) {
		t.Errorf("retained %d records, want %d (distinct buckets)", retained, len(distinct))
	}
}

func TestDedupIndexNoID(t *testing.T) {
	d := NewDedupIndex()

	for i := 0; i < 3; i++ {
		if !d.Admit("", "default") {
			t.Fatal("records without an ID must always be admitted")
		}
	}
	if d.Len() != 0 {
		t.Errorf("Len = %d, want 0 (no IDs recorded)", d.Len())
	}
}
