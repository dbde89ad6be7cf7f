// SPDX-License-Identifier: MIT

package channels

// DedupIndex tracks the language buckets already admitted per match ID.
// A match may appear once per language, so a Hindi and a Tamil stream of
// the same fixture coexist while exact repeats are rejected. Records
// without an ID are never deduplicated.
type DedupIndex struct {
	seen map[string]map[string]struct{}
}

// NewDedupIndex returns an empty index.
func NewDedupIndex() *DedupIndex {
	return &DedupIndex{seen: make(map[string]map[string]struct{})}
}

// Admit reports whether a record with the given match ID and language bucket
// is new, recording it when so. The empty language is callers' signal for
// "no bucketing"; use DefaultLanguageBucket for untagged streams so they
// occupy their own slot.
func (d *DedupIndex) Admit(matchID, language string) bool {
	if matchID == "" {
		return true
	}
	langs, ok := d.seen[matchID]
	if !ok {
		d.seen[matchID] = map[string]struct{}{language: {}}
		return true
	}
	if _, dup := langs[language]; dup {
		return false
	}
	langs[language] = struct{}{}
	return true
}

// Len returns the number of distinct match IDs admitted so far.
func (d *DedupIndex) Len() int {
	return len(d.seen)
}
