// SPDX-License-Identifier: MIT

package channels

import "strings"

// OrderingPolicy is the presentation-order knob for the final document.
// It is policy, not data integrity: the viewer shows the list top to
// bottom, so priority sports float to the front of the auto batch and the
// merged list is reversed to surface the newest entries first.
type OrderingPolicy struct {
	// PriorityCategories are partitioned to the front of the auto batch,
	// matched as lower-cased substrings of the record category. Relative
	// order inside each partition is preserved.
	PriorityCategories []string `yaml:"priority_categories" json:"priority_categories"`
	// Reverse flips the merged manual+curated+auto list before writing.
	Reverse bool `yaml:"reverse" json:"reverse"`
}

// DefaultOrdering is the shipped policy: football and kabaddi first,
// newest entries surfaced by the final reversal.
func DefaultOrdering() OrderingPolicy {
	return OrderingPolicy{
		PriorityCategories: []string{"football", "kabaddi"},
		Reverse:            true,
	}
}

// PartitionPriority stably moves priority-category records to the front.
func (p OrderingPolicy) PartitionPriority(chs []Channel) []Channel {
	if len(p.PriorityCategories) == 0 || len(chs) == 0 {
		return chs
	}
	front := make([]Channel, 0, len(chs))
	rest := make([]Channel, 0, len(chs))
	for _, ch := range chs {
		if p.isPriority(ch.Category) {
			front = append(front, ch)
		} else {
			rest = append(rest, ch)
		}
	}
	return append(front, rest...)
}

func (p OrderingPolicy) isPriority(category string) bool {
	lower := strings.ToLower(category)
	for _, c := range p.PriorityCategories {
		if c != "" && strings.Contains(lower, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

// Arrange produces the final output order: the auto batch is partitioned,
// the three batches are concatenated manual-first, and the whole list is
// reversed when the policy says so.
func (p OrderingPolicy) Arrange(manual, curated, auto []Channel) []Channel {
	auto = p.PartitionPriority(auto)

	out := make([]Channel, 0, len(manual)+len(curated)+len(auto))
	out = append(out, manual...)
	out = append(out, curated...)
	out = append(out, auto...)

	if p.Reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
