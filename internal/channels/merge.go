// SPDX-License-Identifier: MIT

package channels

// MergeByID folds a later batch into an accumulated list by match ID.
// A colliding record overwrites the earlier one in place, keeping its
// position; new IDs and records without an ID are appended. Last write
// wins, mirroring how provider batches layer over each other.
func MergeByID(acc []Channel, batch []Channel) []Channel {
	if len(batch) == 0 {
		return acc
	}
	index := make(map[string]int, len(acc))
	for i, ch := range acc {
		if ch.MatchID != "" {
			index[ch.MatchID] = i
		}
	}
	for _, ch := range batch {
		if ch.MatchID != "" {
			if i, ok := index[ch.MatchID]; ok {
				acc[i] = ch
				continue
			}
			index[ch.MatchID] = len(acc)
		}
		acc = append(acc, ch)
	}
	return acc
}
