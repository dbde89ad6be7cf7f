// SPDX-License-Identifier: MIT

// Package normalize provides string normalization helpers shared by the
// title and language matching code.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Token normalizes a string token for matching:
// - trims Unicode whitespace + invisible edge characters
// - lowercases for case-insensitive comparisons
func Token(s string) string {
	return strings.ToLower(strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) ||
			r == '\u200b' || // Zero Width Space
			r == '\u200c' || // Zero Width Non-Joiner
			r == '\u200d' || // Zero Width Joiner
			r == '\ufeff' // Zero Width No-Break Space (BOM)
	}))
}

// Fold strips combining diacritic marks so accented team and tournament
// names keep their base letters when non-alphanumerics are removed later
// ("São Paulo" folds to "Sao Paulo" rather than losing the letter).
func Fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	return norm.NFC.String(b.String())
}

// CollapseWhitespace rewrites any run of whitespace to a single space and
// trims the edges.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
