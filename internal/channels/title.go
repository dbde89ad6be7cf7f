// SPDX-License-Identifier: MIT

package channels

import (
	"regexp"
	"strings"

	"github.com/ManuGH/sportfeed/internal/normalize"
)

var (
	vsSplitRE  = regexp.MustCompile(`(?i)\s+vs\s+`)
	nonAlnumRE = regexp.MustCompile(`[^A-Za-z0-9\s]`)
	yearRE     = regexp.MustCompile(`\b(20\d{2})\b`)
)

// ShortTitle builds the compact display name for a match: team sides are
// abbreviated and joined with " vs ", the tournament collapses to initials
// plus a season year. "Mumbai Indians vs Chennai Super Kings" with
// "Indian Premier League, 2025" becomes "MI vs CSK - IPL 2025".
//
// An empty title falls back to the tournament string verbatim, or "Unknown"
// when both are empty. The result may carry a dangling " -" when the
// tournament yields nothing; CleanTitle removes it.
func ShortTitle(title, tournament string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		if t := strings.TrimSpace(tournament); t != "" {
			return t
		}
		return "Unknown"
	}

	sides := vsSplitRE.Split(title, -1)
	short := make([]string, 0, len(sides))
	for _, side := range sides {
		short = append(short, shortenSide(side))
	}

	return strings.TrimSpace(strings.Join(short, " vs ") + " - " + shortTournament(tournament))
}

// shortenSide abbreviates one team name. One word keeps its first three
// letters. Two words keep both initials when the second word is long,
// otherwise the first initial plus two letters of the second ("Chennai SK"
// style inputs). Three or more words keep the initials of the first three.
func shortenSide(side string) string {
	clean := nonAlnumRE.ReplaceAllString(normalize.Fold(side), "")
	words := strings.Fields(clean)

	switch {
	case len(words) == 0:
		return ""
	case len(words) == 1:
		w := strings.ToUpper(words[0])
		if len(w) > 3 {
			w = w[:3]
		}
		return w
	case len(words) == 2:
		w1, w2 := words[0], words[1]
		if len(w2) >= 5 {
			return strings.ToUpper(w1[:1] + w2[:1])
		}
		n := 2
		if len(w2) < n {
			n = len(w2)
		}
		return strings.ToUpper(w1[:1] + w2[:n])
	default:
		var b strings.Builder
		for _, w := range words[:3] {
			b.WriteString(strings.ToUpper(w[:1]))
		}
		return b.String()
	}
}

// shortTournament reduces a tournament name to upper-case initials of its
// non-numeric words (at most four) plus a 20xx season year when one appears.
func shortTournament(tournament string) string {
	clean := nonAlnumRE.ReplaceAllString(normalize.Fold(tournament), "")

	year := ""
	if m := yearRE.FindStringSubmatch(clean); m != nil {
		year = m[1]
	}

	var initials strings.Builder
	for _, w := range strings.Fields(clean) {
		if isDigits(w) {
			continue
		}
		if initials.Len() == 4 {
			break
		}
		initials.WriteString(strings.ToUpper(w[:1]))
	}

	return strings.TrimSpace(initials.String() + " " + year)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CleanTitle trims the dangling hyphen left behind when a shortened title
// had no tournament part.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)
	if strings.HasSuffix(title, "-") {
		title = strings.TrimSpace(strings.TrimSuffix(title, "-"))
	}
	return title
}

// TitleWithCompetition appends the competition name to a full title unless
// the title already mentions it. Used for curated records, which keep their
// full names instead of the shortened form.
func TitleWithCompetition(title, competition string) string {
	competition = strings.TrimSpace(competition)
	if competition == "" {
		return title
	}
	if strings.Contains(strings.ToLower(title), strings.ToLower(competition)) {
		return title
	}
	return title + " - " + competition
}

// AppendLanguage suffixes the detected audio language. English is the
// implicit default and is never appended.
func AppendLanguage(title, lang string) string {
	if !IsSuffixable(lang) {
		return title
	}
	return title + " - " + lang
}

// AppendCategoryTags suffixes display tags such as "Kabaddi" or "Football"
// when the record's category matches and the title does not already carry
// the tag, checked case-insensitively to avoid double tagging.
func AppendCategoryTags(title, category string, tags ...string) string {
	lowerCat := strings.ToLower(category)
	for _, tag := range tags {
		lowerTag := strings.ToLower(tag)
		if strings.Contains(lowerCat, lowerTag) && !strings.Contains(strings.ToLower(title), lowerTag) {
			title += " - " + tag
		}
	}
	return title
}
