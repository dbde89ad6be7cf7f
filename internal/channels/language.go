// SPDX-License-Identifier: MIT

package channels

import "strings"

// DefaultLanguageBucket is the dedup bucket used when a stream URL carries
// no recognizable language keyword. It occupies a bucket of its own: an
// untagged variant and a tagged variant of the same match may both survive
// dedup.
const DefaultLanguageBucket = "default"

// LanguagePair maps a URL keyword to the canonical language name shown in
// channel titles.
type LanguagePair struct {
	Keyword string `yaml:"keyword" json:"keyword"`
	Name    string `yaml:"name" json:"name"`
}

// LanguageDetector scans stream URLs for language keywords. Order matters:
// the first keyword found wins, so more specific entries belong first.
type LanguageDetector []LanguagePair

// DefaultLanguages returns the stock keyword mapping for the Indian feeds
// this service aggregates. English is detected so callers can recognize it,
// but it is treated as the implicit default and never used as a title suffix.
func DefaultLanguages() LanguageDetector {
	return LanguageDetector{
		{Keyword: "hindi", Name: "Hindi"},
		{Keyword: "malayalam", Name: "Malayalam"},
		{Keyword: "telugu", Name: "Telugu"},
		{Keyword: "tamil", Name: "Tamil"},
		{Keyword: "kannada", Name: "Kannada"},
		{Keyword: "bangla", Name: "Bangla"},
		{Keyword: "marathi", Name: "Marathi"},
		{Keyword: "gujarati", Name: "Gujarati"},
		{Keyword: "punjabi", Name: "Punjabi"},
		{Keyword: "odia", Name: "Odia"},
		{Keyword: "english", Name: "English"},
	}
}

// Detect returns the canonical name of the first language keyword contained
// in the URL, or "" when none matches.
func (d LanguageDetector) Detect(url string) string {
	if url == "" {
		return ""
	}
	lower := strings.ToLower(url)
	for _, p := range d {
		if strings.Contains(lower, p.Keyword) {
			return p.Name
		}
	}
	return ""
}

// Bucket returns the dedup bucket for a URL: the lower-cased detected
// language, or DefaultLanguageBucket when none is found.
func (d LanguageDetector) Bucket(url string) string {
	if lang := d.Detect(url); lang != "" {
		return strings.ToLower(lang)
	}
	return DefaultLanguageBucket
}

// IsSuffixable reports whether a detected language should be appended to a
// channel title. English and the empty result never are.
func IsSuffixable(lang string) bool {
	return lang != "" && !strings.EqualFold(lang, "english")
}
