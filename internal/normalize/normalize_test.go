// SPDX-License-Identifier: MIT

package normalize

import "testing"

func TestToken(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Cricket", "cricket"},
		{"surrounding space", "  Live  ", "live"},
		{"zero width space", "\u200bfootball\u200b", "football"},
		{"bom", "\ufeffKabaddi", "kabaddi"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Token(tt.in); got != tt.want {
				t.Errorf("Token(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii untouched", "Mumbai Indians", "Mumbai Indians"},
		{"accented", "São Paulo", "Sao Paulo"},
		{"mixed", "Bayern München", "Bayern Munchen"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	if got := CollapseWhitespace("  India   vs\tPakistan "); got != "India vs Pakistan" {
		t.Errorf("CollapseWhitespace = %q", got)
	}
}
