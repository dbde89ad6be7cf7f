// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name     string
		value    *string
		fallback string
		want     string
	}{
		{"set", ptr("custom"), "default", "custom"},
		{"empty uses default", ptr(""), "default", "default"},
		{"unset uses default", nil, "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "SPORTFEED_TEST_STRING"
			if tt.value != nil {
				t.Setenv(key, *tt.value)
			}
			if got := ParseString(key, tt.fallback); got != tt.want {
				t.Errorf("ParseString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name     string
		value    *string
		fallback int
		want     int
	}{
		{"valid", ptr("42"), 7, 42},
		{"negative", ptr("-3"), 7, -3},
		{"invalid uses default", ptr("abc"), 7, 7},
		{"empty uses default", ptr(""), 7, 7},
		{"unset uses default", nil, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "SPORTFEED_TEST_INT"
			if tt.value != nil {
				t.Setenv(key, *tt.value)
			}
			if got := ParseInt(key, tt.fallback); got != tt.want {
				t.Errorf("ParseInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    *string
		fallback float64
		want     float64
	}{
		{"valid", ptr("2.5"), 1, 2.5},
		{"integer form", ptr("4"), 1, 4},
		{"invalid uses default", ptr("fast"), 1.5, 1.5},
		{"unset uses default", nil, 1.5, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "SPORTFEED_TEST_FLOAT"
			if tt.value != nil {
				t.Setenv(key, *tt.value)
			}
			if got := ParseFloat(key, tt.fallback); got != tt.want {
				t.Errorf("ParseFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    *string
		fallback time.Duration
		want     time.Duration
	}{
		{"seconds", ptr("30s"), time.Minute, 30 * time.Second},
		{"minutes", ptr("5m"), time.Minute, 5 * time.Minute},
		{"invalid uses default", ptr("soon"), time.Minute, time.Minute},
		{"bare number uses default", ptr("30"), time.Minute, time.Minute},
		{"unset uses default", nil, time.Minute, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "SPORTFEED_TEST_DURATION"
			if tt.value != nil {
				t.Setenv(key, *tt.value)
			}
			if got := ParseDuration(key, tt.fallback); got != tt.want {
				t.Errorf("ParseDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		name     string
		value    *string
		fallback bool
		want     bool
	}{
		{"true", ptr("true"), false, true},
		{"one", ptr("1"), false, true},
		{"yes uppercase", ptr("YES"), false, true},
		{"false", ptr("false"), true, false},
		{"zero", ptr("0"), true, false},
		{"no", ptr("no"), true, false},
		{"invalid uses default", ptr("maybe"), true, true},
		{"unset uses default", nil, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "SPORTFEED_TEST_BOOL"
			if tt.value != nil {
				t.Setenv(key, *tt.value)
			}
			if got := ParseBool(key, tt.fallback); got != tt.want {
				t.Errorf("ParseBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func ptr(s string) *string { return &s }
