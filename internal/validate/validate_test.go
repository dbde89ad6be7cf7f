// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"strings"
	"testing"
)

func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name           string
		value          string
		allowedSchemes []string
		wantErr        bool
	}{
		{"valid http", "http://example.com", []string{"http", "https"}, false},
		{"valid https", "https://example.com", []string{"http", "https"}, false},
		{"empty url", "", []string{"http"}, true},
		{"no host", "http://", []string{"http"}, true},
		{"invalid scheme", "ftp://example.com", []string{"http", "https"}, true},
		{"no scheme", "example.com", []string{"http"}, true},
		{"with port", "http://example.com:8080", []string{"http"}, false},
		{"with path", "http://example.com/path", []string{"http"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.URL("testURL", tt.value, tt.allowedSchemes)

			if tt.wantErr && v.IsValid() {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && !v.IsValid() {
				t.Errorf("unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_ListenAddr(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"port only", ":8080", false},
		{"host and port", "127.0.0.1:8080", false},
		{"hostname", "localhost:80", false},
		{"empty", "", true},
		{"missing port", "localhost", true},
		{"non numeric port", ":http", true},
		{"port zero", ":0", true},
		{"port too large", ":70000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.ListenAddr("listen", tt.value)

			if tt.wantErr && v.IsValid() {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && !v.IsValid() {
				t.Errorf("unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		min     int
		max     int
		wantErr bool
	}{
		{"in range", 5, 1, 10, false},
		{"at min", 1, 1, 10, false},
		{"at max", 10, 1, 10, false},
		{"below min", 0, 1, 10, true},
		{"above max", 11, 1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Range("testValue", tt.value, tt.min, tt.max)

			if tt.wantErr && v.IsValid() {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && !v.IsValid() {
				t.Errorf("unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_OneOf(t *testing.T) {
	allowed := []string{"short", "full"}

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"first", "short", false},
		{"second", "full", false},
		{"unknown", "fancy", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.OneOf("naming", tt.value, allowed)

			if tt.wantErr && v.IsValid() {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && !v.IsValid() {
				t.Errorf("unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_NotEmpty(t *testing.T) {
	v := New()
	v.NotEmpty("name", "fancode")
	v.NotEmpty("blank", "   ")
	v.NotEmpty("empty", "")

	if v.IsValid() {
		t.Fatal("expected errors for blank values")
	}
	if got := len(v.Errors()); got != 2 {
		t.Errorf("expected 2 errors, got %d", got)
	}
}

func TestValidator_Positive(t *testing.T) {
	v := New()
	v.Positive("base", 600)
	if !v.IsValid() {
		t.Errorf("unexpected error: %v", v.Err())
	}

	v.Positive("base", 0)
	v.Positive("base", -1)
	if got := len(v.Errors()); got != 2 {
		t.Errorf("expected 2 errors, got %d", got)
	}
}

func TestValidationError_Message(t *testing.T) {
	v := New()
	v.AddError("output.path", "value cannot be empty", "")
	v.AddError("daemon.listen", "invalid listen address", "nope")

	err := v.Err()
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()
	if !strings.Contains(msg, "output.path") || !strings.Contains(msg, "daemon.listen") {
		t.Errorf("combined message missing fields: %s", msg)
	}
	if !strings.Contains(msg, "; ") {
		t.Errorf("multiple errors should be joined with '; ': %s", msg)
	}

	var vErr ValidationError
	if !errors.As(err, &vErr) {
		t.Fatal("expected ValidationError")
	}
	if len(vErr.Errors()) != 2 {
		t.Errorf("expected 2 wrapped errors, got %d", len(vErr.Errors()))
	}
}

func TestValidatorErrNilWhenValid(t *testing.T) {
	v := New()
	if err := v.Err(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}
