// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

var testBuf bytes.Buffer

func TestMain(m *testing.M) {
	// Pin the once-guarded global logger to a buffer so tests can
	// inspect emitted fields.
	Configure(Config{Level: "debug", Output: &testBuf, Version: "test"})
	os.Exit(m.Run())
}

func lastLogLine(t *testing.T) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(testBuf.String()), "\n")
	if len(lines) == 0 || lines[len(lines)-1] == "" {
		t.Fatal("expected at least one log line")
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	return entry
}

func TestConfigureOnce(t *testing.T) {
	var second bytes.Buffer
	Configure(Config{Output: &second, Service: "other"})

	testBuf.Reset()
	logger := Base()
	logger.Info().Str("event", "test.configure").Msg("hello")

	if second.Len() != 0 {
		t.Errorf("second Configure call must not take effect, got %q", second.String())
	}
	entry := lastLogLine(t)
	if entry["service"] != "sportfeed" {
		t.Errorf("service = %v, want sportfeed", entry["service"])
	}
	if entry["version"] != "test" {
		t.Errorf("version = %v, want test", entry["version"])
	}
	if entry["event"] != "test.configure" {
		t.Errorf("event = %v, want test.configure", entry["event"])
	}
}

func TestWithComponent(t *testing.T) {
	testBuf.Reset()
	logger := WithComponent("pipeline")
	logger.Info().Msg("component check")

	entry := lastLogLine(t)
	if entry["component"] != "pipeline" {
		t.Errorf("component = %v, want pipeline", entry["component"])
	}
	if entry["message"] != "component check" {
		t.Errorf("message = %v, want component check", entry["message"])
	}
}
