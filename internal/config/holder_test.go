// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Test helper: create a minimal valid config file
func writeHolderConfig(t *testing.T, path, outputPath string) {
	t.Helper()
	content := fmt.Sprintf("output:\n  path: %s\n", outputPath)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestNewHolder(t *testing.T) {
	initial := Default()
	initial.OutputPath = "initial.json"

	holder := NewHolder(initial, "/path/to/config.yaml")
	if holder == nil {
		t.Fatal("expected Holder, got nil")
	}

	got := holder.Get()
	if got.OutputPath != "initial.json" {
		t.Errorf("expected OutputPath %q, got %q", "initial.json", got.OutputPath)
	}
}

func TestHolder_Get_ReturnsCopy(t *testing.T) {
	initial := Default()
	holder := NewHolder(initial, "")

	got := holder.Get()
	got.OutputPath = "modified.json"

	if holder.Get().OutputPath == "modified.json" {
		t.Error("Get() should return a copy, not a reference")
	}
}

func TestHolder_Reload_Success(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	writeHolderConfig(t, configPath, "old.json")

	initial, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load initial config: %v", err)
	}

	holder := NewHolder(initial, configPath)

	writeHolderConfig(t, configPath, "new.json")

	if err := holder.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}

	got := holder.Get()
	if got.OutputPath != "new.json" {
		t.Errorf("expected OutputPath %q after reload, got %q", "new.json", got.OutputPath)
	}
}

func TestHolder_Reload_StrictParseFailure(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	writeHolderConfig(t, configPath, "stable.json")

	initial, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load initial config: %v", err)
	}

	holder := NewHolder(initial, configPath)

	invalid := "output:\n  path: other.json\nunknownField: rejected\n"
	if err := os.WriteFile(configPath, []byte(invalid), 0600); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}

	if err := holder.Reload(context.Background()); err == nil {
		t.Fatal("expected Reload() to fail with strict parsing error, got nil")
	}

	got := holder.Get()
	if got.OutputPath != "stable.json" {
		t.Errorf("expected old config to be preserved, got OutputPath %q", got.OutputPath)
	}
}

func TestHolder_Reload_ValidationFailure(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	writeHolderConfig(t, configPath, "stable.json")

	initial, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load initial config: %v", err)
	}

	holder := NewHolder(initial, configPath)

	invalid := "output:\n  path: stable.json\ndaemon:\n  listen: nonsense\n"
	if err := os.WriteFile(configPath, []byte(invalid), 0600); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}

	if err := holder.Reload(context.Background()); err == nil {
		t.Fatal("expected Reload() to fail with validation error, got nil")
	}

	got := holder.Get()
	if got.Listen != ":8080" {
		t.Errorf("expected old Listen to be preserved, got %q", got.Listen)
	}
}

func TestHolder_RegisterListener(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	writeHolderConfig(t, configPath, "old.json")

	initial, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	holder := NewHolder(initial, configPath)

	ch := make(chan Config, 1)
	holder.RegisterListener(ch)

	writeHolderConfig(t, configPath, "new.json")

	if err := holder.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}

	select {
	case received := <-ch:
		if received.OutputPath != "new.json" {
			t.Errorf("expected listener to receive OutputPath %q, got %q", "new.json", received.OutputPath)
		}
	default:
		t.Error("listener did not receive config update")
	}
}

func TestHolder_NotifyListeners_NonBlocking(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	writeHolderConfig(t, configPath, "old.json")

	initial, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	holder := NewHolder(initial, configPath)

	// Register listener with no buffer (should not block)
	ch := make(chan Config)
	holder.RegisterListener(ch)

	writeHolderConfig(t, configPath, "new.json")

	if err := holder.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}

	// Test passes if Reload() didn't block
}

func TestHolder_Stop(t *testing.T) {
	holder := NewHolder(Default(), "")

	// Call Stop (should not panic even if watcher is nil)
	holder.Stop()
}

func TestHolder_StartWatcher_EmptyPath(t *testing.T) {
	holder := NewHolder(Default(), "")

	if err := holder.StartWatcher(context.Background()); err != nil {
		t.Errorf("StartWatcher with empty path should not error, got: %v", err)
	}

	holder.Stop()
}

func TestHolder_LogChanges(t *testing.T) {
	old := Default()
	newCfg := Default()
	newCfg.OutputPath = "changed.json"
	newCfg.Listen = ":9999"
	newCfg.WrappedOutput = true

	holder := NewHolder(old, "")

	// Call logChanges (should not panic)
	holder.logChanges(old, newCfg)
}
