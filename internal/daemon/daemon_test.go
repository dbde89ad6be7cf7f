// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/ManuGH/sportfeed/internal/config"
)

func daemonConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Providers = nil
	cfg.ManualFile = ""
	cfg.OutputPath = filepath.Join(t.TempDir(), "out.json")
	cfg.Listen = "127.0.0.1:0"
	cfg.RefreshInterval = time.Hour
	return cfg
}

func TestDaemonRunAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cfg := daemonConfig(t)
	holder := config.NewHolder(cfg, "")
	d := New(holder)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	// give the initial refresh and the listener a moment to start
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(cfg.OutputPath); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("initial refresh did not write the document")
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not shut down")
	}
}

func TestDaemonManualEditTriggersRefresh(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	manualPath := filepath.Join(t.TempDir(), "manual.json")
	one := `[{"channelName":"Pinned A","channelUrl":"http://m/a.m3u8","match_id":"a"}]`
	if err := os.WriteFile(manualPath, []byte(one), 0o600); err != nil {
		t.Fatalf("write manual file: %v", err)
	}

	cfg := daemonConfig(t)
	cfg.ManualFile = manualPath
	holder := config.NewHolder(cfg, "")
	d := New(holder)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	waitForChannels := func(want int) {
		t.Helper()
		deadline := time.Now().Add(10 * time.Second)
		for {
			data, err := os.ReadFile(cfg.OutputPath) // #nosec G304 -- test output path
			if err == nil {
				var chs []map[string]any
				if json.Unmarshal(data, &chs) == nil && len(chs) == want {
					return
				}
			}
			if time.Now().After(deadline) {
				t.Fatalf("document never reached %d channels", want)
			}
			time.Sleep(20 * time.Millisecond)
		}
	}

	waitForChannels(1)

	two := `[
  {"channelName":"Pinned A","channelUrl":"http://m/a.m3u8","match_id":"a"},
  {"channelName":"Pinned B","channelUrl":"http://m/b.m3u8","match_id":"b"}
]`
	if err := os.WriteFile(manualPath, []byte(two), 0o600); err != nil {
		t.Fatalf("rewrite manual file: %v", err)
	}

	// the ticker is an hour out, so only the manual watch can pick this up
	waitForChannels(2)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not shut down")
	}
}

func TestDaemonInitialRefreshWritesEmptyDocument(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cfg := daemonConfig(t)
	holder := config.NewHolder(cfg, "")
	d := New(holder)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	var data []byte
	for {
		b, err := os.ReadFile(cfg.OutputPath) // #nosec G304 -- test output path
		if err == nil && len(b) > 0 {
			data = b
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("document never appeared")
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-done

	var chs []map[string]any
	if err := json.Unmarshal(data, &chs); err != nil {
		t.Fatalf("document not valid JSON: %v", err)
	}
	if len(chs) != 0 {
		t.Fatalf("expected empty channel list, got %d", len(chs))
	}
}
