// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestWatcher_ReloadsOnChange tests that rewriting the config file
// delivers a freshly parsed config to the callback.
func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`[ui]`+"\n"+`theme = "dark"`), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	loaded := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config) { loaded <- cfg })
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`[ui]`+"\n"+`theme = "light"`), 0600); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case cfg := <-loaded:
		if cfg.UI.Theme != "light" {
			t.Errorf("reloaded theme = %q, want light", cfg.UI.Theme)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never delivered the reloaded config")
	}
}

// TestWatcher_IgnoresBrokenFile tests that a parse failure keeps the
// last good config: the callback is simply not invoked.
func TestWatcher_IgnoresBrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	loaded := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config) { loaded <- cfg })
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("not [valid toml"), 0600); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case <-loaded:
		t.Error("broken file must not produce a reload")
	case <-time.After(300 * time.Millisecond):
	}
}

// TestWatcher_CloseTwice tests idempotent shutdown.
func TestWatcher_CloseTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	w, err := NewWatcher(path, func(*Config) {})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}
