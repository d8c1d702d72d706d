// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefault tests the built-in configuration values.
func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.SeedSampleData {
		t.Error("sample seeding should default on")
	}
	if cfg.Stream.ConnectDelayMs != 500 {
		t.Errorf("connect delay = %d, want 500", cfg.Stream.ConnectDelayMs)
	}
	if cfg.Stream.FragmentIntervalMs != 40 {
		t.Errorf("fragment interval = %d, want 40", cfg.Stream.FragmentIntervalMs)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("theme = %q, want auto", cfg.UI.Theme)
	}
	if cfg.UI.MarkdownWidth != 80 {
		t.Errorf("markdown width = %d, want 80", cfg.UI.MarkdownWidth)
	}

	if cfg.ConnectDelay() != 500*time.Millisecond {
		t.Errorf("ConnectDelay() = %v, want 500ms", cfg.ConnectDelay())
	}
	if cfg.FragmentInterval() != 40*time.Millisecond {
		t.Errorf("FragmentInterval() = %v, want 40ms", cfg.FragmentInterval())
	}
}

// TestConfig_Paths tests the derived file paths.
func TestConfig_Paths(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/tmp/driftchat-test"

	if got := cfg.SnapshotDBPath(); got != filepath.Join("/tmp/driftchat-test", "driftchat.db") {
		t.Errorf("SnapshotDBPath() = %q", got)
	}
	if got := cfg.LogPath(); got != filepath.Join("/tmp/driftchat-test", "driftchat.log") {
		t.Errorf("LogPath() = %q", got)
	}
}

// TestConfig_Validate tests that out-of-range values clamp to defaults
// instead of blocking startup.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		check  func(*testing.T, *Config)
	}{
		{
			name:   "negative connect delay resets",
			mutate: func(c *Config) { c.Stream.ConnectDelayMs = -1 },
			check: func(t *testing.T, c *Config) {
				if c.Stream.ConnectDelayMs != 500 {
					t.Errorf("connect delay = %d, want 500", c.Stream.ConnectDelayMs)
				}
			},
		},
		{
			name:   "fragment interval below floor resets",
			mutate: func(c *Config) { c.Stream.FragmentIntervalMs = 1 },
			check: func(t *testing.T, c *Config) {
				if c.Stream.FragmentIntervalMs != 40 {
					t.Errorf("fragment interval = %d, want 40", c.Stream.FragmentIntervalMs)
				}
			},
		},
		{
			name:   "fragment interval above ceiling resets",
			mutate: func(c *Config) { c.Stream.FragmentIntervalMs = 5000 },
			check: func(t *testing.T, c *Config) {
				if c.Stream.FragmentIntervalMs != 40 {
					t.Errorf("fragment interval = %d, want 40", c.Stream.FragmentIntervalMs)
				}
			},
		},
		{
			name:   "fragment interval in range survives",
			mutate: func(c *Config) { c.Stream.FragmentIntervalMs = 100 },
			check: func(t *testing.T, c *Config) {
				if c.Stream.FragmentIntervalMs != 100 {
					t.Errorf("fragment interval = %d, want 100", c.Stream.FragmentIntervalMs)
				}
			},
		},
		{
			name:   "unknown theme resets",
			mutate: func(c *Config) { c.UI.Theme = "solarized" },
			check: func(t *testing.T, c *Config) {
				if c.UI.Theme != "auto" {
					t.Errorf("theme = %q, want auto", c.UI.Theme)
				}
			},
		},
		{
			name:   "dark theme survives",
			mutate: func(c *Config) { c.UI.Theme = "dark" },
			check: func(t *testing.T, c *Config) {
				if c.UI.Theme != "dark" {
					t.Errorf("theme = %q, want dark", c.UI.Theme)
				}
			},
		},
		{
			name:   "markdown width out of range resets",
			mutate: func(c *Config) { c.UI.MarkdownWidth = 5 },
			check: func(t *testing.T, c *Config) {
				if c.UI.MarkdownWidth != 80 {
					t.Errorf("markdown width = %d, want 80", c.UI.MarkdownWidth)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			cfg.Validate()
			tt.check(t, cfg)
		})
	}
}

// TestConfig_EnvOverrides tests the DRIFTCHAT_* environment overrides.
func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DRIFTCHAT_DATA_DIR", "/custom/data")
	t.Setenv("DRIFTCHAT_THEME", "light")
	t.Setenv("DRIFTCHAT_SEED_SAMPLE_DATA", "false")
	t.Setenv("DRIFTCHAT_FRAGMENT_INTERVAL_MS", "60")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.DataDir != "/custom/data" {
		t.Errorf("data dir = %q, want /custom/data", cfg.DataDir)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", cfg.UI.Theme)
	}
	if cfg.SeedSampleData {
		t.Error("sample seeding should be overridden off")
	}
	if cfg.Stream.FragmentIntervalMs != 60 {
		t.Errorf("fragment interval = %d, want 60", cfg.Stream.FragmentIntervalMs)
	}
}

// TestConfig_EnvOverrides_Invalid tests that malformed env values are
// ignored.
func TestConfig_EnvOverrides_Invalid(t *testing.T) {
	t.Setenv("DRIFTCHAT_SEED_SAMPLE_DATA", "maybe")
	t.Setenv("DRIFTCHAT_FRAGMENT_INTERVAL_MS", "fast")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if !cfg.SeedSampleData {
		t.Error("unparseable bool should leave the default")
	}
	if cfg.Stream.FragmentIntervalMs != 40 {
		t.Errorf("unparseable int should leave the default, got %d", cfg.Stream.FragmentIntervalMs)
	}
}

// TestLoadFromPath_TOML tests loading and validating a TOML file.
func TestLoadFromPath_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
seed_sample_data = false

[stream]
connect_delay_ms = 100
fragment_interval_ms = 2000

[ui]
theme = "dark"
markdown_width = 100
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.SeedSampleData {
		t.Error("seed_sample_data should load as false")
	}
	if cfg.Stream.ConnectDelayMs != 100 {
		t.Errorf("connect delay = %d, want 100", cfg.Stream.ConnectDelayMs)
	}
	// 2000 is above the ceiling and clamps back to the default.
	if cfg.Stream.FragmentIntervalMs != 40 {
		t.Errorf("fragment interval = %d, want clamped 40", cfg.Stream.FragmentIntervalMs)
	}
	if cfg.UI.Theme != "dark" || cfg.UI.MarkdownWidth != 100 {
		t.Errorf("ui = %+v", cfg.UI)
	}
}

// TestLoadFromPath_JSON tests loading a JSON file by extension.
func TestLoadFromPath_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"seed_sample_data": false, "ui": {"theme": "light", "markdown_width": 60}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.SeedSampleData {
		t.Error("seed_sample_data should load as false")
	}
	if cfg.UI.Theme != "light" || cfg.UI.MarkdownWidth != 60 {
		t.Errorf("ui = %+v", cfg.UI)
	}
	// Unspecified sections keep defaults.
	if cfg.Stream.FragmentIntervalMs != 40 {
		t.Errorf("fragment interval = %d, want default 40", cfg.Stream.FragmentIntervalMs)
	}
}

// TestLoadFromPath_Malformed tests that a broken file is an error, not
// a silent fallback.
func TestLoadFromPath_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("LoadFromPath of malformed TOML should fail")
	}
}

// TestSaveTOML_RoundTrip tests that a saved config loads back with the
// same values.
func TestSaveTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	want := Default()
	want.DataDir = t.TempDir()
	want.SeedSampleData = false
	want.Stream.FragmentIntervalMs = 25
	want.UI.Theme = "light"

	if err := SaveTOML(want, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if got.SeedSampleData != want.SeedSampleData ||
		got.Stream.FragmentIntervalMs != want.Stream.FragmentIntervalMs ||
		got.UI.Theme != want.UI.Theme {
		t.Errorf("round trip diverged: %+v", got)
	}
}
