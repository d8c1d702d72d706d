// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for driftchat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/driftchat-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete driftchat configuration.
type Config struct {
	// DataDir is where the snapshot database and logs live.
	// Default: ~/.driftchat
	DataDir string `toml:"data_dir" json:"data_dir"`

	// SeedSampleData populates example folders, agents, and a starter
	// chat on first run (when no snapshot exists yet).
	SeedSampleData bool `toml:"seed_sample_data" json:"seed_sample_data"`

	// Stream holds the simulated backend timings.
	Stream StreamConfig `toml:"stream" json:"stream"`

	// UI holds presentation settings.
	UI UIConfig `toml:"ui" json:"ui"`
}

// StreamConfig contains simulated streaming channel timings.
type StreamConfig struct {
	// ConnectDelayMs is how long the fake connection handshake takes.
	ConnectDelayMs int `toml:"connect_delay_ms" json:"connect_delay_ms"`
	// FragmentIntervalMs is the delay between streamed fragments.
	// Clamped to 5..1000.
	FragmentIntervalMs int `toml:"fragment_interval_ms" json:"fragment_interval_ms"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme forces "dark" or "light"; "auto" follows the persisted
	// dark-mode flag (itself seeded from the terminal background).
	Theme string `toml:"theme" json:"theme"`
	// MarkdownWidth is the wrap width for rendered assistant messages.
	MarkdownWidth int `toml:"markdown_width" json:"markdown_width"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SeedSampleData: true,
		Stream: StreamConfig{
			ConnectDelayMs:     500,
			FragmentIntervalMs: 40,
		},
		UI: UIConfig{
			Theme:         "auto",
			MarkdownWidth: 80,
		},
	}
}

// ConnectDelay returns the handshake delay as a duration.
func (c *Config) ConnectDelay() time.Duration {
	return time.Duration(c.Stream.ConnectDelayMs) * time.Millisecond
}

// FragmentInterval returns the fragment pacing as a duration.
func (c *Config) FragmentInterval() time.Duration {
	return time.Duration(c.Stream.FragmentIntervalMs) * time.Millisecond
}

// SnapshotDBPath returns the path of the snapshot database.
func (c *Config) SnapshotDBPath() string {
	return filepath.Join(c.DataDir, "driftchat.db")
}

// LogPath returns the path of the application log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "driftchat.log")
}

// =============================================================================
// PATHS
// =============================================================================

// DataDir returns the default data directory (~/.driftchat).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".driftchat"), nil
}

// ConfigPathTOML returns the TOML config file path.
func ConfigPathTOML() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the JSON config file path.
func ConfigPathJSON() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last, then validation clamps
// out-of-range values.
func Load() (*Config, error) {
	cfg := Default()

	if dir, err := DataDir(); err == nil && cfg.DataDir == "" {
		cfg.DataDir = dir
	}

	if path, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode TOML config: %w", err)
			}
			return finish(cfg)
		}
	}

	if path, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read JSON config: %w", err)
			}
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode JSON config: %w", err)
			}
			return finish(cfg)
		}
	}

	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file. Files ending
// in .json decode as JSON; everything else decodes as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if dir, err := DataDir(); err == nil {
		cfg.DataDir = dir
	}

	if strings.HasSuffix(path, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read JSON config from %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode JSON config from %s: %w", path, err)
		}
	} else {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// finish applies env overrides and validation to a decoded config.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.Validate()
	return cfg, nil
}

// =============================================================================
// ENV OVERRIDES AND VALIDATION
// =============================================================================

// ApplyEnvOverrides applies DRIFTCHAT_* environment variables on top of
// the loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("DRIFTCHAT_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("DRIFTCHAT_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("DRIFTCHAT_SEED_SAMPLE_DATA"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SeedSampleData = b
		}
	}
	if v := os.Getenv("DRIFTCHAT_FRAGMENT_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Stream.FragmentIntervalMs = n
		}
	}
}

// Validate clamps out-of-range values to safe bounds. Invalid values
// are corrected, not rejected; a broken config file should degrade to
// defaults, not block startup.
func (c *Config) Validate() {
	def := Default()

	if c.DataDir == "" {
		if dir, err := DataDir(); err == nil {
			c.DataDir = dir
		}
	}
	if c.Stream.ConnectDelayMs < 0 {
		c.Stream.ConnectDelayMs = def.Stream.ConnectDelayMs
	}
	if c.Stream.FragmentIntervalMs < 5 || c.Stream.FragmentIntervalMs > 1000 {
		c.Stream.FragmentIntervalMs = def.Stream.FragmentIntervalMs
	}
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		c.UI.Theme = def.UI.Theme
	}
	if c.UI.MarkdownWidth < 20 || c.UI.MarkdownWidth > 200 {
		c.UI.MarkdownWidth = def.UI.MarkdownWidth
	}
}

// =============================================================================
// SAVE
// =============================================================================

// Save writes the configuration to the default TOML file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var sb strings.Builder
	sb.WriteString("# driftchat configuration file\n")
	sb.WriteString("# Generated by driftchat - edit with care\n\n")

	encoder := toml.NewEncoder(&sb)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return util.AtomicWriteFile(path, []byte(sb.String()), 0600)
}
