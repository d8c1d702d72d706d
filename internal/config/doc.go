// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for driftchat.
//
// Supports both TOML and JSON configuration formats, with sensible
// defaults, environment variable overrides (DRIFTCHAT_*), and
// validation that clamps rather than rejects.
//
// Configuration file locations (in order of precedence):
//   - ~/.driftchat/config.toml
//   - ~/.driftchat/config.json
//   - Built-in defaults
//
// A Watcher can hot-reload the file on change; parse failures keep the
// last good configuration in effect.
package config
