// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders chats to shareable files.
//
// # Key Types
//
//   - Chat: export view of a chat with folder and agent names resolved
//   - Exporter: render interface implemented per format
//   - Options: metadata and timestamp toggles, output directory
//
// # Supported Formats
//
//   - Markdown: human-readable, YAML frontmatter, attachment listing
//   - JSON: machine-readable, complete chat structure
//
// # Usage
//
// Export the active chat to Markdown:
//
//	view, err := export.Resolve(store.State(), chatID)
//	if err != nil {
//	    return err
//	}
//	path, err := export.ExportMarkdown(view, nil)
package export
