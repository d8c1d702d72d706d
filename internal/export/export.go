// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders chats to shareable files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/driftchat-tui/internal/state"
	"github.com/jeranaias/driftchat-tui/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders one chat to a target format.
type Exporter interface {
	// Export renders the chat and returns the file content.
	Export(chat *Chat) ([]byte, error)

	// FileExtension returns the output extension (".md", ".json").
	FileExtension() string

	// MimeType returns the MIME type of the format.
	MimeType() string
}

// Chat is the export view of a conversation: the chat itself plus its
// weak references resolved to display names. Empty names mean the
// reference was unset or dangling.
type Chat struct {
	Chat       state.Chat
	FolderName string
	AgentName  string
}

// Resolve builds the export view of a chat from a snapshot.
func Resolve(s state.AppState, id state.ChatID) (*Chat, error) {
	c, ok := s.ChatByID(id)
	if !ok {
		return nil, fmt.Errorf("chat %q not found", id)
	}
	out := &Chat{Chat: c}
	if f, ok := s.FolderByID(c.FolderID); ok {
		out.FolderName = f.Name
	}
	if a, ok := s.AgentByID(c.AgentID); ok {
		out.AgentName = a.Name
	}
	return out, nil
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is where files land. Default: current directory.
	OutputDir string

	// IncludeMetadata includes the header block (folder, agent, dates).
	IncludeMetadata bool

	// IncludeTimestamps includes per-message timestamps.
	IncludeTimestamps bool
}

// DefaultOptions returns the default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeMetadata:   true,
		IncludeTimestamps: true,
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders a chat with the given exporter and writes it
// under opts.OutputDir. Returns the output path.
func ExportToFile(chat *Chat, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(chat)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("chat_%s_%s%s",
		sanitizeFilename(chat.Chat.Title),
		timestamp,
		exporter.FileExtension(),
	)

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return outputPath, nil
}

// ExportMarkdown renders a chat to a Markdown file.
func ExportMarkdown(chat *Chat, opts *Options) (string, error) {
	return ExportToFile(chat, NewMarkdownExporter(opts), opts)
}

// ExportJSON renders a chat to a JSON file.
func ExportJSON(chat *Chat, opts *Options) (string, error) {
	return ExportToFile(chat, NewJSONExporter(opts), opts)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in
// filenames on either Windows or Unix.
func sanitizeFilename(s string) string {
	maxLen := 50
	runes := []rune(s)
	if len(runes) > maxLen {
		s = string(runes[:maxLen])
	}

	replacer := map[rune]rune{
		'/':  '-',
		'\\': '-',
		':':  '-',
		'*':  '-',
		'?':  '-',
		'"':  '-',
		'<':  '-',
		'>':  '-',
		'|':  '-',
		' ':  '_',
		'\t': '_',
		'\n': '_',
		'\r': '_',
	}

	result := []rune{}
	for _, r := range s {
		if replacement, found := replacer[r]; found {
			result = append(result, replacement)
		} else if r < 32 || r == 127 {
			result = append(result, '-')
		} else {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "chat"
	}
	return string(result)
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatShortTimestamp formats a timestamp for inline display.
func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}
