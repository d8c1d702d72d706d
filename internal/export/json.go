// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"

	"github.com/jeranaias/driftchat-tui/internal/state"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders chats to JSON. JSON exports always carry the
// complete chat structure regardless of options, so the file is a
// faithful copy of the stored data.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a JSON exporter. Options are accepted for
// consistency with the other exporters but do not filter the output.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// jsonDocument is the on-disk shape of a JSON export.
type jsonDocument struct {
	Chat   state.Chat `json:"chat"`
	Folder string     `json:"folder,omitempty"`
	Agent  string     `json:"agent,omitempty"`
}

// Export renders a chat to indented JSON.
func (e *JSONExporter) Export(chat *Chat) ([]byte, error) {
	if chat == nil {
		return nil, fmt.Errorf("chat is nil")
	}
	doc := jsonDocument{
		Chat:   chat.Chat,
		Folder: chat.FolderName,
		Agent:  chat.AgentName,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
