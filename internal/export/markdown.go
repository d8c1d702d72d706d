// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/driftchat-tui/internal/files"
	"github.com/jeranaias/driftchat-tui/internal/state"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders chats to Markdown with YAML frontmatter.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export renders a chat to Markdown.
func (e *MarkdownExporter) Export(chat *Chat) ([]byte, error) {
	if chat == nil {
		return nil, fmt.Errorf("chat is nil")
	}
	c := chat.Chat
	if len(c.Messages) == 0 {
		return nil, fmt.Errorf("chat has no messages")
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(c.Title)))
		if chat.FolderName != "" {
			sb.WriteString(fmt.Sprintf("folder: %s\n", escapeYAML(chat.FolderName)))
		}
		if chat.AgentName != "" {
			sb.WriteString(fmt.Sprintf("agent: %s\n", escapeYAML(chat.AgentName)))
		}
		sb.WriteString(fmt.Sprintf("date: %s\n", c.CreatedAt.Format(time.RFC3339)))
		sb.WriteString(fmt.Sprintf("updated: %s\n", c.UpdatedAt.Format(time.RFC3339)))
		sb.WriteString(fmt.Sprintf("messages: %d\n", len(c.Messages)))
		sb.WriteString(fmt.Sprintf("exported: %s\n", time.Now().Format(time.RFC3339)))
		sb.WriteString("generator: driftchat-tui\n")
		sb.WriteString("---\n\n")
	}

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(c.Title)))

	if e.options.IncludeMetadata {
		sb.WriteString("## Chat Information\n\n")
		if chat.FolderName != "" {
			sb.WriteString(fmt.Sprintf("- **Folder**: %s\n", chat.FolderName))
		}
		if chat.AgentName != "" {
			sb.WriteString(fmt.Sprintf("- **Agent**: %s\n", chat.AgentName))
		}
		sb.WriteString(fmt.Sprintf("- **Created**: %s\n", formatTimestamp(c.CreatedAt)))
		sb.WriteString(fmt.Sprintf("- **Last Updated**: %s\n", formatTimestamp(c.UpdatedAt)))
		sb.WriteString(fmt.Sprintf("- **Messages**: %d\n", len(c.Messages)))
		sb.WriteString("\n---\n\n")
	}

	sb.WriteString("## Conversation\n\n")

	for i, msg := range c.Messages {
		roleLabel := formatRoleLabel(msg.Role)
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n",
				roleLabel,
				formatShortTimestamp(msg.Timestamp)))
		} else {
			sb.WriteString(fmt.Sprintf("### %s\n\n", roleLabel))
		}

		sb.WriteString(strings.TrimSpace(msg.Content))
		sb.WriteString("\n\n")

		if len(msg.FileAttachments) > 0 {
			sb.WriteString(formatAttachments(msg.FileAttachments))
			sb.WriteString("\n\n")
		}

		if i < len(c.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from driftchat on %s*\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// formatRoleLabel returns a display label for a message role.
func formatRoleLabel(role state.Role) string {
	switch role {
	case state.RoleUser:
		return "[User]"
	case state.RoleAssistant:
		return "[Assistant]"
	case state.RoleSystem:
		return "[System]"
	case "":
		return "Unknown"
	default:
		runes := []rune(string(role))
		return strings.ToUpper(string(runes[0])) + string(runes[1:])
	}
}

// formatAttachments lists a message's attachments with their sizes.
func formatAttachments(atts []state.FileAttachment) string {
	var sb strings.Builder
	sb.WriteString("**Attachments**:\n")
	for _, a := range atts {
		sb.WriteString(fmt.Sprintf("- %s (%s, %s)\n",
			escapeMarkdown(a.Name), a.Type, files.FormatSize(a.Size)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes characters that would break formatting in
// titles and headings.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML quotes and escapes values that would break the
// frontmatter, newline injection included.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
