// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - Non-interactive command handlers for driftchat.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/driftchat-tui/internal/config"
	"github.com/jeranaias/driftchat-tui/internal/export"
	"github.com/jeranaias/driftchat-tui/internal/state"
	"github.com/jeranaias/driftchat-tui/internal/util"
)

// =============================================================================
// CHATS
// =============================================================================

// chatRow is one line of `driftchat chats --json` output.
type chatRow struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Folder   string `json:"folder,omitempty"`
	Agent    string `json:"agent,omitempty"`
	Messages int    `json:"messages"`
	Updated  string `json:"updated"`
}

// HandleChats lists every chat with its folder, agent, and message
// count.
func HandleChats(w io.Writer, s state.AppState, jsonOut bool) error {
	rows := make([]chatRow, 0, len(s.Chats))
	for _, c := range s.Chats {
		row := chatRow{
			ID:       string(c.ID),
			Title:    c.Title,
			Messages: len(c.Messages),
			Updated:  c.UpdatedAt.Format("2006-01-02 15:04"),
		}
		if f, ok := s.FolderByID(c.FolderID); ok {
			row.Folder = f.Name
		}
		if a, ok := s.AgentByID(c.AgentID); ok {
			row.Agent = a.Name
		}
		rows = append(rows, row)
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No chats yet. Run driftchat to start one.")
		return nil
	}

	fmt.Fprintf(w, "%-38s %-26s %-20s %5s  %s\n", "ID", "TITLE", "FOLDER", "MSGS", "UPDATED")
	for _, row := range rows {
		fmt.Fprintf(w, "%-38s %-26s %-20s %5d  %s\n",
			row.ID,
			util.TruncateWidth(util.SingleLine(row.Title), 26),
			util.TruncateWidth(row.Folder, 20),
			row.Messages,
			row.Updated,
		)
	}
	return nil
}

// =============================================================================
// EXPORT
// =============================================================================

// HandleExport exports one chat to a file. The chat may be named by
// full ID or any unambiguous ID prefix.
func HandleExport(w io.Writer, s state.AppState, args Args) error {
	if args.ChatID == "" {
		return fmt.Errorf("export: chat ID required (see driftchat chats)")
	}

	id, err := resolveChatID(s, args.ChatID)
	if err != nil {
		return err
	}

	view, err := export.Resolve(s, id)
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	opts.OutputDir = args.OutputDir

	var path string
	switch args.Format {
	case "markdown", "md", "":
		path, err = export.ExportMarkdown(view, opts)
	case "json":
		path, err = export.ExportJSON(view, opts)
	default:
		return fmt.Errorf("export: unknown format %q (markdown or json)", args.Format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Exported to %s\n", path)
	return nil
}

// resolveChatID matches a full ID or a unique prefix.
func resolveChatID(s state.AppState, ref string) (state.ChatID, error) {
	if _, ok := s.ChatByID(state.ChatID(ref)); ok {
		return state.ChatID(ref), nil
	}

	var matches []state.ChatID
	for _, c := range s.Chats {
		if strings.HasPrefix(string(c.ID), ref) {
			matches = append(matches, c.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no chat matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous: %d chats match", ref, len(matches))
	}
}

// =============================================================================
// CONFIG
// =============================================================================

// HandleConfig shows the effective configuration or its file path.
func HandleConfig(w io.Writer, cfg *config.Config, args Args) error {
	switch args.Subcommand {
	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, path)
		return nil

	case "show", "":
		if args.JSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		}
		fmt.Fprintf(w, "data_dir:             %s\n", cfg.DataDir)
		fmt.Fprintf(w, "seed_sample_data:     %t\n", cfg.SeedSampleData)
		fmt.Fprintf(w, "connect_delay_ms:     %d\n", cfg.Stream.ConnectDelayMs)
		fmt.Fprintf(w, "fragment_interval_ms: %d\n", cfg.Stream.FragmentIntervalMs)
		fmt.Fprintf(w, "theme:                %s\n", cfg.UI.Theme)
		fmt.Fprintf(w, "markdown_width:       %d\n", cfg.UI.MarkdownWidth)
		return nil

	default:
		return fmt.Errorf("config: unknown subcommand %q (show or path)", args.Subcommand)
	}
}

// =============================================================================
// RESET
// =============================================================================

// Clearer discards persisted data. storage.Codec implements it.
type Clearer interface {
	Clear() error
}

// HandleReset discards the persisted snapshot. Requires --yes; the next
// launch starts from the default (or sample-seeded) state.
func HandleReset(w io.Writer, c Clearer, args Args) error {
	if !args.Confirm {
		return fmt.Errorf("reset discards all chats, folders, and agents; re-run with --yes")
	}
	if err := c.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(w, "Snapshot discarded.")
	return nil
}
