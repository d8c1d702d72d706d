// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/driftchat-tui/internal/config"
	"github.com/jeranaias/driftchat-tui/internal/state"
	"github.com/jeranaias/driftchat-tui/internal/stream"
)

// =============================================================================
// MESSAGES
// =============================================================================

// connectedMsg reports a completed connection handshake.
type connectedMsg struct{}

// connectErrMsg reports a failed connection handshake.
type connectErrMsg struct{ err error }

// fragmentMsg carries one stream fragment into the update loop.
type fragmentMsg stream.Fragment

// noticeExpiredMsg clears the transient status notice.
type noticeExpiredMsg struct{}

// attachStagedMsg reports a staged (or rejected) attachment.
type attachStagedMsg struct {
	file state.NewFile
	err  error
}

// ConfigReloadedMsg carries a freshly reloaded configuration into the
// update loop. Sent by the config watcher via Program.Send.
type ConfigReloadedMsg struct{ Config *config.Config }

// =============================================================================
// COMMANDS
// =============================================================================

// connectCmd runs the simulated connection handshake off the update
// loop.
func (m *Model) connectCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.channel.Connect(context.Background()); err != nil {
			return connectErrMsg{err: err}
		}
		return connectedMsg{}
	}
}

// waitForFragment blocks on the fragment channel and hands the next
// fragment to Update. It is re-issued after every fragment so exactly
// one reader exists at a time.
func (m *Model) waitForFragment() tea.Cmd {
	return func() tea.Msg {
		return fragmentMsg(<-m.frags)
	}
}
