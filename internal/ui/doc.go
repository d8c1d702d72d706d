// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the interactive terminal interface for driftchat.
//
// The layout is a sidebar of folders and chats beside the active
// conversation, with a single input line and a status bar. Assistant
// replies stream in token by token; markdown is rendered with glamour.
//
// # Key Types
//
//   - Model: the Bubble Tea model wiring the store and stream channel
//   - Theme: lipgloss styles for dark and light backgrounds
//
// # Architecture
//
// The update loop is the only dispatcher. Stream fragments are pushed
// by the channel listener into a buffered Go channel and pulled back
// into the loop as messages, so reducer state never changes off-loop.
//
// # Usage
//
//	m := ui.New(st, channel, cfg)
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	_, err := p.Run()
package ui
