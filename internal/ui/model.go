// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// model.go - Bubble Tea model and derived sidebar state.
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/driftchat-tui/internal/config"
	"github.com/jeranaias/driftchat-tui/internal/state"
	"github.com/jeranaias/driftchat-tui/internal/store"
	"github.com/jeranaias/driftchat-tui/internal/stream"
)

// =============================================================================
// FOCUS
// =============================================================================

// focusArea identifies which pane receives key input.
type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
)

// sidebarRowKind distinguishes selectable sidebar rows.
type sidebarRowKind int

const (
	rowFolder sidebarRowKind = iota
	rowChat
)

// sidebarRow is one selectable line in the sidebar: a folder header or
// a chat beneath it.
type sidebarRow struct {
	kind     sidebarRowKind
	folderID state.FolderID
	chatID   state.ChatID
	label    string
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the driftchat TUI. All state
// mutations flow through the store's dispatch on the update loop;
// stream fragments arrive as messages via the fragment channel, so the
// loop stays the only dispatcher.
type Model struct {
	st      *store.Store
	channel *stream.Channel
	cfg     *config.Config

	// Styling
	theme    *Theme
	renderer *glamour.TermRenderer

	// Dimensions
	width  int
	height int
	ready  bool

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Focus and sidebar navigation
	focus       focusArea
	sidebarRows []sidebarRow
	sidebarSel  int

	// Streaming
	connected      bool
	streamToken    stream.StreamToken
	streamingMsgID state.MessageID
	streamingChat  state.ChatID
	frags          chan stream.Fragment

	// Attachments staged for the next message
	pending []state.NewFile

	// Transient status line
	notice  string
	lastErr string

	// Help overlay
	showHelp bool

	keys keyMap
}

// New constructs the TUI model around an initialized store and channel.
func New(st *store.Store, channel *stream.Channel, cfg *config.Config) *Model {
	snap := st.State()

	m := &Model{
		st:      st,
		channel: channel,
		cfg:     cfg,
		theme:   NewTheme(themeIsDark(cfg, snap)),
		frags:   make(chan stream.Fragment, 256),
		keys:    defaultKeyMap(),
	}

	m.input = textinput.New()
	m.input.Placeholder = "Message (or /help)"
	m.input.CharLimit = 4000
	m.input.Focus()

	m.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(m.theme.Spinner),
	)

	// The listener pushes into a buffered channel; the update loop
	// drains it one message at a time.
	channel.RegisterListener(func(f stream.Fragment) {
		m.frags <- f
	})

	m.rebuildSidebar(snap)
	return m
}

// themeIsDark resolves the effective dark-mode flag: the config can
// force a theme, otherwise the persisted state decides.
func themeIsDark(cfg *config.Config, snap state.AppState) bool {
	switch cfg.UI.Theme {
	case "dark":
		return true
	case "light":
		return false
	default:
		return snap.DarkMode
	}
}

// Init starts the spinner, the connection handshake, and the fragment
// pump.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.connectCmd(),
		m.waitForFragment(),
	)
}

// rebuildSidebar flattens the snapshot into selectable rows: each
// folder followed by its chats, then the unfiled chats.
func (m *Model) rebuildSidebar(snap state.AppState) {
	rows := make([]sidebarRow, 0, len(snap.Folders)+len(snap.Chats))

	for _, f := range snap.Folders {
		rows = append(rows, sidebarRow{kind: rowFolder, folderID: f.ID, label: f.Name})
		for _, c := range snap.ChatsInFolder(f.ID) {
			rows = append(rows, sidebarRow{kind: rowChat, chatID: c.ID, label: c.Title})
		}
	}
	for _, c := range snap.ChatsInFolder("") {
		rows = append(rows, sidebarRow{kind: rowChat, chatID: c.ID, label: c.Title})
	}

	m.sidebarRows = rows
	if m.sidebarSel >= len(rows) {
		m.sidebarSel = len(rows) - 1
	}
	if m.sidebarSel < 0 {
		m.sidebarSel = 0
	}
}

// selectedRow returns the sidebar row under the cursor.
func (m *Model) selectedRow() (sidebarRow, bool) {
	if m.sidebarSel < 0 || m.sidebarSel >= len(m.sidebarRows) {
		return sidebarRow{}, false
	}
	return m.sidebarRows[m.sidebarSel], true
}

// rebuildRenderer recreates the markdown renderer for the current
// theme and width.
func (m *Model) rebuildRenderer() {
	width := m.cfg.UI.MarkdownWidth
	if avail := m.chatWidth() - 2; avail > 0 && avail < width {
		width = avail
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fall back to plain text rendering.
		m.renderer = nil
		return
	}
	m.renderer = r
}

// sidebarWidth returns the sidebar's column budget.
func (m *Model) sidebarWidth() int {
	w := m.width / 4
	if w < 24 {
		w = 24
	}
	if w > 40 {
		w = 40
	}
	return w
}

// chatWidth returns the conversation pane's column budget.
func (m *Model) chatWidth() int {
	return m.width - m.sidebarWidth() - 1
}
