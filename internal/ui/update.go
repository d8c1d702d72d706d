// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/driftchat-tui/internal/state"
)

// noticeTimeout is how long transient status notices stay visible.
const noticeTimeout = 4 * time.Second

// Update handles one message. Every state mutation goes through
// dispatch so the reducer stays the single source of truth.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case connectedMsg:
		m.connected = true
		m.notice = "Connected."
		return m, m.expireNotice()

	case connectErrMsg:
		m.lastErr = msg.err.Error()
		return m, nil

	case fragmentMsg:
		return m.handleFragment(msg)

	case attachStagedMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
		} else {
			m.pending = append(m.pending, msg.file)
			m.notice = "Attached " + msg.file.Name
		}
		m.refreshViewport()
		return m, m.expireNotice()

	case ConfigReloadedMsg:
		m.cfg = msg.Config
		if dark := themeIsDark(m.cfg, m.st.State()); dark != m.theme.IsDark {
			m.theme = NewTheme(dark)
			m.spinner.Style = m.theme.Spinner
		}
		m.rebuildRenderer()
		m.refreshViewport()
		m.notice = "Configuration reloaded."
		return m, m.expireNotice()

	case noticeExpiredMsg:
		m.notice = ""
		m.lastErr = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleResize lays the panes out for a new terminal size.
func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	chatHeight := m.height - inputHeight - statusHeight
	if chatHeight < 1 {
		chatHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(m.chatWidth(), chatHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.chatWidth()
		m.viewport.Height = chatHeight
	}
	m.input.Width = m.chatWidth() - 4

	m.rebuildRenderer()
	m.refreshViewport()
	return m, nil
}

// handleKey routes a key press by focus area.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.channel.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Stop):
		if m.streaming() {
			m.stopStreaming()
			return m, nil
		}

	case key.Matches(msg, m.keys.FocusNext):
		if m.focus == focusInput {
			m.focus = focusSidebar
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		m.newChat("")
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleInputKey(msg)
}

// handleSidebarKey navigates and acts on the sidebar.
func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.sidebarSel > 0 {
			m.sidebarSel--
		}

	case key.Matches(msg, m.keys.Down):
		if m.sidebarSel < len(m.sidebarRows)-1 {
			m.sidebarSel++
		}

	case key.Matches(msg, m.keys.Select):
		if row, ok := m.selectedRow(); ok {
			switch row.kind {
			case rowChat:
				m.dispatch(state.SetActiveChat{ID: row.chatID})
				m.focus = focusInput
				m.input.Focus()
			case rowFolder:
				m.dispatch(state.SetActiveFolder{ID: row.folderID})
			}
		}

	case key.Matches(msg, m.keys.DeleteItem):
		if row, ok := m.selectedRow(); ok {
			switch row.kind {
			case rowChat:
				if m.streaming() && m.streamingChat == row.chatID {
					m.stopStreaming()
				}
				m.dispatch(state.DeleteChat{ID: row.chatID})
				m.notice = "Deleted chat."
			case rowFolder:
				m.dispatch(state.DeleteFolder{ID: row.folderID})
				m.notice = "Deleted folder. Its chats are unfiled."
			}
			return m, m.expireNotice()
		}
	}
	return m, nil
}

// handleInputKey edits the input line and sends on enter.
func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Send) {
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.Reset()

		if strings.HasPrefix(text, "/") {
			return m.runCommand(text)
		}
		return m, m.sendMessage(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// SENDING AND STREAMING
// =============================================================================

// sendMessage appends the user message (with any staged attachments),
// creates the assistant placeholder, and starts the simulated stream.
func (m *Model) sendMessage(text string) tea.Cmd {
	if !m.connected {
		m.lastErr = "not connected yet"
		return nil
	}
	if m.streaming() {
		m.lastErr = "already streaming; press esc to stop first"
		return nil
	}

	snap := m.st.State()
	chat, ok := snap.ActiveChatValue()
	if !ok {
		m.newChat("")
		snap = m.st.State()
		chat, _ = snap.ActiveChatValue()
	}

	m.dispatch(state.AddMessage{
		ChatID: chat.ID,
		Message: state.NewMessage{
			Role:        state.RoleUser,
			Content:     text,
			Attachments: m.pending,
		},
	})
	m.pending = nil

	// Pre-assign the assistant message ID so fragments know where to
	// land.
	asstID := state.MessageID(uuid.NewString())
	m.dispatch(state.AddMessage{
		ChatID:  chat.ID,
		Message: state.NewMessage{ID: asstID, Role: state.RoleAssistant},
	})

	token, err := m.channel.SendMessage(text, chat.AgentID)
	if err != nil {
		m.lastErr = err.Error()
		return nil
	}

	m.streamToken = token
	m.streamingMsgID = asstID
	m.streamingChat = chat.ID
	m.dispatch(state.SetStreaming{IsStreaming: true})
	m.viewport.GotoBottom()
	return nil
}

// handleFragment lands one fragment in the assistant message, then
// re-arms the fragment pump.
func (m *Model) handleFragment(msg fragmentMsg) (tea.Model, tea.Cmd) {
	// Stale tokens can linger in the channel buffer after a stop;
	// drop anything that is not the current stream.
	if msg.Token == m.streamToken {
		if msg.Done {
			m.clearStreaming()
		} else {
			m.dispatch(state.AppendToMessage{
				ChatID:    m.streamingChat,
				MessageID: m.streamingMsgID,
				Content:   msg.Content,
			})
			m.viewport.GotoBottom()
		}
	}
	return m, m.waitForFragment()
}

// streaming reports whether a stream is in flight.
func (m *Model) streaming() bool {
	return m.streamToken != ""
}

// stopStreaming cancels the in-flight stream and clears the flag. The
// partial assistant message stays in the chat.
func (m *Model) stopStreaming() {
	m.channel.StopStreaming()
	m.clearStreaming()
	m.notice = "Stopped."
}

func (m *Model) clearStreaming() {
	m.streamToken = ""
	m.streamingMsgID = ""
	m.streamingChat = ""
	m.dispatch(state.SetStreaming{IsStreaming: false})
}

// =============================================================================
// DISPATCH PLUMBING
// =============================================================================

// dispatch funnels an action through the store and refreshes the
// derived view state.
func (m *Model) dispatch(action state.Action) {
	m.st.Dispatch(action)
	snap := m.st.State()
	m.rebuildSidebar(snap)

	if dark := themeIsDark(m.cfg, snap); dark != m.theme.IsDark {
		m.theme = NewTheme(dark)
		m.spinner.Style = m.theme.Spinner
		m.rebuildRenderer()
	}
	m.refreshViewport()
}

// newChat creates and selects a fresh chat in the active folder.
func (m *Model) newChat(agent state.AgentID) {
	snap := m.st.State()
	m.dispatch(state.CreateChat{
		Title:    state.DefaultChatTitle,
		FolderID: snap.ActiveFolder,
		AgentID:  agent,
	})
	m.focus = focusInput
	m.input.Focus()
}

// expireNotice schedules the transient notice to clear.
func (m *Model) expireNotice() tea.Cmd {
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return noticeExpiredMsg{}
	})
}
