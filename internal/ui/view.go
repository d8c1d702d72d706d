// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/driftchat-tui/internal/files"
	"github.com/jeranaias/driftchat-tui/internal/state"
	"github.com/jeranaias/driftchat-tui/internal/util"
)

// Fixed row budgets for the lower panes.
const (
	inputHeight  = 3
	statusHeight = 1
)

// View renders the full screen: sidebar beside the conversation, the
// input line, and a status bar.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	snap := m.st.State()

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.viewSidebar(snap),
		m.viewport.View(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		m.viewInput(),
		m.viewStatus(snap),
	)
}

// =============================================================================
// SIDEBAR
// =============================================================================

// viewSidebar renders folders with their chats, plus unfiled chats.
func (m *Model) viewSidebar(snap state.AppState) string {
	width := m.sidebarWidth() - 2
	height := m.height - inputHeight - statusHeight

	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render("driftchat"))
	b.WriteString("\n\n")

	if len(m.sidebarRows) == 0 {
		b.WriteString(m.theme.Muted.Render("No chats yet."))
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render("ctrl+n starts one."))
	}

	for i, row := range m.sidebarRows {
		line := m.sidebarLine(snap, row, width)
		if m.focus == focusSidebar && i == m.sidebarSel {
			line = m.theme.SelectedLine.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return m.theme.Sidebar.
		Width(m.sidebarWidth()).
		Height(height).
		Render(b.String())
}

// sidebarLine renders one sidebar row within the width budget.
func (m *Model) sidebarLine(snap state.AppState, row sidebarRow, width int) string {
	switch row.kind {
	case rowFolder:
		count := len(snap.ChatsInFolder(row.folderID))
		label := util.TruncateWidth(row.label, width-6)
		line := m.theme.FolderLine.Render(label) +
			m.theme.SidebarCount.Render(fmt.Sprintf(" (%d)", count))
		if snap.ActiveFolder == row.folderID {
			line = m.theme.SelectedLine.Render("*") + line
		}
		return line

	default:
		label := util.TruncateWidth(util.SingleLine(row.label), width-4)
		style := m.theme.ChatLine
		if snap.ActiveChat == row.chatID {
			style = m.theme.SelectedLine
		}
		return "  " + style.Render(label)
	}
}

// =============================================================================
// CONVERSATION
// =============================================================================

// refreshViewport re-renders the active chat into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderConversation())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// renderConversation renders the help overlay, the welcome screen, or
// the active chat's messages.
func (m *Model) renderConversation() string {
	if m.showHelp {
		return m.theme.Welcome.Render(helpText)
	}

	snap := m.st.State()
	chat, ok := snap.ActiveChatValue()
	if !ok {
		return m.theme.Welcome.Render(
			"Welcome to driftchat.\n\n" +
				"Select a chat from the sidebar (tab, then arrows)\n" +
				"or just start typing to open a new one.\n\n" +
				"/help lists the commands.")
	}

	var b strings.Builder
	if agent, ok := snap.AgentByID(chat.AgentID); ok {
		b.WriteString(m.theme.Muted.Render("agent: " + agent.Name))
		b.WriteString("\n\n")
	}

	for _, msg := range chat.Messages {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}

	if m.streaming() {
		b.WriteString(m.spinner.View())
		b.WriteString(m.theme.Muted.Render(" streaming..."))
		b.WriteString("\n")
	}
	return b.String()
}

// renderMessage renders one message: label line, body, attachments.
func (m *Model) renderMessage(msg state.Message) string {
	var label string
	switch msg.Role {
	case state.RoleUser:
		label = m.theme.UserLabel.Render("You")
	case state.RoleAssistant:
		label = m.theme.AssistantLabel.Render("Assistant")
	default:
		label = m.theme.SystemLabel.Render("System")
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteString(" ")
	b.WriteString(m.theme.Timestamp.Render(msg.Timestamp.Format("15:04")))
	b.WriteString("\n")

	body := msg.Content
	if msg.Role == state.RoleAssistant && m.renderer != nil && body != "" {
		if rendered, err := m.renderer.Render(body); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}
	b.WriteString(body)
	b.WriteString("\n")

	for _, att := range msg.FileAttachments {
		b.WriteString(m.theme.Attachment.Render(
			fmt.Sprintf("  [%s] %s (%s)", files.Categorize(att.Type), att.Name, files.FormatSize(att.Size))))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// INPUT AND STATUS
// =============================================================================

// viewInput renders the input line with any staged attachments above
// it.
func (m *Model) viewInput() string {
	var b strings.Builder
	if len(m.pending) > 0 {
		names := make([]string, 0, len(m.pending))
		for _, f := range m.pending {
			names = append(names, f.Name)
		}
		b.WriteString(m.theme.Pending.Render("attached: " + strings.Join(names, ", ")))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.InputPrompt.Render("> "))
	b.WriteString(m.input.View())

	return m.theme.InputBox.Width(m.width - 2).Render(b.String())
}

// viewStatus renders the one-line status bar: connection state, then
// either an error, a notice, or the key hints.
func (m *Model) viewStatus(snap state.AppState) string {
	var left string
	switch {
	case !m.connected:
		left = m.spinner.View() + " connecting"
	case snap.IsStreaming:
		left = m.theme.StatusState.Render("streaming") + "  " +
			m.theme.StatusKey.Render("esc") + " stop"
	default:
		left = m.theme.StatusState.Render(m.channel.State().String())
	}

	var right string
	switch {
	case m.lastErr != "":
		right = m.theme.StatusError.Render(util.TruncateWidth(m.lastErr, m.width/2))
	case m.notice != "":
		right = m.theme.StatusNotice.Render(util.TruncateWidth(m.notice, m.width/2))
	default:
		right = m.theme.StatusKey.Render("tab") + " panes  " +
			m.theme.StatusKey.Render("/help") + " commands  " +
			m.theme.StatusKey.Render("ctrl+c") + " quit"
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return m.theme.StatusBar.Width(m.width).Render(
		left + strings.Repeat(" ", gap) + right)
}
