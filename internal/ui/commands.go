// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - Slash commands typed into the input line.
package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/driftchat-tui/internal/export"
	"github.com/jeranaias/driftchat-tui/internal/files"
	"github.com/jeranaias/driftchat-tui/internal/state"
)

const helpText = `Slash commands:

  /new [title]          New chat in the active folder
  /newfolder <name>     New folder (becomes active)
  /rename <title>       Rename the active chat
  /move <folder|none>   File the active chat
  /agents               List agents
  /agent <name>         New chat bound to an agent
  /newagent <name> [t]  Create an agent (temperature 0..1)
  /delagent <name>      Delete an agent
  /attach <path>        Stage a file for the next message
  /export [md|json]     Export the active chat
  /dark                 Toggle dark mode
  /help                 Toggle this help
  /quit                 Exit

Keys: tab switches panes, enter sends or opens, esc stops streaming,
ctrl+n new chat, ctrl+x deletes the selected sidebar item.`

// runCommand executes one slash command.
func (m *Model) runCommand(text string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(text)
	cmd := strings.ToLower(parts[0])
	arg := strings.TrimSpace(strings.TrimPrefix(text, parts[0]))

	switch cmd {
	case "/help":
		m.showHelp = !m.showHelp
		m.refreshViewport()
		return m, nil

	case "/quit":
		m.channel.Close()
		return m, tea.Quit

	case "/new":
		title := arg
		if title == "" {
			title = state.DefaultChatTitle
		}
		snap := m.st.State()
		m.dispatch(state.CreateChat{Title: title, FolderID: snap.ActiveFolder})
		return m, nil

	case "/newfolder":
		if arg == "" {
			return m.fail("usage: /newfolder <name>")
		}
		m.dispatch(state.CreateFolder{Name: arg})
		m.notice = "Created folder " + arg
		return m, m.expireNotice()

	case "/rename":
		if arg == "" {
			return m.fail("usage: /rename <title>")
		}
		chat, ok := m.st.State().ActiveChatValue()
		if !ok {
			return m.fail("no active chat")
		}
		m.dispatch(state.RenameChat{ID: chat.ID, Title: arg})
		return m, nil

	case "/move":
		return m.commandMove(arg)

	case "/agents":
		return m.commandAgents()

	case "/agent":
		return m.commandAgent(arg)

	case "/newagent":
		return m.commandNewAgent(arg)

	case "/delagent":
		return m.commandDelAgent(arg)

	case "/attach":
		if arg == "" {
			return m.fail("usage: /attach <path>")
		}
		return m, m.stageAttachment(arg)

	case "/export":
		return m.commandExport(arg)

	case "/dark":
		m.dispatch(state.ToggleDarkMode{})
		return m, nil

	default:
		return m.fail("unknown command " + cmd + " (try /help)")
	}
}

// fail surfaces a command error without leaving input focus.
func (m *Model) fail(msg string) (tea.Model, tea.Cmd) {
	m.lastErr = msg
	return m, m.expireNotice()
}

// commandMove files the active chat under a folder named by prefix, or
// unfiles it with "none".
func (m *Model) commandMove(arg string) (tea.Model, tea.Cmd) {
	if arg == "" {
		return m.fail("usage: /move <folder|none>")
	}
	snap := m.st.State()
	chat, ok := snap.ActiveChatValue()
	if !ok {
		return m.fail("no active chat")
	}

	if strings.EqualFold(arg, "none") {
		m.dispatch(state.MoveChatToFolder{ChatID: chat.ID})
		m.notice = "Unfiled chat."
		return m, m.expireNotice()
	}

	folder, ok := folderByName(snap, arg)
	if !ok {
		return m.fail("no folder named " + arg)
	}
	m.dispatch(state.MoveChatToFolder{ChatID: chat.ID, FolderID: folder.ID})
	m.notice = "Moved to " + folder.Name
	return m, m.expireNotice()
}

// commandAgents lists the configured agents.
func (m *Model) commandAgents() (tea.Model, tea.Cmd) {
	snap := m.st.State()
	if len(snap.Agents) == 0 {
		m.notice = "No agents. Create one with /newagent."
		return m, m.expireNotice()
	}
	names := make([]string, 0, len(snap.Agents))
	for _, a := range snap.Agents {
		names = append(names, fmt.Sprintf("%s (%s, %.1f)", a.Name, a.Model, a.Temperature))
	}
	m.notice = "Agents: " + strings.Join(names, ", ")
	return m, m.expireNotice()
}

// commandAgent opens a new chat bound to the named agent. Agents are
// fixed at chat creation, matching how the sidebar presents them.
func (m *Model) commandAgent(arg string) (tea.Model, tea.Cmd) {
	if arg == "" {
		return m.fail("usage: /agent <name>")
	}
	agent, ok := agentByName(m.st.State(), arg)
	if !ok {
		return m.fail("no agent named " + arg)
	}
	m.newChat(agent.ID)
	m.notice = "New chat with " + agent.Name
	return m, m.expireNotice()
}

// commandNewAgent creates an agent: /newagent <name> [temperature].
func (m *Model) commandNewAgent(arg string) (tea.Model, tea.Cmd) {
	if arg == "" {
		return m.fail("usage: /newagent <name> [temperature]")
	}

	name := arg
	temp := 0.7
	if fields := strings.Fields(arg); len(fields) > 1 {
		if v, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil && v >= 0 && v <= 1 {
			temp = v
			name = strings.TrimSpace(strings.TrimSuffix(arg, fields[len(fields)-1]))
		}
	}

	m.dispatch(state.CreateAgent{
		Name:         name,
		SystemPrompt: "You are a helpful AI assistant.",
		Model:        state.ModelQuick,
		Temperature:  temp,
	})
	m.notice = "Created agent " + name
	return m, m.expireNotice()
}

// commandDelAgent deletes an agent by name. Chats that used it keep
// their history and lose only the reference.
func (m *Model) commandDelAgent(arg string) (tea.Model, tea.Cmd) {
	if arg == "" {
		return m.fail("usage: /delagent <name>")
	}
	agent, ok := agentByName(m.st.State(), arg)
	if !ok {
		return m.fail("no agent named " + arg)
	}
	m.dispatch(state.DeleteAgent{ID: agent.ID})
	m.notice = "Deleted agent " + agent.Name
	return m, m.expireNotice()
}

// commandExport writes the active chat to a file in the data
// directory.
func (m *Model) commandExport(arg string) (tea.Model, tea.Cmd) {
	snap := m.st.State()
	chat, ok := snap.ActiveChatValue()
	if !ok {
		return m.fail("no active chat")
	}

	view, err := export.Resolve(snap, chat.ID)
	if err != nil {
		return m.fail(err.Error())
	}

	opts := export.DefaultOptions()
	opts.OutputDir = m.cfg.DataDir

	var path string
	switch strings.ToLower(arg) {
	case "", "md", "markdown":
		path, err = export.ExportMarkdown(view, opts)
	case "json":
		path, err = export.ExportJSON(view, opts)
	default:
		return m.fail("unknown export format " + arg)
	}
	if err != nil {
		return m.fail(err.Error())
	}
	m.notice = "Exported to " + path
	return m, m.expireNotice()
}

// stageAttachment validates and stages a file off the update loop (the
// simulated upload sleeps).
func (m *Model) stageAttachment(path string) tea.Cmd {
	return func() tea.Msg {
		info, err := os.Stat(path)
		if err != nil {
			return attachStagedMsg{err: err}
		}
		meta := files.Meta{
			Name: filepath.Base(path),
			Type: mimeByExtension(path),
			Size: info.Size(),
		}
		staged, err := files.Stage(meta)
		if err != nil {
			return attachStagedMsg{err: err}
		}
		return attachStagedMsg{file: staged}
	}
}

// mimeByExtension maps the supported extensions to their MIME types.
// Anything else falls through to validation, which rejects it with the
// user-facing allow-list message.
func mimeByExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg":
		return "image/jpg"
	case ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

// folderByName matches a folder by exact name, case-insensitively.
func folderByName(s state.AppState, name string) (state.Folder, bool) {
	for _, f := range s.Folders {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return state.Folder{}, false
}

// agentByName matches an agent by exact name, case-insensitively.
func agentByName(s state.AppState, name string) (state.Agent, bool) {
	for _, a := range s.Agents {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return state.Agent{}, false
}
