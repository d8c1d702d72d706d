// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"testing"
	"time"

	"github.com/jeranaias/driftchat-tui/internal/config"
	"github.com/jeranaias/driftchat-tui/internal/state"
	"github.com/jeranaias/driftchat-tui/internal/store"
	"github.com/jeranaias/driftchat-tui/internal/stream"
)

// newTestModel builds a model over an in-memory store and a fast,
// unconnected channel.
func newTestModel(t *testing.T) *Model {
	t.Helper()

	st := store.New(nil)
	ch := stream.NewChannelWithConfig(stream.Config{
		ConnectDelay:     time.Millisecond,
		FragmentInterval: time.Millisecond,
	})
	t.Cleanup(func() {
		ch.Close()
		st.Close()
	})

	return New(st, ch, config.Default())
}

// findFolder returns the folder with the given name, failing the test
// if it does not exist.
func findFolder(t *testing.T, m *Model, name string) state.Folder {
	t.Helper()
	f, ok := folderByName(m.st.State(), name)
	if !ok {
		t.Fatalf("folder %q not found", name)
	}
	return f
}

// TestRebuildSidebar_Ordering verifies the sidebar lists each folder
// followed by its chats, with unfiled chats at the bottom.
func TestRebuildSidebar_Ordering(t *testing.T) {
	m := newTestModel(t)

	m.dispatch(state.CreateFolder{Name: "Work"})
	work := findFolder(t, m, "Work")

	m.dispatch(state.CreateChat{Title: "Filed", FolderID: work.ID})
	m.dispatch(state.CreateChat{Title: "Loose"})

	if len(m.sidebarRows) != 3 {
		t.Fatalf("rows = %d, want 3", len(m.sidebarRows))
	}
	if m.sidebarRows[0].kind != rowFolder || m.sidebarRows[0].label != "Work" {
		t.Errorf("row 0 = %+v, want Work folder", m.sidebarRows[0])
	}
	if m.sidebarRows[1].kind != rowChat || m.sidebarRows[1].label != "Filed" {
		t.Errorf("row 1 = %+v, want Filed chat", m.sidebarRows[1])
	}
	if m.sidebarRows[2].kind != rowChat || m.sidebarRows[2].label != "Loose" {
		t.Errorf("row 2 = %+v, want Loose chat", m.sidebarRows[2])
	}
}

// TestRebuildSidebar_SelectionClamped verifies the cursor stays in
// bounds when rows disappear.
func TestRebuildSidebar_SelectionClamped(t *testing.T) {
	m := newTestModel(t)

	m.dispatch(state.CreateChat{Title: "One"})
	m.dispatch(state.CreateChat{Title: "Two"})
	m.sidebarSel = 1

	chat := m.sidebarRows[1].chatID
	m.dispatch(state.DeleteChat{ID: chat})

	if m.sidebarSel != 0 {
		t.Errorf("sidebarSel = %d after delete, want 0", m.sidebarSel)
	}

	m.dispatch(state.DeleteChat{ID: m.sidebarRows[0].chatID})
	if m.sidebarSel != 0 {
		t.Errorf("sidebarSel = %d with empty sidebar, want 0", m.sidebarSel)
	}
	if _, ok := m.selectedRow(); ok {
		t.Error("selectedRow reported a row in an empty sidebar")
	}
}

// TestThemeIsDark verifies the config can force a theme and "auto"
// follows the persisted flag.
func TestThemeIsDark(t *testing.T) {
	tests := []struct {
		theme string
		dark  bool
		want  bool
	}{
		{"dark", false, true},
		{"light", true, false},
		{"auto", true, true},
		{"auto", false, false},
	}

	for _, tt := range tests {
		cfg := config.Default()
		cfg.UI.Theme = tt.theme
		snap := state.AppState{DarkMode: tt.dark}
		if got := themeIsDark(cfg, snap); got != tt.want {
			t.Errorf("themeIsDark(theme=%q, dark=%v) = %v, want %v",
				tt.theme, tt.dark, got, tt.want)
		}
	}
}

// TestMimeByExtension verifies the supported extensions map to the
// MIME types the validator accepts.
func TestMimeByExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"report.pdf", "application/pdf"},
		{"photo.JPG", "image/jpg"},
		{"photo.jpeg", "image/jpeg"},
		{"shot.png", "image/png"},
		{"notes.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"script.sh", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := mimeByExtension(tt.path); got != tt.want {
			t.Errorf("mimeByExtension(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// TestLookupsByName verifies case-insensitive folder and agent lookup.
func TestLookupsByName(t *testing.T) {
	m := newTestModel(t)
	m.dispatch(state.CreateFolder{Name: "Research"})
	m.dispatch(state.CreateAgent{
		Name:        "Helper",
		Model:       state.ModelQuick,
		Temperature: 0.7,
	})
	snap := m.st.State()

	if _, ok := folderByName(snap, "research"); !ok {
		t.Error("folderByName should match case-insensitively")
	}
	if _, ok := folderByName(snap, "missing"); ok {
		t.Error("folderByName matched a nonexistent folder")
	}
	if _, ok := agentByName(snap, "HELPER"); !ok {
		t.Error("agentByName should match case-insensitively")
	}
	if _, ok := agentByName(snap, "nobody"); ok {
		t.Error("agentByName matched a nonexistent agent")
	}
}

// TestRunCommand_NewFolder verifies the /newfolder command creates and
// activates the folder.
func TestRunCommand_NewFolder(t *testing.T) {
	m := newTestModel(t)

	m.runCommand("/newfolder Projects")

	snap := m.st.State()
	folder := findFolder(t, m, "Projects")
	if snap.ActiveFolder != folder.ID {
		t.Errorf("ActiveFolder = %q, want %q", snap.ActiveFolder, folder.ID)
	}
	if m.notice == "" {
		t.Error("expected a confirmation notice")
	}
}

// TestRunCommand_Unknown verifies unknown commands surface an error
// instead of being swallowed.
func TestRunCommand_Unknown(t *testing.T) {
	m := newTestModel(t)

	m.runCommand("/bogus")

	if m.lastErr == "" {
		t.Error("expected an error for an unknown command")
	}
}

// TestRunCommand_RenameRequiresActiveChat verifies /rename fails
// cleanly with no chat selected.
func TestRunCommand_RenameRequiresActiveChat(t *testing.T) {
	m := newTestModel(t)

	m.runCommand("/rename Better Title")
	if m.lastErr == "" {
		t.Error("expected an error renaming with no active chat")
	}

	m.lastErr = ""
	m.dispatch(state.CreateChat{Title: "Draft"})
	m.runCommand("/rename Better Title")

	chat, ok := m.st.State().ActiveChatValue()
	if !ok {
		t.Fatal("no active chat after create")
	}
	if chat.Title != "Better Title" {
		t.Errorf("Title = %q, want %q", chat.Title, "Better Title")
	}
}

// TestSendMessage_RequiresConnection verifies sending before the
// handshake completes is rejected.
func TestSendMessage_RequiresConnection(t *testing.T) {
	m := newTestModel(t)

	if cmd := m.sendMessage("hello"); cmd != nil {
		t.Error("sendMessage returned a command while disconnected")
	}
	if m.lastErr == "" {
		t.Error("expected a not-connected error")
	}
	if len(m.st.State().Chats) != 0 {
		t.Errorf("chats = %d, want 0 (nothing dispatched)", len(m.st.State().Chats))
	}
}
