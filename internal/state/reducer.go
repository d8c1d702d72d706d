// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state contains the application state model and the reducer.
package state

import (
	"time"

	"github.com/google/uuid"
)

// autoTitleLimit is how many characters of the first user message
// become the chat title. Counted in runes so multi-byte text cannot be
// split mid-character.
const autoTitleLimit = 20

// =============================================================================
// REDUCER
// =============================================================================

// Reducer applies actions to snapshots. The ID and clock sources are
// injectable so tests can replay an action sequence deterministically;
// production code uses NewReducer.
type Reducer struct {
	// NewID mints a fresh opaque identifier.
	NewID func() string

	// Now supplies creation and update timestamps.
	Now func() time.Time
}

// NewReducer returns a reducer backed by UUIDs and the wall clock.
func NewReducer() *Reducer {
	return &Reducer{
		NewID: uuid.NewString,
		Now:   time.Now,
	}
}

// Reduce returns the snapshot that results from applying one action.
// It never mutates its input and never fails: actions naming a
// nonexistent ID leave the matching collection unchanged, and an
// unrecognized action returns the input snapshot as-is.
func (r *Reducer) Reduce(s AppState, action Action) AppState {
	switch a := action.(type) {
	case CreateFolder:
		return r.createFolder(s, a)
	case DeleteFolder:
		return r.deleteFolder(s, a)
	case RenameFolder:
		return r.renameFolder(s, a)
	case CreateChat:
		return r.createChat(s, a)
	case DeleteChat:
		return r.deleteChat(s, a)
	case RenameChat:
		return r.renameChat(s, a)
	case MoveChatToFolder:
		return r.moveChatToFolder(s, a)
	case SetActiveChat:
		s.ActiveChat = a.ID
		return s
	case SetActiveFolder:
		s.ActiveFolder = a.ID
		return s
	case AddMessage:
		return r.addMessage(s, a)
	case AppendToMessage:
		return r.appendToMessage(s, a)
	case AddFileToMessage:
		return r.addFileToMessage(s, a)
	case CreateAgent:
		return r.createAgent(s, a)
	case DeleteAgent:
		return r.deleteAgent(s, a)
	case SetStreaming:
		s.IsStreaming = a.IsStreaming
		return s
	case ToggleDarkMode:
		s.DarkMode = !s.DarkMode
		return s
	default:
		// Unknown actions are a no-op, not an error.
		return s
	}
}

// =============================================================================
// FOLDER HANDLERS
// =============================================================================

func (r *Reducer) createFolder(s AppState, a CreateFolder) AppState {
	folder := Folder{
		ID:        FolderID(r.NewID()),
		Name:      a.Name,
		CreatedAt: r.Now(),
	}
	s.Folders = append(cloneFolders(s.Folders), folder)
	s.ActiveFolder = folder.ID
	return s
}

func (r *Reducer) deleteFolder(s AppState, a DeleteFolder) AppState {
	folders := make([]Folder, 0, len(s.Folders))
	for _, f := range s.Folders {
		if f.ID != a.ID {
			folders = append(folders, f)
		}
	}
	s.Folders = folders

	// Weak reference cleanup: unfile every chat that pointed here.
	chats := cloneChats(s.Chats)
	for i := range chats {
		if chats[i].FolderID == a.ID {
			chats[i].FolderID = ""
		}
	}
	s.Chats = chats

	if s.ActiveFolder == a.ID {
		s.ActiveFolder = ""
	}
	return s
}

func (r *Reducer) renameFolder(s AppState, a RenameFolder) AppState {
	folders := cloneFolders(s.Folders)
	for i := range folders {
		if folders[i].ID == a.ID {
			folders[i].Name = a.Name
		}
	}
	s.Folders = folders
	return s
}

// =============================================================================
// CHAT HANDLERS
// =============================================================================

func (r *Reducer) createChat(s AppState, a CreateChat) AppState {
	now := r.Now()
	chat := Chat{
		ID:        ChatID(r.NewID()),
		Title:     a.Title,
		FolderID:  a.FolderID,
		AgentID:   a.AgentID,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Chats = append(cloneChats(s.Chats), chat)
	s.ActiveChat = chat.ID
	return s
}

func (r *Reducer) deleteChat(s AppState, a DeleteChat) AppState {
	chats := make([]Chat, 0, len(s.Chats))
	for _, c := range s.Chats {
		if c.ID != a.ID {
			chats = append(chats, c)
		}
	}
	s.Chats = chats

	if s.ActiveChat == a.ID {
		s.ActiveChat = ""
	}
	return s
}

func (r *Reducer) renameChat(s AppState, a RenameChat) AppState {
	return r.updateChat(s, a.ID, func(c *Chat) {
		c.Title = a.Title
	})
}

func (r *Reducer) moveChatToFolder(s AppState, a MoveChatToFolder) AppState {
	return r.updateChat(s, a.ChatID, func(c *Chat) {
		c.FolderID = a.FolderID
	})
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (r *Reducer) addMessage(s AppState, a AddMessage) AppState {
	now := r.Now()

	id := a.Message.ID
	if id == "" {
		id = MessageID(r.NewID())
	}

	msg := Message{
		ID:        id,
		Role:      a.Message.Role,
		Content:   a.Message.Content,
		Timestamp: now,
	}
	for _, f := range a.Message.Attachments {
		msg.FileAttachments = append(msg.FileAttachments, FileAttachment{
			ID:   AttachmentID(r.NewID()),
			Name: f.Name,
			Type: f.Type,
			Size: f.Size,
			URL:  f.URL,
		})
	}

	return r.updateChat(s, a.ChatID, func(c *Chat) {
		// Auto-titling: the first user message into a still-untitled
		// chat becomes its title, truncated to autoTitleLimit runes.
		if len(c.Messages) == 0 && c.Title == DefaultChatTitle && msg.Role == RoleUser {
			c.Title = autoTitle(msg.Content)
		}
		c.Messages = append(cloneMessages(c.Messages), msg)
		c.UpdatedAt = now
	})
}

func (r *Reducer) appendToMessage(s AppState, a AppendToMessage) AppState {
	return r.updateChat(s, a.ChatID, func(c *Chat) {
		msgs := cloneMessages(c.Messages)
		for i := range msgs {
			if msgs[i].ID == a.MessageID {
				msgs[i].Content += a.Content
			}
		}
		c.Messages = msgs
		c.UpdatedAt = r.Now()
	})
}

func (r *Reducer) addFileToMessage(s AppState, a AddFileToMessage) AppState {
	attachment := FileAttachment{
		ID:   AttachmentID(r.NewID()),
		Name: a.File.Name,
		Type: a.File.Type,
		Size: a.File.Size,
		URL:  a.File.URL,
	}

	return r.updateChat(s, a.ChatID, func(c *Chat) {
		msgs := cloneMessages(c.Messages)
		for i := range msgs {
			if msgs[i].ID == a.MessageID {
				files := make([]FileAttachment, len(msgs[i].FileAttachments), len(msgs[i].FileAttachments)+1)
				copy(files, msgs[i].FileAttachments)
				msgs[i].FileAttachments = append(files, attachment)
			}
		}
		c.Messages = msgs
		c.UpdatedAt = r.Now()
	})
}

// =============================================================================
// AGENT HANDLERS
// =============================================================================

func (r *Reducer) createAgent(s AppState, a CreateAgent) AppState {
	agent := Agent{
		ID:           AgentID(r.NewID()),
		Name:         a.Name,
		SystemPrompt: a.SystemPrompt,
		Model:        a.Model,
		Temperature:  a.Temperature,
		CreatedAt:    r.Now(),
	}
	agents := make([]Agent, len(s.Agents), len(s.Agents)+1)
	copy(agents, s.Agents)
	s.Agents = append(agents, agent)
	return s
}

func (r *Reducer) deleteAgent(s AppState, a DeleteAgent) AppState {
	agents := make([]Agent, 0, len(s.Agents))
	for _, ag := range s.Agents {
		if ag.ID != a.ID {
			agents = append(agents, ag)
		}
	}
	s.Agents = agents

	// Weak reference cleanup: no chat may keep a dangling agent.
	chats := cloneChats(s.Chats)
	for i := range chats {
		if chats[i].AgentID == a.ID {
			chats[i].AgentID = ""
		}
	}
	s.Chats = chats
	return s
}

// =============================================================================
// COPY-ON-WRITE HELPERS
// =============================================================================

// updateChat applies fn to the chat with the given ID on a fresh chats
// slice. Unmatched IDs leave the state unchanged (still a fresh slice,
// same contents).
func (r *Reducer) updateChat(s AppState, id ChatID, fn func(*Chat)) AppState {
	chats := cloneChats(s.Chats)
	for i := range chats {
		if chats[i].ID == id {
			fn(&chats[i])
		}
	}
	s.Chats = chats
	return s
}

func cloneChats(chats []Chat) []Chat {
	out := make([]Chat, len(chats))
	copy(out, chats)
	return out
}

func cloneFolders(folders []Folder) []Folder {
	out := make([]Folder, len(folders))
	copy(out, folders)
	return out
}

// cloneMessages copies the message slice so appends and edits never
// reach a previously published snapshot.
func cloneMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// autoTitle derives a chat title from message content: the first
// autoTitleLimit runes, with "..." appended when the content was
// longer.
func autoTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= autoTitleLimit {
		return content
	}
	return string(runes[:autoTitleLimit]) + "..."
}
