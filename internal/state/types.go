// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state contains the application state model and the reducer.
package state

import (
	"time"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// Typed identifiers for the entity collections. They are opaque unique
// strings (UUIDs in practice); the empty string means "none" wherever a
// reference is optional.
type (
	FolderID     string
	ChatID       string
	AgentID      string
	MessageID    string
	AttachmentID string
)

// =============================================================================
// ROLES AND MODELS
// =============================================================================

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Model identifies which backend model an agent is configured for.
type Model string

const (
	ModelQuick Model = "gpt-3.5-turbo"
	ModelDeep  Model = "gpt-4"
)

// KnownModels lists every model an agent may be configured with.
var KnownModels = []Model{ModelQuick, ModelDeep}

// =============================================================================
// ENTITIES
// =============================================================================

// Folder groups chats in the sidebar.
type Folder struct {
	ID        FolderID  `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Agent is a reusable assistant configuration referenced by chats.
type Agent struct {
	ID           AgentID   `json:"id"`
	Name         string    `json:"name"`
	SystemPrompt string    `json:"system_prompt"`
	Model        Model     `json:"model"`
	Temperature  float64   `json:"temperature"` // 0..1
	CreatedAt    time.Time `json:"created_at"`
}

// FileAttachment is metadata for a file attached to a message. It is
// owned by exactly one message.
type FileAttachment struct {
	ID   AttachmentID `json:"id"`
	Name string       `json:"name"`
	Type string       `json:"type"` // MIME type
	Size int64        `json:"size"` // bytes
	URL  string       `json:"url"`
}

// Message is one entry in a chat. Content may grow in place via
// AppendToMessage while the assistant streams; everything else is fixed
// at creation.
type Message struct {
	ID              MessageID        `json:"id"`
	Role            Role             `json:"role"`
	Content         string           `json:"content"`
	Timestamp       time.Time        `json:"timestamp"`
	FileAttachments []FileAttachment `json:"file_attachments,omitempty"`
}

// Chat is an ordered conversation. FolderID and AgentID are weak
// references: the named entity may be deleted without deleting the chat.
type Chat struct {
	ID        ChatID    `json:"id"`
	Title     string    `json:"title"`
	FolderID  FolderID  `json:"folder_id,omitempty"`
	AgentID   AgentID   `json:"agent_id,omitempty"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultChatTitle is the placeholder title given to chats created
// without one. The auto-titling rule only fires while a chat still
// carries this exact title.
const DefaultChatTitle = "New Chat"

// =============================================================================
// ROOT STATE
// =============================================================================

// AppState is the root snapshot. It is a value type; the reducer copies
// whatever it touches and shares the rest.
type AppState struct {
	Chats        []Chat   `json:"chats"`
	Folders      []Folder `json:"folders"`
	Agents       []Agent  `json:"agents"`
	ActiveChat   ChatID   `json:"active_chat,omitempty"`
	ActiveFolder FolderID `json:"active_folder,omitempty"`
	DarkMode     bool     `json:"dark_mode"`
	IsStreaming  bool     `json:"is_streaming"`
}

// NewAppState returns the documented default state: empty collections,
// no selection, not streaming. DarkMode is the caller's problem (the
// store seeds it from the terminal background).
func NewAppState() AppState {
	return AppState{
		Chats:   []Chat{},
		Folders: []Folder{},
		Agents:  []Agent{},
	}
}

// =============================================================================
// LOOKUPS (RESOLVE-OR-NULL)
// =============================================================================

// ChatByID returns the chat with the given ID.
func (s AppState) ChatByID(id ChatID) (Chat, bool) {
	if id == "" {
		return Chat{}, false
	}
	for _, c := range s.Chats {
		if c.ID == id {
			return c, true
		}
	}
	return Chat{}, false
}

// FolderByID returns the folder with the given ID. A dangling or empty
// reference resolves to "no folder" rather than an error.
func (s AppState) FolderByID(id FolderID) (Folder, bool) {
	if id == "" {
		return Folder{}, false
	}
	for _, f := range s.Folders {
		if f.ID == id {
			return f, true
		}
	}
	return Folder{}, false
}

// AgentByID returns the agent with the given ID. A dangling or empty
// reference resolves to "no agent" rather than an error.
func (s AppState) AgentByID(id AgentID) (Agent, bool) {
	if id == "" {
		return Agent{}, false
	}
	for _, a := range s.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return Agent{}, false
}

// ActiveChatValue resolves the active chat selection.
func (s AppState) ActiveChatValue() (Chat, bool) {
	return s.ChatByID(s.ActiveChat)
}

// ChatsInFolder returns the chats filed under the given folder, in
// creation order. An empty ID returns the unfiled chats.
func (s AppState) ChatsInFolder(id FolderID) []Chat {
	var out []Chat
	for _, c := range s.Chats {
		if c.FolderID == id {
			out = append(out, c)
		}
	}
	return out
}

// MessageByID returns the message with the given ID within a chat.
func (c Chat) MessageByID(id MessageID) (Message, bool) {
	for _, m := range c.Messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}
