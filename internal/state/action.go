// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state contains the application state model and the reducer.
package state

// =============================================================================
// ACTION SUM TYPE
// =============================================================================

// Action is the sealed set of state mutations. Each variant is a plain
// struct carrying its payload; the unexported marker method keeps the
// set closed so the reducer's type switch is exhaustive.
type Action interface {
	isAction()
}

// NewMessage is the payload for AddMessage: a message without an
// assigned timestamp. ID is normally left empty and assigned by the
// reducer; a caller that needs to know the ID up front (the streaming
// flow appends into the message it just created) may supply one.
type NewMessage struct {
	ID          MessageID
	Role        Role
	Content     string
	Attachments []NewFile
}

// NewFile is the payload for AddFileToMessage: attachment metadata
// without an assigned ID.
type NewFile struct {
	Name string
	Type string
	Size int64
	URL  string
}

// -----------------------------------------------------------------------------
// Folder actions
// -----------------------------------------------------------------------------

// CreateFolder appends a new folder and makes it the active folder.
type CreateFolder struct {
	Name string
}

// DeleteFolder removes a folder, unfiles every chat that referenced it,
// and clears the active-folder selection if it pointed there.
type DeleteFolder struct {
	ID FolderID
}

// RenameFolder updates a folder's name only.
type RenameFolder struct {
	ID   FolderID
	Name string
}

// -----------------------------------------------------------------------------
// Chat actions
// -----------------------------------------------------------------------------

// CreateChat appends a new empty chat and makes it the active chat.
// FolderID and AgentID are optional weak references.
type CreateChat struct {
	Title    string
	FolderID FolderID
	AgentID  AgentID
}

// DeleteChat removes a chat and clears the active-chat selection if it
// pointed there.
type DeleteChat struct {
	ID ChatID
}

// RenameChat updates a chat's title only.
type RenameChat struct {
	ID    ChatID
	Title string
}

// MoveChatToFolder refiles one chat. An empty FolderID unfiles it.
type MoveChatToFolder struct {
	ChatID   ChatID
	FolderID FolderID
}

// SetActiveChat changes the chat selection. Empty clears it.
type SetActiveChat struct {
	ID ChatID
}

// SetActiveFolder changes the folder selection. Empty clears it.
type SetActiveFolder struct {
	ID FolderID
}

// -----------------------------------------------------------------------------
// Message actions
// -----------------------------------------------------------------------------

// AddMessage appends a message to a chat, assigning an ID (unless the
// payload carries one) and the current time. The first user message
// into a chat still titled DefaultChatTitle retitles it from the
// message content.
type AddMessage struct {
	ChatID  ChatID
	Message NewMessage
}

// AppendToMessage concatenates content onto an existing message. The
// streaming flow delivers assistant output one fragment at a time
// through this action.
type AppendToMessage struct {
	ChatID    ChatID
	MessageID MessageID
	Content   string
}

// AddFileToMessage appends attachment metadata to an existing message,
// assigning a fresh attachment ID.
type AddFileToMessage struct {
	ChatID    ChatID
	MessageID MessageID
	File      NewFile
}

// -----------------------------------------------------------------------------
// Agent actions
// -----------------------------------------------------------------------------

// CreateAgent appends a new agent configuration.
type CreateAgent struct {
	Name         string
	SystemPrompt string
	Model        Model
	Temperature  float64
}

// DeleteAgent removes an agent and nulls the reference on every chat
// that used it.
type DeleteAgent struct {
	ID AgentID
}

// -----------------------------------------------------------------------------
// Global flags
// -----------------------------------------------------------------------------

// SetStreaming sets the global streaming-in-progress flag.
type SetStreaming struct {
	IsStreaming bool
}

// ToggleDarkMode flips the theme flag.
type ToggleDarkMode struct{}

// -----------------------------------------------------------------------------
// Sealed set
// -----------------------------------------------------------------------------

func (CreateFolder) isAction()     {}
func (DeleteFolder) isAction()     {}
func (RenameFolder) isAction()     {}
func (CreateChat) isAction()       {}
func (DeleteChat) isAction()       {}
func (RenameChat) isAction()       {}
func (MoveChatToFolder) isAction() {}
func (SetActiveChat) isAction()    {}
func (SetActiveFolder) isAction()  {}
func (AddMessage) isAction()       {}
func (AppendToMessage) isAction()  {}
func (AddFileToMessage) isAction() {}
func (CreateAgent) isAction()      {}
func (DeleteAgent) isAction()      {}
func (SetStreaming) isAction()     {}
func (ToggleDarkMode) isAction()   {}
