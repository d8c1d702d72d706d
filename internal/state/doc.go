// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state contains the application state model and the reducer.
//
// The whole of driftchat's data lives in one AppState value: folders,
// chats, agents, messages, attachments, and the UI selection flags.
// Every mutation goes through Reducer.Reduce, a pure function from
// (AppState, Action) to a fresh AppState snapshot. Old snapshots are
// never mutated in place, so any reader holding a previous value keeps
// observing a consistent view.
//
// # Key Types
//
//   - AppState: the root snapshot with all collections and selections
//   - Action: sealed sum type; one struct per mutation
//   - Reducer: applies actions, with injectable ID and clock sources
//
// # Usage
//
// Apply an action to a snapshot:
//
//	r := state.NewReducer()
//	next := r.Reduce(prev, state.CreateFolder{Name: "Research"})
//
// Resolve a weak reference:
//
//	if folder, ok := next.FolderByID(chat.FolderID); ok {
//	    // chat is filed under folder
//	}
//
// # Weak References
//
// Chat.FolderID and Chat.AgentID name other entities without owning
// them. Deleting the target nulls the reference on every chat (folders,
// agents) so lookups can never dangle; an empty ID means "none".
package state
