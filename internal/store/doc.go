// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the live application state.
//
// The Store is the only way the presentation layer reads or changes
// state: Dispatch(action), State(), Subscribe(listener). Every
// dispatch runs the reducer, persists the new snapshot through the
// codec, swaps the in-memory reference, and notifies subscribers
// synchronously.
//
// # Durability
//
// Persistence is best-effort, not transactional. If the codec fails
// (disk full, database locked), the in-memory state still advances and
// subscribers are still notified; the failure goes to the error sink.
//
// # Usage
//
//	st := store.New(codec)
//	unsub := st.Subscribe(func(s state.AppState) { render(s) })
//	defer unsub()
//	st.Dispatch(state.CreateChat{Title: state.DefaultChatTitle})
package store
