// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable key-value slot and the snapshot codec.
//
// Persistence is deliberately simple: the entire AppState is one JSON
// blob under a fixed key in a SQLite-backed key-value table. That is
// the terminal equivalent of the localStorage slot a browser app would
// use: best-effort, single-process, no migrations. A missing or
// corrupt snapshot never crashes startup; callers fall back to the
// default state.
//
// # Key Types
//
//   - KV: SQLite-backed key-value slot (Get/Set/Delete)
//   - Codec: Save/Load of the full AppState snapshot
//   - StorageError, DecodeError: the persistence failure taxonomy
//
// # Usage
//
// Open the slot and load the prior snapshot:
//
//	kv, err := storage.OpenKV(filepath.Join(dataDir, "driftchat.db"))
//	codec := storage.NewCodec(kv)
//	snap, err := codec.Load()
//	if errors.Is(err, storage.ErrSnapshotNotFound) {
//	    snap = state.NewAppState()
//	}
//
// # Storage Location
//
// The database lives at ~/.driftchat/driftchat.db by default.
package storage
