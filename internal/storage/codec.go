// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable key-value slot and the snapshot codec.
package storage

import (
	"encoding/json"
	"errors"

	"github.com/jeranaias/driftchat-tui/internal/state"
)

// SnapshotKey is the fixed logical key the full application snapshot
// lives under.
const SnapshotKey = "appState"

// =============================================================================
// SNAPSHOT CODEC
// =============================================================================

// Codec serializes the whole AppState to and from the key-value slot.
// Both operations are pure aside from the storage call itself; the
// encoding is a complete structural JSON serialization that round-trips
// every field including nested sequences.
type Codec struct {
	kv *KV
}

// NewCodec wraps a key-value slot.
func NewCodec(kv *KV) *Codec {
	return &Codec{kv: kv}
}

// Save persists a snapshot. Returns a StorageError on write failure.
func (c *Codec) Save(s state.AppState) error {
	data, err := json.Marshal(s)
	if err != nil {
		// Only reachable with unmarshalable values, which AppState
		// never contains; reported as a write failure all the same.
		return &StorageError{Op: "write", Cause: err}
	}
	return c.kv.Set(SnapshotKey, data)
}

// Load retrieves the persisted snapshot. An absent snapshot returns
// ErrSnapshotNotFound and a corrupt one returns a DecodeError; in both
// cases the caller starts from the default state rather than failing.
func (c *Codec) Load() (state.AppState, error) {
	data, err := c.kv.Get(SnapshotKey)
	if errors.Is(err, ErrKeyNotFound) {
		return state.AppState{}, ErrSnapshotNotFound
	}
	if err != nil {
		return state.AppState{}, err
	}

	var s state.AppState
	if err := json.Unmarshal(data, &s); err != nil {
		return state.AppState{}, &DecodeError{Cause: err}
	}
	return s, nil
}

// Clear discards the persisted snapshot.
func (c *Codec) Clear() error {
	return c.kv.Delete(SnapshotKey)
}
