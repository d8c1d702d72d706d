// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable key-value slot and the snapshot codec.
package storage

// =============================================================================
// ERROR TYPES
// =============================================================================

// StorageError represents a persistence read/write failure. It is
// non-fatal: the in-memory state stays authoritative and the error is
// reported, never propagated as a crash.
type StorageError struct {
	Op    string // "open", "read", "write", "delete"
	Cause error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Cause != nil {
		return "storage " + e.Op + " failed: " + e.Cause.Error()
	}
	return "storage " + e.Op + " failed"
}

// Unwrap exposes the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Is matches any StorageError regardless of operation or cause, so
// callers can check errors.Is(err, &StorageError{}).
func (e *StorageError) Is(target error) bool {
	_, ok := target.(*StorageError)
	return ok
}

// DecodeError represents a corrupt persisted snapshot. Callers recover
// by falling back to the default state.
type DecodeError struct {
	Cause error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return "snapshot decode failed: " + e.Cause.Error()
	}
	return "snapshot decode failed"
}

// Unwrap exposes the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is matches any DecodeError.
func (e *DecodeError) Is(target error) bool {
	_, ok := target.(*DecodeError)
	return ok
}

// kvError represents a key-level condition from the KV slot.
type kvError struct {
	message string
}

func (e *kvError) Error() string {
	return e.message
}

// ErrKeyNotFound is returned by KV.Get for an absent key.
// Use errors.Is(err, ErrKeyNotFound) to check for this error.
var ErrKeyNotFound = &kvError{message: "key not found"}

// ErrSnapshotNotFound is returned by Codec.Load when no snapshot has
// ever been saved. This is a defined empty result, not a failure:
// callers start from the default state.
var ErrSnapshotNotFound = &kvError{message: "no snapshot stored"}
