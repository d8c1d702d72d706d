// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable key-value slot and the snapshot codec.
package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// KEY-VALUE SLOT
// =============================================================================

// KV is a durable key-value slot backed by SQLite. It plays the role a
// browser's localStorage plays for a web app: one small table of opaque
// blobs under fixed keys, best-effort, single-process.
type KV struct {
	db *sql.DB
}

// OpenKV opens (or creates) the key-value database at path, creating
// parent directories as needed.
func OpenKV(path string) (*KV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &StorageError{Op: "open", Cause: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Cause: err}
	}

	// Single connection: the slot is single-process, single-writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, &StorageError{Op: "open", Cause: err}
	}

	return &KV{db: db}, nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (k *KV) Get(key string) ([]byte, error) {
	var value []byte
	err := k.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Cause: err}
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (k *KV) Set(key string, value []byte) error {
	_, err := k.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return &StorageError{Op: "write", Cause: err}
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (k *KV) Delete(key string) error {
	if _, err := k.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return &StorageError{Op: "delete", Cause: err}
	}
	return nil
}

// Close releases the underlying database handle.
func (k *KV) Close() error {
	return k.db.Close()
}
