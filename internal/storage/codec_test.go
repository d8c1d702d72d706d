// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jeranaias/driftchat-tui/internal/state"
)

// testSnapshot builds a state exercising every nested structure the
// codec must round-trip: chats with messages and attachments, folders,
// agents, selections, and flags.
func testSnapshot() state.AppState {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return state.AppState{
		Folders: []state.Folder{
			{ID: "f1", Name: "Research", CreatedAt: ts},
		},
		Agents: []state.Agent{
			{ID: "a1", Name: "Analyst", SystemPrompt: "You analyze markets.", Model: state.ModelDeep, Temperature: 0.5, CreatedAt: ts},
		},
		Chats: []state.Chat{
			{
				ID:       "c1",
				Title:    "Q3 outlook",
				FolderID: "f1",
				AgentID:  "a1",
				Messages: []state.Message{
					{ID: "m1", Role: state.RoleUser, Content: "What's the outlook?", Timestamp: ts},
					{
						ID: "m2", Role: state.RoleAssistant, Content: "Mixed.", Timestamp: ts.Add(time.Second),
						FileAttachments: []state.FileAttachment{
							{ID: "at1", Name: "chart.png", Type: "image/png", Size: 2048, URL: "local://x"},
						},
					},
				},
				CreatedAt: ts,
				UpdatedAt: ts.Add(time.Second),
			},
		},
		ActiveChat:   "c1",
		ActiveFolder: "f1",
		DarkMode:     true,
	}
}

// TestCodec_RoundTrip tests that Load(Save(s)) reproduces the snapshot
// structurally, nested sequences included.
func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec(openTestKV(t))
	want := testSnapshot()

	if err := codec.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := codec.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip diverged:\n  want: %+v\n  got:  %+v", want, got)
	}
}

// TestCodec_LoadMissing tests that an absent snapshot reports
// ErrSnapshotNotFound so the caller can start fresh.
func TestCodec_LoadMissing(t *testing.T) {
	codec := NewCodec(openTestKV(t))

	_, err := codec.Load()
	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Load on empty slot = %v, want ErrSnapshotNotFound", err)
	}
}

// TestCodec_LoadCorrupt tests that undecodable stored bytes report a
// DecodeError rather than panicking or returning garbage.
func TestCodec_LoadCorrupt(t *testing.T) {
	kv := openTestKV(t)
	codec := NewCodec(kv)

	if err := kv.Set(SnapshotKey, []byte("{not json")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	_, err := codec.Load()
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("Load of corrupt slot = %v, want DecodeError", err)
	}
	if errors.Is(err, ErrSnapshotNotFound) {
		t.Error("corruption must not masquerade as an absent snapshot")
	}
}

// TestCodec_SaveOverwrites tests that the slot holds exactly the most
// recent snapshot.
func TestCodec_SaveOverwrites(t *testing.T) {
	codec := NewCodec(openTestKV(t))

	first := testSnapshot()
	if err := codec.Save(first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := first
	second.DarkMode = false
	second.ActiveChat = ""
	if err := codec.Save(second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := codec.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.DarkMode || got.ActiveChat != "" {
		t.Errorf("Load returned stale snapshot: %+v", got)
	}
}

// TestCodec_Clear tests discarding the persisted snapshot.
func TestCodec_Clear(t *testing.T) {
	codec := NewCodec(openTestKV(t))

	if err := codec.Save(testSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := codec.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := codec.Load(); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Load after Clear = %v, want ErrSnapshotNotFound", err)
	}
}
