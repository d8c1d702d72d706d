// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the live application state.
package store

import (
	"errors"
	"log"
	"sync"

	"github.com/muesli/termenv"

	"github.com/jeranaias/driftchat-tui/internal/state"
	"github.com/jeranaias/driftchat-tui/internal/storage"
)

// =============================================================================
// CODEC CONTRACT
// =============================================================================

// Codec persists and restores snapshots. storage.Codec is the
// production implementation; tests substitute in-memory fakes.
type Codec interface {
	Save(state.AppState) error
	Load() (state.AppState, error)
}

// =============================================================================
// STORE
// =============================================================================

// Listener observes new snapshots. Listeners run synchronously inside
// Dispatch, in registration order.
type Listener func(state.AppState)

// Store owns the single live AppState and funnels every mutation
// through the reducer and the codec.
//
// Dispatch is synchronous and must only be called from one goroutine
// (the UI update loop). Re-entrant Dispatch from inside a listener is
// permitted: the inner dispatch completes fully, including its own
// notification round, before the outer dispatch resumes notifying its
// remaining listeners. That is same-goroutine re-entrancy, not
// concurrency; State and Subscribe may be called from any goroutine.
type Store struct {
	reducer *state.Reducer
	codec   Codec
	errSink func(error)

	mu      sync.RWMutex
	current state.AppState

	subMu   sync.Mutex
	subs    []subscription
	nextSub int
}

type subscription struct {
	id int
	fn Listener
}

// Option configures a Store.
type Option func(*Store)

// WithReducer substitutes the reducer, letting tests inject fixed ID
// and clock sources.
func WithReducer(r *state.Reducer) Option {
	return func(s *Store) { s.reducer = r }
}

// WithErrorSink routes persistence failures somewhere other than the
// standard logger.
func WithErrorSink(fn func(error)) Option {
	return func(s *Store) { s.errSink = fn }
}

// WithDefaultState replaces the state used when no snapshot exists,
// e.g. to seed first-run sample data.
func WithDefaultState(st state.AppState) Option {
	return func(s *Store) { s.current = st }
}

// New constructs a store, restoring the prior snapshot through the
// codec. An absent or corrupt snapshot falls back to the default state
// (empty collections, nothing selected, not streaming, dark mode
// matching the terminal background); corruption is reported to the
// error sink but never fails construction.
func New(codec Codec, opts ...Option) *Store {
	s := &Store{
		reducer: state.NewReducer(),
		codec:   codec,
		errSink: func(err error) { log.Printf("driftchat: %v", err) },
		current: defaultState(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if codec != nil {
		snap, err := codec.Load()
		switch {
		case err == nil:
			s.current = snap
		case errors.Is(err, storage.ErrSnapshotNotFound):
			// First run: keep the default state.
		default:
			// Corrupt or unreadable snapshot. Start fresh.
			s.errSink(err)
		}
	}

	return s
}

// defaultState is the documented fallback snapshot, with DarkMode
// seeded from the host terminal's background.
func defaultState() state.AppState {
	st := state.NewAppState()
	st.DarkMode = termenv.HasDarkBackground()
	return st
}

// =============================================================================
// PUBLIC API
// =============================================================================

// State returns the current snapshot. Snapshots are immutable values;
// the caller may hold one as long as it likes.
func (s *Store) State() state.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Dispatch applies one action: reduce, persist, swap, notify. It is
// strictly ordered: each call produces exactly one persisted snapshot
// and one notification round, in invocation order.
//
// Persistence is best-effort. A codec failure goes to the error sink
// and the in-memory update proceeds; it is never rolled back.
func (s *Store) Dispatch(action state.Action) {
	s.mu.Lock()
	next := s.reducer.Reduce(s.current, action)
	s.current = next
	s.mu.Unlock()

	if s.codec != nil {
		if err := s.codec.Save(next); err != nil {
			s.errSink(err)
		}
	}

	for _, sub := range s.snapshotSubs() {
		sub.fn(next)
	}
}

// Subscribe registers a listener for every future snapshot. The
// returned function unregisters it; calling it more than once is
// harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Close drops all subscribers. The codec's underlying storage is owned
// by the caller and closed separately.
func (s *Store) Close() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = nil
}

// snapshotSubs copies the subscriber list so notification survives
// listeners that subscribe or unsubscribe mid-round.
func (s *Store) snapshotSubs() []subscription {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	out := make([]subscription, len(s.subs))
	copy(out, s.subs)
	return out
}
