// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for driftchat.
package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG HOT RELOAD
// =============================================================================

// Watcher reloads the config file when it changes on disk and hands
// the fresh Config to a callback. Reload failures are ignored: the
// last good config stays in effect until the file parses again.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	onLoad  func(*Config)

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

// NewWatcher watches path and calls onLoad with each successfully
// reloaded config. The parent directory is watched rather than the
// file itself so editors that replace-by-rename still trigger.
func NewWatcher(path string, onLoad func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    path,
		onLoad:  onLoad,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// loop processes filesystem events until Close.
func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cfg, err := LoadFromPath(w.path)
			if err != nil {
				continue // keep last good config
			}
			w.onLoad(cfg)
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	err := w.watcher.Close()
	<-w.done
	return err
}
