// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stream provides the simulated streaming channel to the assistant backend.
package stream

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/driftchat-tui/internal/state"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ChannelError represents a misuse of the streaming channel. These are
// surfaced to the caller for display; none of them crash the process.
type ChannelError struct {
	Type    ErrorType
	Message string
}

func (e *ChannelError) Error() string {
	return e.Message
}

// Is matches channel errors by type.
func (e *ChannelError) Is(target error) bool {
	t, ok := target.(*ChannelError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// ErrorType categorizes channel errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotConnected
	ErrTypeAlreadyStreaming
	ErrTypeAlreadyConnected
)

// Sentinel errors for easy checking.
var (
	ErrNotConnected     = &ChannelError{Type: ErrTypeNotConnected, Message: "channel is not connected"}
	ErrAlreadyStreaming = &ChannelError{Type: ErrTypeAlreadyStreaming, Message: "a stream is already in flight"}
	ErrAlreadyConnected = &ChannelError{Type: ErrTypeAlreadyConnected, Message: "channel is already connected"}
)

// =============================================================================
// CONNECTION STATE
// =============================================================================

// State is the channel's connection state.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Streaming
	Idle
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Streaming:
		return "streaming"
	case Idle:
		return "idle"
	default:
		return "unknown"
	}
}

// =============================================================================
// TOKENS AND FRAGMENTS
// =============================================================================

// StreamToken correlates fragments to one SendMessage call. Listeners
// compare tokens by value and discard anything that does not match
// their latest send.
type StreamToken string

// ListenerToken correlates a listener registration. A fragment
// arriving after the listener was replaced carries a token the new
// listener never saw, so it gets discarded.
type ListenerToken string

// Fragment is one incremental piece of assistant output. The final
// fragment of a stream has Done set and empty content.
type Fragment struct {
	Token   StreamToken
	Content string
	Done    bool
}

// Listener receives fragments for the active stream.
type Listener func(Fragment)

// =============================================================================
// CONFIG
// =============================================================================

// Config holds the simulation timings.
type Config struct {
	// ConnectDelay is how long Connect pretends to take.
	ConnectDelay time.Duration

	// FragmentInterval is the fixed delay between fragments.
	FragmentInterval time.Duration
}

// DefaultConfig returns timings that feel like a real backend without
// making tests slow.
func DefaultConfig() Config {
	return Config{
		ConnectDelay:     500 * time.Millisecond,
		FragmentInterval: 40 * time.Millisecond,
	}
}

// =============================================================================
// CHANNEL
// =============================================================================

// Channel models one logical connection to an assistant backend. It
// produces canned replies token by token on a timer, supports
// cancellation, and reports completion to the single registered
// listener.
//
// The lifecycle is Disconnected -> Connecting -> Connected ->
// {Streaming, Idle} -> Disconnected. Connect on a connected channel is
// a strict error, not idempotent.
type Channel struct {
	cfg  Config
	pool *ResponsePool

	mu            sync.Mutex
	st            State
	listener      Listener
	listenerToken ListenerToken
	activeToken   StreamToken
	cancel        context.CancelFunc
}

// NewChannel creates a disconnected channel with default timings.
func NewChannel() *Channel {
	return NewChannelWithConfig(DefaultConfig())
}

// NewChannelWithConfig creates a disconnected channel with custom
// timings. Zero values fall back to defaults.
func NewChannelWithConfig(cfg Config) *Channel {
	def := DefaultConfig()
	if cfg.ConnectDelay <= 0 {
		cfg.ConnectDelay = def.ConnectDelay
	}
	if cfg.FragmentInterval <= 0 {
		cfg.FragmentInterval = def.FragmentInterval
	}
	return &Channel{
		cfg:  cfg,
		pool: NewResponsePool(),
	}
}

// State returns the current connection state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st
}

// Connect establishes the simulated connection. It blocks for the
// configured delay (or until ctx is cancelled) and fails with
// ErrAlreadyConnected when the channel is not disconnected. A Close
// during the handshake wins: Connect leaves the channel disconnected
// and fails with ErrNotConnected.
func (c *Channel) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.st != Disconnected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.st = Connecting
	c.mu.Unlock()

	select {
	case <-time.After(c.cfg.ConnectDelay):
	case <-ctx.Done():
		c.mu.Lock()
		if c.st == Connecting {
			c.st = Disconnected
		}
		c.mu.Unlock()
		return ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Close may have torn the channel down while we slept; only the
	// Connecting state may complete the handshake.
	if c.st != Connecting {
		return ErrNotConnected
	}
	c.st = Connected
	return nil
}

// RegisterListener installs the listener that receives fragments.
// There is exactly one listener slot; registering silently discards
// the previous listener. The returned token identifies this
// registration.
func (c *Channel) RegisterListener(fn Listener) ListenerToken {
	token := ListenerToken(uuid.NewString())
	c.mu.Lock()
	c.listener = fn
	c.listenerToken = token
	c.mu.Unlock()
	return token
}

// SendMessage begins streaming a simulated reply to prompt. The agent
// ID picks nothing real; it only keys the canned response pool the way
// a backend would see the agent's persona.
//
// Fails with ErrNotConnected before Connect and ErrAlreadyStreaming
// while a stream is in flight; the caller serializes sends, the
// channel does not queue.
func (c *Channel) SendMessage(prompt string, agentID state.AgentID) (StreamToken, error) {
	c.mu.Lock()
	switch c.st {
	case Disconnected, Connecting:
		c.mu.Unlock()
		return "", ErrNotConnected
	case Streaming:
		c.mu.Unlock()
		return "", ErrAlreadyStreaming
	}

	token := StreamToken(uuid.NewString())
	ctx, cancel := context.WithCancel(context.Background())
	c.activeToken = token
	c.cancel = cancel
	c.st = Streaming
	c.mu.Unlock()

	fragments := c.pool.Fragments(prompt)
	go c.run(ctx, token, fragments)

	return token, nil
}

// StopStreaming cancels the in-flight stream immediately. The active
// token is invalidated under the same lock the delivery path checks,
// so even a fragment already scheduled on the timer is suppressed.
// No-op when nothing is streaming.
func (c *Channel) StopStreaming() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st != Streaming {
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.activeToken = ""
	c.st = Idle
}

// Close tears the connection down from any state, cancelling an
// in-flight stream first.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.activeToken = ""
	c.st = Disconnected
}

// =============================================================================
// FRAGMENT GENERATION
// =============================================================================

// run paces fragments out on the limiter and hands each to the
// delivery path. It lives on its own goroutine; all shared state is
// touched through deliver, which re-checks the token under the lock.
func (c *Channel) run(ctx context.Context, token StreamToken, fragments []string) {
	limiter := rate.NewLimiter(rate.Every(c.cfg.FragmentInterval), 1)

	for _, frag := range fragments {
		if err := limiter.Wait(ctx); err != nil {
			return // cancelled
		}
		if !c.deliver(token, frag, false) {
			return // superseded
		}
	}

	// End of stream: final Done fragment, Streaming -> Idle.
	c.deliver(token, "", true)
}

// deliver hands one fragment to the registered listener, unless the
// token has been invalidated. Returns false when the stream was
// cancelled or superseded. The token comparison and the state
// transition happen under the channel lock; the listener itself runs
// outside it.
func (c *Channel) deliver(token StreamToken, content string, done bool) bool {
	c.mu.Lock()
	if c.activeToken != token {
		c.mu.Unlock()
		return false
	}
	fn := c.listener
	if done {
		c.activeToken = ""
		c.cancel = nil
		c.st = Idle
	}
	c.mu.Unlock()

	if fn != nil {
		fn(Fragment{Token: token, Content: content, Done: done})
	}
	return true
}
