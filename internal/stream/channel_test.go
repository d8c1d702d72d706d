// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stream

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fastConfig keeps the simulation timings short enough for tests.
func fastConfig() Config {
	return Config{
		ConnectDelay:     time.Millisecond,
		FragmentInterval: time.Millisecond,
	}
}

// collector gathers delivered fragments behind a mutex and closes done
// once the final fragment arrives.
type collector struct {
	mu    sync.Mutex
	frags []Fragment
	done  chan struct{}
}

func newCollector() *collector {
	return &collector{done: make(chan struct{})}
}

func (c *collector) listen(f Fragment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frags = append(c.frags, f)
	if f.Done {
		close(c.done)
	}
}

func (c *collector) wait(t *testing.T) []Fragment {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not complete in time")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Fragment, len(c.frags))
	copy(out, c.frags)
	return out
}

func (c *collector) snapshot() []Fragment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Fragment, len(c.frags))
	copy(out, c.frags)
	return out
}

// connectedChannel returns a channel already through its handshake.
func connectedChannel(t *testing.T) *Channel {
	t.Helper()
	ch := NewChannelWithConfig(fastConfig())
	require.NoError(t, ch.Connect(context.Background()))
	t.Cleanup(ch.Close)
	return ch
}

// TestChannel_Lifecycle tests the documented state transitions:
// Disconnected -> Connecting -> Connected -> Streaming -> Idle ->
// Disconnected.
func TestChannel_Lifecycle(t *testing.T) {
	ch := NewChannelWithConfig(fastConfig())
	require.Equal(t, Disconnected, ch.State())

	require.NoError(t, ch.Connect(context.Background()))
	require.Equal(t, Connected, ch.State())

	col := newCollector()
	ch.RegisterListener(col.listen)

	_, err := ch.SendMessage("hello", "")
	require.NoError(t, err)
	require.Equal(t, Streaming, ch.State())

	col.wait(t)
	require.Equal(t, Idle, ch.State())

	ch.Close()
	require.Equal(t, Disconnected, ch.State())
}

// TestChannel_ConnectTwice tests that Connect is a strict error on an
// already-connected channel, not idempotent.
func TestChannel_ConnectTwice(t *testing.T) {
	ch := connectedChannel(t)

	err := ch.Connect(context.Background())
	require.ErrorIs(t, err, ErrAlreadyConnected)
	require.Equal(t, Connected, ch.State())
}

// TestChannel_ConnectCancelled tests that cancelling the handshake
// leaves the channel disconnected.
func TestChannel_ConnectCancelled(t *testing.T) {
	ch := NewChannelWithConfig(Config{
		ConnectDelay:     time.Minute,
		FragmentInterval: time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ch.Connect(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, Disconnected, ch.State())

	// A fresh Connect afterwards works.
	ch.cfg.ConnectDelay = time.Millisecond
	require.NoError(t, ch.Connect(context.Background()))
}

// TestChannel_CloseDuringConnect tests that Close wins over an
// in-flight handshake: the channel stays disconnected and Connect
// reports the teardown instead of silently reconnecting.
func TestChannel_CloseDuringConnect(t *testing.T) {
	ch := NewChannelWithConfig(Config{
		ConnectDelay:     50 * time.Millisecond,
		FragmentInterval: time.Millisecond,
	})

	errc := make(chan error, 1)
	go func() { errc <- ch.Connect(context.Background()) }()

	// Let the handshake start, then tear the channel down under it.
	require.Eventually(t, func() bool {
		return ch.State() == Connecting
	}, time.Second, time.Millisecond)
	ch.Close()

	select {
	case err := <-errc:
		require.ErrorIs(t, err, ErrNotConnected)
	case <-time.After(5 * time.Second):
		t.Fatal("Connect did not return")
	}
	require.Equal(t, Disconnected, ch.State())

	// The channel is reusable after the aborted handshake.
	ch.cfg.ConnectDelay = time.Millisecond
	require.NoError(t, ch.Connect(context.Background()))
	require.Equal(t, Connected, ch.State())
	ch.Close()
}

// TestChannel_SendBeforeConnect tests ErrNotConnected on a fresh
// channel.
func TestChannel_SendBeforeConnect(t *testing.T) {
	ch := NewChannelWithConfig(fastConfig())

	_, err := ch.SendMessage("hello", "")
	require.ErrorIs(t, err, ErrNotConnected)
}

// TestChannel_SendWhileStreaming tests that a second send during an
// in-flight stream is rejected; the caller stops the first stream
// explicitly before sending again.
func TestChannel_SendWhileStreaming(t *testing.T) {
	ch := connectedChannel(t)
	col := newCollector()
	ch.RegisterListener(col.listen)

	first, err := ch.SendMessage("a long general prompt", "")
	require.NoError(t, err)

	_, err = ch.SendMessage("another prompt", "")
	require.ErrorIs(t, err, ErrAlreadyStreaming)

	// The rejected send must not disturb the first stream.
	frags := col.wait(t)
	for _, f := range frags {
		require.Equal(t, first, f.Token)
	}
}

// TestChannel_FragmentsReassemble tests ordering and exact reassembly:
// concatenating the delivered fragments reproduces the full canned
// reply, and the final fragment is the Done marker.
func TestChannel_FragmentsReassemble(t *testing.T) {
	ch := connectedChannel(t)
	col := newCollector()
	ch.RegisterListener(col.listen)

	token, err := ch.SendMessage("hello", "")
	require.NoError(t, err)

	frags := col.wait(t)
	require.NotEmpty(t, frags)

	last := frags[len(frags)-1]
	require.True(t, last.Done, "final fragment should carry Done")
	require.Empty(t, last.Content, "final fragment should carry no content")

	var sb strings.Builder
	for _, f := range frags {
		require.Equal(t, token, f.Token, "every fragment carries the stream token")
		if !f.Done {
			require.NotEmpty(t, f.Content, "non-final fragments carry content")
		}
		sb.WriteString(f.Content)
	}
	require.Equal(t, NewResponsePool().Pick("hello"), sb.String())
}

// TestChannel_StopStreaming tests cancellation: once StopStreaming
// returns, no further fragment for the cancelled token is delivered,
// including ones already scheduled on the timer.
func TestChannel_StopStreaming(t *testing.T) {
	ch := connectedChannel(t)
	col := newCollector()
	ch.RegisterListener(col.listen)

	_, err := ch.SendMessage("tell me about the market outlook", "")
	require.NoError(t, err)

	// Let a few fragments through, then cut it off.
	time.Sleep(5 * time.Millisecond)
	ch.StopStreaming()
	require.Equal(t, Idle, ch.State())

	seen := len(col.snapshot())
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, seen, len(col.snapshot()), "fragments delivered after StopStreaming")

	for _, f := range col.snapshot() {
		require.False(t, f.Done, "a cancelled stream never reports completion")
	}
}

// TestChannel_StopStreamingIdle tests that stopping with nothing in
// flight is a no-op.
func TestChannel_StopStreamingIdle(t *testing.T) {
	ch := connectedChannel(t)

	ch.StopStreaming()
	require.Equal(t, Connected, ch.State())
}

// TestChannel_NewStreamAfterStop tests the caller-side supersede flow:
// stop the first stream, send again, and only the second token's
// fragments arrive from then on.
func TestChannel_NewStreamAfterStop(t *testing.T) {
	ch := connectedChannel(t)
	col := newCollector()
	ch.RegisterListener(col.listen)

	first, err := ch.SendMessage("tell me about the market outlook", "")
	require.NoError(t, err)

	time.Sleep(3 * time.Millisecond)
	ch.StopStreaming()

	second, err := ch.SendMessage("hello", "")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	frags := col.wait(t)

	// Everything after the stop carries the second token; a fragment of
	// the first stream may have landed before the stop, never after.
	sawSecond := false
	for _, f := range frags {
		if f.Token == second {
			sawSecond = true
		} else if sawSecond {
			t.Fatalf("fragment for superseded token %q arrived after the new stream began", f.Token)
		}
	}
	require.True(t, sawSecond)
}

// TestChannel_CloseDuringStream tests that Close cancels the in-flight
// stream and disconnects.
func TestChannel_CloseDuringStream(t *testing.T) {
	ch := NewChannelWithConfig(fastConfig())
	require.NoError(t, ch.Connect(context.Background()))

	col := newCollector()
	ch.RegisterListener(col.listen)
	_, err := ch.SendMessage("tell me about the market outlook", "")
	require.NoError(t, err)

	ch.Close()
	require.Equal(t, Disconnected, ch.State())

	seen := len(col.snapshot())
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, seen, len(col.snapshot()), "fragments delivered after Close")

	// Sending on a closed channel fails.
	_, err = ch.SendMessage("hello", "")
	require.ErrorIs(t, err, ErrNotConnected)
}

// TestChannel_ListenerReplacement tests the single listener slot: after
// re-registering, the old listener receives nothing further.
func TestChannel_ListenerReplacement(t *testing.T) {
	ch := connectedChannel(t)

	old := newCollector()
	oldToken := ch.RegisterListener(old.listen)

	replacement := newCollector()
	newToken := ch.RegisterListener(replacement.listen)
	require.NotEqual(t, oldToken, newToken)

	_, err := ch.SendMessage("hello", "")
	require.NoError(t, err)

	replacement.wait(t)
	require.Empty(t, old.snapshot(), "replaced listener must not receive fragments")
}

// TestChannel_ErrorMatching tests the error type matching used by
// callers.
func TestChannel_ErrorMatching(t *testing.T) {
	require.ErrorIs(t, ErrNotConnected, &ChannelError{Type: ErrTypeNotConnected})
	require.ErrorIs(t, ErrAlreadyStreaming, &ChannelError{Type: ErrTypeAlreadyStreaming})
	require.False(t, errors.Is(ErrNotConnected, ErrAlreadyStreaming))
	require.Equal(t, "channel is not connected", ErrNotConnected.Error())
}

// TestState_String tests the state names used in logs.
func TestState_String(t *testing.T) {
	tests := []struct {
		st   State
		want string
	}{
		{Disconnected, "disconnected"},
		{Connecting, "connecting"},
		{Connected, "connected"},
		{Streaming, "streaming"},
		{Idle, "idle"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.st.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.st, got, tt.want)
		}
	}
}
