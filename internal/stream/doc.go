// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stream provides the simulated streaming channel to the assistant backend.
//
// The Channel stands in for a real LLM connection: it accepts a
// prompt, produces a finite sequence of text fragments on a timer, and
// reports completion to a single registered listener. There is no
// network underneath; the replies come from a canned pool keyed
// loosely by prompt content.
//
// # Cancellation Protocol
//
// Every SendMessage returns a StreamToken and every fragment carries
// one. Cancellation (StopStreaming, Close) invalidates the active
// token under the same lock the delivery path checks it, so a fragment
// that was already sitting on the timer when the stream was cancelled
// is still suppressed. Listeners apply the same rule from their side:
// discard any fragment whose token is not the one returned by their
// latest send.
//
// # Key Types
//
//   - Channel: the connection state machine
//   - StreamToken, ListenerToken: value-compared correlation tokens
//   - Fragment: one piece of streamed text; Done marks end of stream
//   - ResponsePool: canned reply selection
//
// # Usage
//
//	ch := stream.NewChannel()
//	if err := ch.Connect(ctx); err != nil { ... }
//	ch.RegisterListener(func(f stream.Fragment) { ... })
//	token, err := ch.SendMessage("hello", "")
package stream
