// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stream provides the simulated streaming channel to the assistant backend.
package stream

import (
	"hash/fnv"
	"strings"
)

// =============================================================================
// CANNED RESPONSE POOL
// =============================================================================

// ResponsePool picks a reply for a prompt. Selection is keyed loosely
// by prompt content: a few topic keywords map to themed replies, and
// everything else hashes deterministically into a general pool, so the
// same prompt always streams the same text.
type ResponsePool struct {
	general []string
}

// NewResponsePool returns the built-in pool.
func NewResponsePool() *ResponsePool {
	return &ResponsePool{general: generalResponses}
}

// Pick returns the full reply text for a prompt.
func (p *ResponsePool) Pick(prompt string) string {
	lower := strings.ToLower(prompt)

	switch {
	case containsAny(lower, "hello", "hi ", "hey"):
		return greetingResponse
	case containsAny(lower, "market", "stock", "invest", "trading"):
		return marketResponse
	case containsAny(lower, "code", "program", "function", "bug", "debug"):
		return codeResponse
	case containsAny(lower, "file", "attach", "upload", "document"):
		return fileResponse
	}

	h := fnv.New32a()
	h.Write([]byte(prompt))
	return p.general[int(h.Sum32())%len(p.general)]
}

// Fragments returns the reply for a prompt split into streamable
// pieces: word-sized tokens with their trailing whitespace attached,
// so concatenating them reproduces the reply exactly.
func (p *ResponsePool) Fragments(prompt string) []string {
	return splitFragments(p.Pick(prompt))
}

// splitFragments cuts text after each run of whitespace. The cuts are
// purely cosmetic; any segmentation that concatenates back to the
// original would satisfy the stream contract.
func splitFragments(text string) []string {
	var out []string
	start := 0
	inSpace := false
	for i, r := range text {
		isSpace := r == ' ' || r == '\n' || r == '\t'
		if inSpace && !isSpace {
			out = append(out, text[start:i])
			start = i
		}
		inSpace = isSpace
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// =============================================================================
// CANNED TEXT
// =============================================================================

const greetingResponse = "Hello! I'm your AI assistant. I can help you analyze data, " +
	"answer questions, work through code, or just talk something over. " +
	"What would you like to do today?"

const marketResponse = "Based on recent data, tech stocks are showing mixed performance. " +
	"Large caps have demonstrated resilience while smaller firms see more volatility.\n\n" +
	"Key observations:\n\n" +
	"1. **Cloud services**: infrastructure providers are outperforming the broader market\n" +
	"2. **AI sector**: firms with strong AI capabilities are attracting significant investment\n" +
	"3. **Semiconductors**: supply chain pressure now, solid long-term growth potential\n\n" +
	"Would you like me to focus on any specific segment for a more detailed analysis?"

const codeResponse = "Happy to help with that. A few things worth checking first:\n\n" +
	"1. Reproduce the problem with the smallest possible input\n" +
	"2. Read the error message from the first line, not the last\n" +
	"3. Check the boundaries: empty input, one element, the maximum size\n\n" +
	"```\n// a minimal failing case beats an hour of guessing\n```\n\n" +
	"Paste the relevant snippet and I'll take a closer look."

const fileResponse = "I can work with attached files. Supported formats are PDF, JPEG, " +
	"PNG, and DOCX, up to 10 MiB each. Attach one to your message and tell me what " +
	"you'd like me to do with it."

var generalResponses = []string{
	"That's an interesting question. Let me break it down.\n\n" +
		"There are usually two angles worth separating: what the situation is, and what " +
		"you can actually influence. Start by writing down what you know for certain, " +
		"then what you're assuming. The gap between those two lists is where the real " +
		"work is.\n\nWant me to go deeper on any part of this?",

	"Here's how I'd think about it.\n\n" +
		"First, clarify the outcome you want in one sentence. Second, list the " +
		"constraints you can't change. Third, generate options that fit inside those " +
		"constraints rather than fighting them.\n\n" +
		"If you give me more context I can make this concrete.",

	"Good question. The short answer is: it depends on what you're optimizing for.\n\n" +
		"If speed matters most, take the simplest path that works and revisit later. " +
		"If correctness matters most, invest in checking your assumptions up front. " +
		"Most regret comes from not deciding which one you were doing.\n\n" +
		"Tell me more and I'll tailor the answer.",
}
