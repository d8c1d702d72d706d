// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package files validates and stages message attachments.
//
// The validator is a stateless gate the UI runs before dispatching
// AddFileToMessage: MIME type against a small allow-list and size
// against a 10 MiB ceiling. Staging simulates the upload a real
// deployment would perform and produces the attachment payload for the
// reducer. A rejected file surfaces a ValidationError to the user and
// leaves the message untouched.
package files
