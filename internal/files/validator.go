// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package files validates and stages message attachments.
package files

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/driftchat-tui/internal/state"
)

// MaxFileSize is the attachment size ceiling: 10 MiB.
const MaxFileSize = 10 * 1024 * 1024

// allowedTypes is the MIME allow-list for attachments.
var allowedTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a rejected attachment. The message is
// user-facing; the message being composed is unaffected.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches any ValidationError.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// Meta is the attachment metadata under validation: what the UI knows
// about a file before it enters a message.
type Meta struct {
	Name string
	Type string // MIME type
	Size int64  // bytes
}

// Validate gates an attachment before it enters a message: MIME type
// against the allow-list (PDF, JPEG, PNG, DOCX) and size against
// MaxFileSize. Returns nil when the file is acceptable.
func Validate(meta Meta) error {
	if !allowedTypes[meta.Type] {
		return &ValidationError{
			Message: "Invalid file type. Allowed types: PDF, JPEG, PNG, DOCX",
		}
	}
	if meta.Size > MaxFileSize {
		return &ValidationError{
			Message: "File too large. Maximum size: 10MB",
		}
	}
	return nil
}

// =============================================================================
// STAGING (SIMULATED UPLOAD)
// =============================================================================

// uploadDelay simulates the latency of staging a file.
const uploadDelay = 500 * time.Millisecond

// Stage simulates uploading a validated file and returns the
// attachment payload for AddFileToMessage. The URL is a local pseudo
// reference; a real deployment would return server storage location.
func Stage(meta Meta) (state.NewFile, error) {
	if err := Validate(meta); err != nil {
		return state.NewFile{}, err
	}

	time.Sleep(uploadDelay)

	return state.NewFile{
		Name: meta.Name,
		Type: meta.Type,
		Size: meta.Size,
		URL:  "local://" + uuid.NewString(),
	}, nil
}

// =============================================================================
// DISPLAY HELPERS
// =============================================================================

// Category buckets a MIME type for icon selection.
type Category string

const (
	CategoryImage    Category = "image"
	CategoryDocument Category = "document"
	CategoryUnknown  Category = "unknown"
)

// Categorize returns the display category for a MIME type.
func Categorize(mimeType string) Category {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return CategoryImage
	case mimeType == "application/pdf",
		mimeType == "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return CategoryDocument
	default:
		return CategoryUnknown
	}
}

// FormatSize renders a byte count for display: "512 B", "3.4 KB",
// "1.2 MB".
func FormatSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return strconv.FormatInt(bytes, 10) + " B"
	case bytes < 1024*1024:
		return strconv.FormatFloat(float64(bytes)/1024, 'f', 1, 64) + " KB"
	default:
		return strconv.FormatFloat(float64(bytes)/(1024*1024), 'f', 1, 64) + " MB"
	}
}
