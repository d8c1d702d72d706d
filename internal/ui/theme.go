// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the interactive terminal interface for driftchat.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// PALETTE
// =============================================================================

// palette holds the raw colors for one background mode.
type palette struct {
	Accent     lipgloss.Color // selections, brand
	AccentAlt  lipgloss.Color // user highlights
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
	Text       lipgloss.Color
	TextDim    lipgloss.Color
	TextMuted  lipgloss.Color
	Surface    lipgloss.Color // status bar background
	Border     lipgloss.Color
}

var darkPalette = palette{
	Accent:    lipgloss.Color("#A78BFA"),
	AccentAlt: lipgloss.Color("#22D3EE"),
	Success:   lipgloss.Color("#34D399"),
	Warning:   lipgloss.Color("#FBBF24"),
	Danger:    lipgloss.Color("#FB7185"),
	Text:      lipgloss.Color("#CDD6F4"),
	TextDim:   lipgloss.Color("#A6ADC8"),
	TextMuted: lipgloss.Color("#6C7086"),
	Surface:   lipgloss.Color("#181825"),
	Border:    lipgloss.Color("#313244"),
}

var lightPalette = palette{
	Accent:    lipgloss.Color("#7C3AED"),
	AccentAlt: lipgloss.Color("#0891B2"),
	Success:   lipgloss.Color("#059669"),
	Warning:   lipgloss.Color("#D97706"),
	Danger:    lipgloss.Color("#E11D48"),
	Text:      lipgloss.Color("#1F2937"),
	TextDim:   lipgloss.Color("#6B7280"),
	TextMuted: lipgloss.Color("#9CA3AF"),
	Surface:   lipgloss.Color("#F5F5F5"),
	Border:    lipgloss.Color("#E5E5E5"),
}

// =============================================================================
// THEME
// =============================================================================

// Theme holds the styled components for the application. The dark-mode
// flag lives in the persisted state, so the theme is rebuilt when it
// flips rather than relying on terminal autodetection alone.
type Theme struct {
	IsDark bool

	// Sidebar
	Sidebar          lipgloss.Style
	SidebarTitle     lipgloss.Style
	FolderLine       lipgloss.Style
	ChatLine         lipgloss.Style
	SelectedLine     lipgloss.Style
	SidebarCount     lipgloss.Style

	// Conversation
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	SystemLabel    lipgloss.Style
	Timestamp      lipgloss.Style
	Attachment     lipgloss.Style

	// Input area
	InputBox    lipgloss.Style
	InputPrompt lipgloss.Style
	Pending     lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style
	StatusState  lipgloss.Style
	StatusError  lipgloss.Style
	StatusNotice lipgloss.Style

	// Misc
	Spinner lipgloss.Style
	Welcome lipgloss.Style
	Muted   lipgloss.Style
}

// NewTheme builds the theme for one background mode.
func NewTheme(isDark bool) *Theme {
	p := lightPalette
	if isDark {
		p = darkPalette
	}

	t := &Theme{IsDark: isDark}

	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(p.Border).
		PaddingRight(1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.FolderLine = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextDim)

	t.ChatLine = lipgloss.NewStyle().
		Foreground(p.Text)

	t.SelectedLine = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.AccentAlt)

	t.SidebarCount = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.AccentAlt)

	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.SystemLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Warning)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.Attachment = lipgloss.NewStyle().
		Foreground(p.TextDim).
		Italic(true)

	t.InputBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Border).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.AccentAlt)

	t.Pending = lipgloss.NewStyle().
		Foreground(p.Warning).
		Italic(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.TextDim).
		Padding(0, 1)

	t.StatusKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.AccentAlt)

	t.StatusState = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Success)

	t.StatusError = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Danger)

	t.StatusNotice = lipgloss.NewStyle().
		Foreground(p.Warning)

	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Accent)

	t.Welcome = lipgloss.NewStyle().
		Foreground(p.TextDim).
		Padding(1, 2)

	t.Muted = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	return t
}

// GlamourStyle returns the glamour standard style name matching the
// theme.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}
