// File: styles.go
// Title: TUI Styles
// Description: Colors and lipgloss styles of the interactive try mode.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	// Locale selector
	LocaleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			PaddingRight(1)

	SelectedLocaleStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				PaddingRight(1)

	// Outcome styles
	ResultStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	LocalTimeStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	ErrorCodeStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError)

	TokenStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	HistoryStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)
