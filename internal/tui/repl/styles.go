// ============================================================================
// mini - Formula Engine Tools
// ============================================================================
//
// Package:     repl
// Description: Lipgloss styles for the formula REPL
// Author:      msto63
// Created:     2025-10-18
// License:     MIT
// ============================================================================

package repl

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/substance/expression/foundation/formula/engine"
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
			Foreground(colorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	CellIDStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Bold(true)

	SourceStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	ReadyStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	PendingStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// StatusStyle returns the style for a cell status
func StatusStyle(status engine.Status) lipgloss.Style {
	switch status {
	case engine.StatusReady:
		return ReadyStyle
	case engine.StatusError:
		return ErrorStyle
	default:
		return PendingStyle
	}
}
