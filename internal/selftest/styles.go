// ============================================================================
// elm - Errors, Logging and Allocation
// ============================================================================
//
// Package:     selftest
// Description: Styles for the self-test report
// Author:      msto63
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package selftest

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color Palette
var (
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
)

// styles holds the report styles bound to one output. The renderer drops
// colours when the output is not a terminal.
type styles struct {
	passed  lipgloss.Style
	failed  lipgloss.Style
	summary lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		passed: r.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		failed: r.NewStyle().
			Foreground(ColorError).
			Bold(true),
		summary: r.NewStyle().
			Foreground(ColorMuted),
	}
}
