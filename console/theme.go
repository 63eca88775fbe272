// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package console

import "github.com/charmbracelet/lipgloss"

// Theme is the set of styles the console renders with. The zero value
// renders everything as plain text.
type Theme struct {
	// Nick styles the matched entity's nickname.
	Nick lipgloss.Style
	// Detail styles the secondary fields of a match line.
	Detail lipgloss.Style
	// Summary styles the end-of-search summary line.
	Summary lipgloss.Style
	// Error styles failure lines.
	Error lipgloss.Style
	// Header styles the stats and help block headers.
	Header lipgloss.Style
}

// DefaultTheme returns the standard console colors.
func DefaultTheme() Theme {
	return Theme{
		Nick:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Summary: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Header:  lipgloss.NewStyle().Bold(true).Underline(true),
	}
}
