// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for ccpm's terminal UI. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Accent is the primary highlight color: the header title, list
	// borders, and modal borders.
	Accent lipgloss.Color

	// Enabled/disabled status colors.
	StatusEnabled  lipgloss.Color
	StatusDisabled lipgloss.Color

	// Scope badge colors. ScopeOtherProject marks project- and
	// local-scope installs that belong to a different project.
	ScopeUser         lipgloss.Color
	ScopeProject      lipgloss.Color
	ScopeLocal        lipgloss.Color
	ScopeOtherProject lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Search input highlighting.
	SearchForeground lipgloss.Color

	// Status bar messages.
	MessageInfo  lipgloss.Color
	MessageError lipgloss.Color
}

// ScopeColor returns the badge color for an install scope badge,
// accounting for installs bound to a different project.
func (theme Theme) ScopeColor(scope string, currentProject bool) lipgloss.Color {
	if !currentProject && scope != "user" {
		return theme.ScopeOtherProject
	}
	switch scope {
	case "project":
		return theme.ScopeProject
	case "local":
		return theme.ScopeLocal
	default:
		return theme.ScopeUser
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	Accent: lipgloss.Color("51"), // cyan

	StatusEnabled:  lipgloss.Color("114"), // green
	StatusDisabled: lipgloss.Color("240"), // dim gray

	ScopeUser:         lipgloss.Color("75"),  // blue
	ScopeProject:      lipgloss.Color("141"), // light purple
	ScopeLocal:        lipgloss.Color("213"), // magenta
	ScopeOtherProject: lipgloss.Color("220"), // yellow

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	SearchForeground: lipgloss.Color("213"), // magenta

	MessageInfo:  lipgloss.Color("114"), // green
	MessageError: lipgloss.Color("196"), // red
}
