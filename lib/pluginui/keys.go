// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package pluginui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the plugin manager TUI.
type KeyMap struct {
	// Navigation.
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Plugin actions.
	Toggle     key.Binding // Flip the effective state in the install scope.
	Detail     key.Binding // Open the detail modal.
	Enable     key.Binding
	Disable    key.Binding
	Remove     key.Binding // Opens the remove confirmation dialog.
	AutoUpdate key.Binding // Toggle auto-update for the plugin's marketplace.

	// Filtering.
	CycleScope key.Binding
	Search     key.Binding

	// Misc.
	Reload key.Binding
	Help   key.Binding
	Cancel key.Binding // Dismiss overlay / clear search.
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "toggle"),
	),
	Detail: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "details"),
	),
	Enable: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "enable"),
	),
	Disable: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "disable"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove"),
	),
	AutoUpdate: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "auto-update"),
	),
	CycleScope: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "scope"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
