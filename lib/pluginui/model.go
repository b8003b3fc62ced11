// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package pluginui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ccpm-tools/ccpm/lib/config"
	"github.com/ccpm-tools/ccpm/lib/plugin"
	"github.com/ccpm-tools/ccpm/lib/tui"
)

// Mode identifies which input layer is active. Overlay modes capture
// all keyboard input until dismissed.
type Mode int

const (
	// ModeList is the normal state: keys navigate and mutate the list.
	ModeList Mode = iota
	// ModeSearch routes keystrokes to the search input.
	ModeSearch
	// ModeHelp shows the key binding overlay.
	ModeHelp
	// ModeConfirm shows the remove confirmation dialog.
	ModeConfirm
	// ModeDetail shows the full-detail modal for the selected plugin.
	ModeDetail
)

// statusMessage is a transient notice shown in the footer after an
// action.
type statusMessage struct {
	text    string
	isError bool
}

// Model is the top-level bubbletea model for the plugin manager.
type Model struct {
	discovery *plugin.Discovery
	service   *plugin.Service
	theme     tui.Theme
	keys      KeyMap
	prefs     config.Config

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// All discovered plugins, and the indexes visible after the scope
	// and search filters.
	plugins []*plugin.Plugin
	visible []int

	cursor       int
	scrollOffset int

	scopeFilter plugin.ScopeFilter
	search      textinput.Model

	mode    Mode
	message *statusMessage
}

// NewModel creates a Model and runs an initial discovery pass.
func NewModel(env plugin.Environment, logger *slog.Logger, prefs config.Config) Model {
	discovery := plugin.NewDiscovery(env, logger)

	search := textinput.New()
	search.Prompt = ""
	search.CharLimit = 64

	model := Model{
		discovery:   discovery,
		service:     plugin.NewService(env, logger),
		theme:       themeFromPrefs(prefs),
		keys:        DefaultKeyMap,
		prefs:       prefs,
		plugins:     discovery.DiscoverAll(),
		scopeFilter: plugin.FilterAll,
		search:      search,
	}
	model.applyFilter()
	return model
}

// themeFromPrefs applies preference color overrides to the default
// theme.
func themeFromPrefs(prefs config.Config) tui.Theme {
	theme := tui.DefaultTheme
	if prefs.Theme.Accent != "" {
		theme.Accent = colorFromHex(prefs.Theme.Accent)
	}
	if prefs.Theme.Muted != "" {
		theme.FaintText = colorFromHex(prefs.Theme.Muted)
	}
	return theme
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Routes keyboard events based on the
// current mode.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.ensureVisible()
		return model, nil

	case tea.KeyMsg:
		switch model.mode {
		case ModeSearch:
			return model.handleSearchKeys(message)
		case ModeHelp:
			return model.handleHelpKeys(message)
		case ModeConfirm:
			return model.handleConfirmKeys(message)
		case ModeDetail:
			return model.handleDetailKeys(message)
		default:
			return model.handleListKeys(message)
		}
	}
	return model, nil
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		model.moveSelection(-1)

	case key.Matches(message, model.keys.Down):
		model.moveSelection(1)

	case key.Matches(message, model.keys.Top):
		model.cursor = 0
		model.ensureVisible()

	case key.Matches(message, model.keys.Bottom):
		if len(model.visible) > 0 {
			model.cursor = len(model.visible) - 1
		}
		model.ensureVisible()

	case key.Matches(message, model.keys.Toggle):
		model.toggleSelected()

	case key.Matches(message, model.keys.Detail):
		if model.selected() != nil {
			model.mode = ModeDetail
		}

	case key.Matches(message, model.keys.Enable):
		model.setSelected(true)

	case key.Matches(message, model.keys.Disable):
		model.setSelected(false)

	case key.Matches(message, model.keys.Remove):
		if model.selected() != nil {
			if model.prefs.ConfirmRemove {
				model.mode = ModeConfirm
			} else {
				model.executeRemove()
			}
		}

	case key.Matches(message, model.keys.AutoUpdate):
		model.toggleAutoUpdate()

	case key.Matches(message, model.keys.CycleScope):
		model.scopeFilter = model.scopeFilter.Next()
		model.applyFilter()

	case key.Matches(message, model.keys.Search):
		model.mode = ModeSearch
		model.search.Focus()

	case key.Matches(message, model.keys.Reload):
		model.reload()

	case key.Matches(message, model.keys.Help):
		model.mode = ModeHelp

	case key.Matches(message, model.keys.Cancel):
		if model.search.Value() != "" {
			model.search.SetValue("")
			model.applyFilter()
		}
	}
	return model, nil
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.String() {
	case "esc", "enter":
		model.mode = ModeList
		model.search.Blur()
		return model, nil
	case "ctrl+c":
		return model, tea.Quit
	}

	var cmd tea.Cmd
	model.search, cmd = model.search.Update(message)
	model.applyFilter()
	return model, cmd
}

func (model Model) handleHelpKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.String() {
	case "esc", "?", "q":
		model.mode = ModeList
	case "ctrl+c":
		return model, tea.Quit
	}
	return model, nil
}

func (model Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.String() {
	case "y", "enter":
		model.executeRemove()
		model.mode = ModeList
	case "n", "esc":
		model.mode = ModeList
	case "ctrl+c":
		return model, tea.Quit
	}
	return model, nil
}

func (model Model) handleDetailKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.String() {
	case "esc", "enter", "q":
		model.mode = ModeList
	case " ":
		model.toggleSelected()
	case "ctrl+c":
		return model, tea.Quit
	}
	return model, nil
}

// selected returns the plugin under the cursor, or nil when the
// filtered list is empty.
func (model *Model) selected() *plugin.Plugin {
	if model.cursor < 0 || model.cursor >= len(model.visible) {
		return nil
	}
	return model.plugins[model.visible[model.cursor]]
}

// moveSelection moves the cursor by delta, wrapping at both ends.
func (model *Model) moveSelection(delta int) {
	count := len(model.visible)
	if count == 0 {
		return
	}
	model.cursor = ((model.cursor+delta)%count + count) % count
	model.ensureVisible()
}

// ensureVisible adjusts the scroll offset so the cursor stays inside
// the list viewport.
func (model *Model) ensureVisible() {
	height := model.listHeight()
	if height <= 0 {
		return
	}
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+height {
		model.scrollOffset = model.cursor - height + 1
	}
	if model.scrollOffset < 0 {
		model.scrollOffset = 0
	}
}

// applyFilter recomputes the visible index list from the scope filter
// and search query, keeping the cursor in range.
func (model *Model) applyFilter() {
	query := strings.ToLower(model.search.Value())

	model.visible = model.visible[:0]
	for index, p := range model.plugins {
		if !model.scopeFilter.Matches(p.InstallScope) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Marketplace), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		model.visible = append(model.visible, index)
	}

	if model.cursor >= len(model.visible) {
		model.cursor = len(model.visible) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	model.ensureVisible()
}

// reload re-runs discovery from disk, preserving filter state.
func (model *Model) reload() {
	model.plugins = model.discovery.DiscoverAll()
	model.applyFilter()
	model.info("Plugins reloaded")
}

// toggleSelected flips the selected plugin's effective state by writing
// to its install scope.
func (model *Model) toggleSelected() {
	p := model.selected()
	if p == nil {
		return
	}
	newState, err := model.service.Toggle(p)
	if err != nil {
		model.fail(fmt.Sprintf("Failed to toggle: %v", err))
		return
	}
	patchSetting(p, p.InstallScope, newState)
	state := "disabled"
	if newState {
		state = "enabled"
	}
	model.info(fmt.Sprintf("%s %s in %s scope", p.ID, state, p.InstallScope))
}

// setSelected writes an explicit enable or disable to the selected
// plugin's install scope. No-ops with a notice when already in the
// requested state.
func (model *Model) setSelected(enabled bool) {
	p := model.selected()
	if p == nil {
		return
	}
	if p.IsEnabled() == enabled {
		if enabled {
			model.info("Plugin already enabled")
		} else {
			model.info("Plugin already disabled")
		}
		return
	}
	if err := model.service.SetEnabled(p.ID, p.InstallScope, enabled); err != nil {
		if enabled {
			model.fail(fmt.Sprintf("Failed to enable: %v", err))
		} else {
			model.fail(fmt.Sprintf("Failed to disable: %v", err))
		}
		return
	}
	patchSetting(p, p.InstallScope, enabled)
	if enabled {
		model.info(fmt.Sprintf("Enabled %s", p.ID))
	} else {
		model.info(fmt.Sprintf("Disabled %s", p.ID))
	}
}

// toggleAutoUpdate flips the autoUpdate flag for the selected plugin's
// marketplace.
func (model *Model) toggleAutoUpdate() {
	p := model.selected()
	if p == nil {
		return
	}
	enabled, err := model.service.ToggleAutoUpdate(p.Marketplace)
	if err != nil {
		model.fail(fmt.Sprintf("Failed to toggle auto-update: %v", err))
		return
	}
	state := "off"
	if enabled {
		state = "on"
	}
	model.info(fmt.Sprintf("Auto-update for %s is now %s", p.Marketplace, state))
}

// executeRemove is the confirmed remove action. Uninstall is not wired
// up yet; the dialog exists so the flow is in place.
func (model *Model) executeRemove() {
	model.info("Remove is not implemented yet")
}

// patchSetting updates the in-memory per-scope setting after a write so
// the list reflects the mutation without a rediscovery pass.
func patchSetting(p *plugin.Plugin, scope plugin.Scope, enabled bool) {
	setting := plugin.SettingDisabled
	if enabled {
		setting = plugin.SettingEnabled
	}
	switch scope {
	case plugin.ScopeProject:
		p.EnabledProject = setting
	case plugin.ScopeLocal:
		p.EnabledLocal = setting
	default:
		p.EnabledUser = setting
	}
}

func (model *Model) info(text string) {
	model.message = &statusMessage{text: text}
}

func (model *Model) fail(text string) {
	model.message = &statusMessage{text: text, isError: true}
}

// enabledCount returns how many discovered plugins are effectively
// enabled, and the total, for the header.
func (model *Model) enabledCount() (enabled, total int) {
	for _, p := range model.plugins {
		if p.IsEnabled() {
			enabled++
		}
	}
	return enabled, len(model.plugins)
}
