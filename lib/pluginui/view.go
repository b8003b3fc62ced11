// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package pluginui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ccpm-tools/ccpm/lib/plugin"
	"github.com/ccpm-tools/ccpm/lib/tui"
)

// Fixed chrome heights: header and footer are bordered single-line
// boxes, three terminal rows each.
const (
	headerHeight = 3
	footerHeight = 3
)

func colorFromHex(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// listHeight returns the number of plugin rows the list viewport can
// show.
func (model *Model) listHeight() int {
	return model.height - headerHeight - footerHeight - 2
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	header := model.renderHeader()
	footer := model.renderFooter()
	contentHeight := model.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 3 {
		contentHeight = 3
	}

	listWidth := model.width / 2
	list := model.renderList(listWidth, contentHeight)
	details := model.renderDetails(model.width-listWidth, contentHeight)
	content := lipgloss.JoinHorizontal(lipgloss.Top, list, details)

	view := lipgloss.JoinVertical(lipgloss.Left, header, content, footer)

	switch model.mode {
	case ModeHelp:
		return model.spliceCentered(view, model.renderHelp())
	case ModeConfirm:
		return model.spliceCentered(view, model.renderConfirm())
	case ModeDetail:
		return model.spliceCentered(view, model.renderDetailModal())
	}
	return view
}

func (model *Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Foreground(model.theme.Accent).Bold(true)
	scopeStyle := lipgloss.NewStyle().Foreground(model.theme.ScopeOtherProject)
	countStyle := lipgloss.NewStyle().Foreground(model.theme.StatusEnabled)
	searchStyle := lipgloss.NewStyle().Foreground(model.theme.SearchForeground)

	enabled, total := model.enabledCount()
	parts := []string{
		titleStyle.Render(" CCPM "),
		scopeStyle.Render(fmt.Sprintf("Scope: %s ", model.scopeFilter.Label())),
		countStyle.Render(fmt.Sprintf("%d/%d enabled ", enabled, total)),
	}
	if model.mode == ModeSearch || model.search.Value() != "" {
		query := model.search.Value()
		if model.mode == ModeSearch {
			query += "_"
		}
		parts = append(parts, searchStyle.Render("Search: "+query))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(model.theme.BorderColor).
		Width(model.width - 2).
		Render(strings.Join(parts, "│ "))
}

func (model *Model) renderList(width, height int) string {
	normalStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	enabledStyle := lipgloss.NewStyle().Foreground(model.theme.StatusEnabled)
	disabledStyle := lipgloss.NewStyle().Foreground(model.theme.StatusDisabled)
	selectedStyle := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground).
		Bold(true)

	innerHeight := height - 2
	var rows []string
	end := model.scrollOffset + innerHeight
	if end > len(model.visible) {
		end = len(model.visible)
	}
	for position := model.scrollOffset; position < end; position++ {
		p := model.plugins[model.visible[position]]

		badgeStyle := lipgloss.NewStyle().
			Foreground(model.theme.ScopeColor(string(p.InstallScope), p.IsCurrentProject))
		badge := badgeStyle.Render(p.ScopeIndicator())

		var status, name string
		if p.IsEnabled() {
			status = enabledStyle.Render(" [+] ")
			name = normalStyle.Render(p.Name)
		} else {
			status = disabledStyle.Render(" [-] ")
			name = disabledStyle.Render(p.Name)
		}
		marketplace := faintStyle.Render(" @" + p.Marketplace)

		marker := "  "
		row := badge + status + name + marketplace
		if position == model.cursor {
			marker = "▶ "
			row = selectedStyle.Render(p.ScopeIndicator() + statusText(p) + p.Name + " @" + p.Marketplace)
		}
		rows = append(rows, marker+row)
	}
	if len(rows) == 0 {
		rows = append(rows, faintStyle.Render("  No plugins found."))
	}

	title := fmt.Sprintf(" Plugins (%d) ", len(model.visible))
	return model.pane(title, strings.Join(rows, "\n"), width, height)
}

func statusText(p *plugin.Plugin) string {
	if p.IsEnabled() {
		return " [+] "
	}
	return " [-] "
}

func (model *Model) renderDetails(width, height int) string {
	body := "No plugin selected"
	if p := model.selected(); p != nil {
		body = strings.Join(model.detailLines(p, false), "\n")
	}
	return model.pane(" Details ", body, width, height)
}

// detailLines builds the field lines shared by the detail pane and the
// detail modal. The modal adds timestamps and the enabled-in summary.
func (model *Model) detailLines(p *plugin.Plugin, modal bool) []string {
	label := lipgloss.NewStyle().Bold(true)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	enabledStyle := lipgloss.NewStyle().Foreground(model.theme.StatusEnabled)
	disabledStyle := lipgloss.NewStyle().Foreground(model.theme.MessageError)

	status := disabledStyle.Render("Disabled")
	if p.IsEnabled() {
		status = enabledStyle.Render("Enabled")
	}

	lines := []string{
		label.Render("Name: ") + p.Name,
		label.Render("Marketplace: ") + p.Marketplace,
		label.Render("Status: ") + status,
		label.Render("Installed: ") + installedDescription(p),
		label.Render("Enabled in: ") + p.EnabledContext(),
	}

	if p.InstallScope != plugin.ScopeUser && p.ProjectPath != "" {
		pathStyle := enabledStyle
		if !p.IsCurrentProject {
			pathStyle = lipgloss.NewStyle().Foreground(model.theme.ScopeOtherProject)
		}
		lines = append(lines, label.Render("Project: ")+pathStyle.Render(p.ProjectPath))
	}
	if p.Version != "" {
		version := p.Version
		if p.VersionMismatch() {
			version += faint.Render(fmt.Sprintf(" (registry: %s)", p.RegistryVersion))
		}
		lines = append(lines, label.Render("Version: ")+version)
	}
	if p.Author != nil {
		author := p.Author.Name
		if p.Author.Email != "" {
			author += " <" + p.Author.Email + ">"
		}
		lines = append(lines, label.Render("Author: ")+author)
	}
	if p.InstallPath != "" {
		lines = append(lines, label.Render("Path: ")+faint.Render(p.InstallPath))
	}
	if modal {
		if p.InstalledAt != "" {
			lines = append(lines, label.Render("Installed at: ")+p.InstalledAt)
		}
		if p.LastUpdated != "" {
			lines = append(lines, label.Render("Updated: ")+p.LastUpdated)
		}
	}
	if p.Description != "" {
		lines = append(lines, "", label.Render("Description:"), p.Description)
	}
	return lines
}

// installedDescription renders the install scope plus whether the
// install belongs to the current project.
func installedDescription(p *plugin.Plugin) string {
	switch p.InstallScope {
	case plugin.ScopeProject:
		if p.IsCurrentProject {
			return "Project (this project)"
		}
		return "Project (other project)"
	case plugin.ScopeLocal:
		if p.IsCurrentProject {
			return "Local (this project)"
		}
		return "Local (other project)"
	default:
		return "User (~/.claude)"
	}
}

func (model *Model) renderFooter() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(model.theme.Accent).
		Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	var hints [][2]string
	switch model.mode {
	case ModeSearch:
		hints = [][2]string{{"Enter/Esc", "exit search"}, {"Type", "filter"}}
	case ModeHelp:
		hints = [][2]string{{"Esc/?", "close help"}}
	case ModeConfirm:
		hints = [][2]string{{"y", "confirm"}, {"n/Esc", "cancel"}}
	case ModeDetail:
		hints = [][2]string{{"Esc/Enter", "close"}, {"Space", "toggle"}}
	default:
		hints = [][2]string{
			{"j/k", "navigate"}, {"Enter", "details"}, {"Space", "toggle"},
			{"e", "enable"}, {"d", "disable"}, {"s", "scope"},
			{"/", "search"}, {"?", "help"}, {"q", "quit"},
		}
	}

	var parts []string
	for _, hint := range hints {
		parts = append(parts, keyStyle.Render(" "+hint[0]+" ")+hintStyle.Render(" "+hint[1]+" "))
	}
	content := strings.Join(parts, "│")

	if model.message != nil {
		messageStyle := lipgloss.NewStyle().Foreground(model.theme.MessageInfo)
		if model.message.isError {
			messageStyle = lipgloss.NewStyle().Foreground(model.theme.MessageError)
		}
		content += "\n" + messageStyle.Render(model.message.text)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(model.theme.BorderColor).
		Width(model.width - 2).
		Render(content)
}

// pane renders a bordered box with a title embedded in the top border
// line.
func (model *Model) pane(title, body string, width, height int) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(model.theme.Accent).
		Width(width - 2).
		Height(height - 2)
	box := boxStyle.Render(body)

	// Embed the title in the top border.
	lines := strings.Split(box, "\n")
	if len(lines) > 0 && len(title) > 0 {
		titled := lipgloss.NewStyle().Foreground(model.theme.Accent).Render(title)
		top := lines[0]
		lines[0] = tui.SpliceOverlay(top, []string{titled}, 1, 0)
	}
	return strings.Join(lines, "\n")
}

func (model *Model) renderHelp() string {
	label := lipgloss.NewStyle().Foreground(model.theme.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(model.theme.ScopeOtherProject)

	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Navigation", [][2]string{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"g", "Go to first"},
			{"G", "Go to last"},
			{"Enter", "View details"},
		}},
		{"Plugin Actions", [][2]string{
			{"e", "Enable plugin"},
			{"d", "Disable plugin"},
			{"Space", "Toggle enable/disable"},
			{"u", "Toggle marketplace auto-update"},
			{"x", "Remove plugin"},
		}},
		{"Filtering", [][2]string{
			{"s", "Cycle scope filter"},
			{"/", "Search"},
			{"Esc", "Clear search"},
		}},
		{"Other", [][2]string{
			{"r", "Reload plugins"},
			{"?", "Toggle this help"},
			{"q", "Quit"},
		}},
	}

	var lines []string
	for index, section := range sections {
		if index > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, label.Render(section.title))
		for _, binding := range section.keys {
			lines = append(lines, fmt.Sprintf("  %s  %s",
				keyStyle.Render(fmt.Sprintf("%-8s", binding[0])), binding[1]))
		}
	}

	return model.modalBox(" Help ", strings.Join(lines, "\n"))
}

func (model *Model) renderConfirm() string {
	p := model.selected()
	if p == nil {
		return ""
	}
	body := fmt.Sprintf("Remove %s?\n\nThis cannot be undone.\n\n[y] confirm   [n] cancel", p.DisplayName())
	return model.modalBox(" Confirm ", body)
}

func (model *Model) renderDetailModal() string {
	p := model.selected()
	if p == nil {
		return ""
	}
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	titleStyle := lipgloss.NewStyle().Foreground(model.theme.Accent).Bold(true)

	lines := []string{
		titleStyle.Render(p.Name),
		faint.Render("@" + p.Marketplace),
		"",
	}
	lines = append(lines, model.detailLines(p, true)...)
	lines = append(lines, "", faint.Render("Press Esc or Enter to close | Space to toggle"))

	return model.modalBox(" Plugin Details ", strings.Join(lines, "\n"))
}

// modalBox renders a bordered, padded modal.
func (model *Model) modalBox(title, body string) string {
	width := model.width * 3 / 4
	if width > 72 {
		width = 72
	}
	if width < 30 {
		width = model.width - 4
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.Accent).
		Padding(0, 1).
		Width(width).
		Render(body)

	lines := strings.Split(box, "\n")
	if len(lines) > 0 {
		titled := lipgloss.NewStyle().Foreground(model.theme.Accent).Bold(true).Render(title)
		lines[0] = tui.SpliceOverlay(lines[0], []string{titled}, 2, 0)
	}
	return strings.Join(lines, "\n")
}

// spliceCentered places an overlay box in the middle of the view.
func (model *Model) spliceCentered(view, overlay string) string {
	if overlay == "" {
		return view
	}
	lines := strings.Split(overlay, "\n")
	overlayHeight := len(lines)
	overlayWidth := lipgloss.Width(overlay)

	anchorX := (model.width - overlayWidth) / 2
	anchorY := (model.height - overlayHeight) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	if anchorY < 0 {
		anchorY = 0
	}
	return tui.SpliceOverlay(view, lines, anchorX, anchorY)
}
