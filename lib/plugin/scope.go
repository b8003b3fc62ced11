// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import "fmt"

// Scope identifies one of the three settings documents a plugin can be
// enabled or disabled in.
type Scope string

const (
	// ScopeUser is the global scope (~/.claude/settings.json).
	ScopeUser Scope = "user"

	// ScopeProject is the shared per-project scope, committed to the
	// project repository (<project>/.claude/settings.json).
	ScopeProject Scope = "project"

	// ScopeLocal is the private per-project scope, layered over project
	// (<project>/.claude/settings.local.json).
	ScopeLocal Scope = "local"
)

// ParseScope converts a user-supplied scope name (e.g. from a --scope
// flag) into a Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeUser, ScopeProject, ScopeLocal:
		return Scope(s), nil
	}
	return "", fmt.Errorf("unknown scope %q (expected user, project, or local)", s)
}

// parseRegistryScope interprets the scope field of a registry install
// record. The registry is written by Claude Code, not by us; unknown
// values default to user rather than failing discovery.
func parseRegistryScope(s string) Scope {
	switch Scope(s) {
	case ScopeProject:
		return ScopeProject
	case ScopeLocal:
		return ScopeLocal
	default:
		return ScopeUser
	}
}

// Setting is a tri-state enabled flag for a single scope. The distinction
// between absent and explicitly-false is load-bearing: an explicit false
// overrides a lower-precedence true, while absence yields to it.
type Setting int

const (
	// SettingAbsent means the scope's settings document has no entry for
	// the plugin.
	SettingAbsent Setting = iota

	// SettingDisabled is an explicit false entry.
	SettingDisabled

	// SettingEnabled is an explicit true entry.
	SettingEnabled
)

// settingOf converts a map lookup result into a Setting.
func settingOf(enabled map[string]bool, id string) Setting {
	value, present := enabled[id]
	if !present {
		return SettingAbsent
	}
	if value {
		return SettingEnabled
	}
	return SettingDisabled
}

// Present reports whether the setting is an explicit value.
func (s Setting) Present() bool {
	return s != SettingAbsent
}

// Enabled reports whether the setting is an explicit true.
func (s Setting) Enabled() bool {
	return s == SettingEnabled
}

// String returns "on", "off", or "-" for display in list output.
func (s Setting) String() string {
	switch s {
	case SettingEnabled:
		return "on"
	case SettingDisabled:
		return "off"
	default:
		return "-"
	}
}

// ScopeFilter selects which install scopes a plugin listing shows.
type ScopeFilter int

const (
	// FilterAll shows every plugin.
	FilterAll ScopeFilter = iota
	// FilterUser shows only user-scope installs.
	FilterUser
	// FilterProject shows only project-scope installs.
	FilterProject
	// FilterLocal shows only local-scope installs.
	FilterLocal
)

// ParseScopeFilter converts a user-supplied filter name (e.g. from a
// --scope flag) into a ScopeFilter.
func ParseScopeFilter(s string) (ScopeFilter, error) {
	switch s {
	case "all":
		return FilterAll, nil
	case "user":
		return FilterUser, nil
	case "project":
		return FilterProject, nil
	case "local":
		return FilterLocal, nil
	}
	return FilterAll, fmt.Errorf("unknown scope %q (expected all, user, project, or local)", s)
}

// Next cycles to the following filter, wrapping back to All.
func (f ScopeFilter) Next() ScopeFilter {
	switch f {
	case FilterAll:
		return FilterUser
	case FilterUser:
		return FilterProject
	case FilterProject:
		return FilterLocal
	default:
		return FilterAll
	}
}

// Label returns the display name shown in the TUI header.
func (f ScopeFilter) Label() string {
	switch f {
	case FilterUser:
		return "User"
	case FilterProject:
		return "Project"
	case FilterLocal:
		return "Local"
	default:
		return "All"
	}
}

// Matches reports whether a plugin with the given install scope passes
// the filter.
func (f ScopeFilter) Matches(scope Scope) bool {
	switch f {
	case FilterUser:
		return scope == ScopeUser
	case FilterProject:
		return scope == ScopeProject
	case FilterLocal:
		return scope == ScopeLocal
	default:
		return true
	}
}
