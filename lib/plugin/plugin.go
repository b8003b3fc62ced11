// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Plugin is the merged, externally-visible view of one plugin: registry
// installation data joined with settings from every relevant scope. It is
// a read-only snapshot recomputed from scratch on every discovery pass.
type Plugin struct {
	// ID is the full plugin identifier, "name@marketplace".
	ID string

	// Name is the display name: the manifest name when a manifest is
	// readable, otherwise the name part of the ID.
	Name string

	// Marketplace is the marketplace part of the ID.
	Marketplace string

	// Description, Version, and Author come from the manifest when
	// present. Version falls back to the registry-recorded version.
	Description string
	Version     string
	Author      *Author

	// InstallScope is the scope the plugin was installed into, taken
	// from the registry record (never inferred from paths).
	InstallScope Scope

	// InstallPath is the installed plugin tree. Empty for plugins that
	// appear in settings without a registry entry.
	InstallPath string

	// ProjectPath is the project directory a project- or local-scoped
	// install is bound to. Empty for user-scope installs and for legacy
	// registry entries that never recorded one.
	ProjectPath string

	// IsCurrentProject reports whether the install belongs to the
	// caller's working directory. User-scope installs are always
	// current.
	IsCurrentProject bool

	// Per-scope enabled settings. For project/local installs these are
	// read from the install's own project directory, not the caller's.
	EnabledUser    Setting
	EnabledProject Setting
	EnabledLocal   Setting

	// RegistryVersion is the version recorded in the registry at install
	// time, kept separately from Version so a manifest/registry
	// disagreement can be surfaced.
	RegistryVersion string

	InstalledAt string
	LastUpdated string
}

// DisplayName returns the full "name@marketplace" form.
func (p *Plugin) DisplayName() string {
	return p.Name + "@" + p.Marketplace
}

// IsEnabled resolves the effective enabled state: the first explicit
// setting in local → project → user order. A plugin with no explicit
// setting anywhere is disabled.
func (p *Plugin) IsEnabled() bool {
	for _, setting := range []Setting{p.EnabledLocal, p.EnabledProject, p.EnabledUser} {
		if setting.Present() {
			return setting.Enabled()
		}
	}
	return false
}

// EnabledContext returns a human-readable summary of which scopes enable
// the plugin, e.g. "User + Local" or "Disabled".
func (p *Plugin) EnabledContext() string {
	var scopes []string
	if p.EnabledUser.Enabled() {
		scopes = append(scopes, "User")
	}
	if p.EnabledProject.Enabled() {
		scopes = append(scopes, "Project")
	}
	if p.EnabledLocal.Enabled() {
		scopes = append(scopes, "Local")
	}
	if len(scopes) == 0 {
		return "Disabled"
	}
	return strings.Join(scopes, " + ")
}

// ScopeIndicator returns the list-view badge for the install scope:
// [U], [P], or [L], with a trailing * when the install belongs to a
// different project than the caller's.
func (p *Plugin) ScopeIndicator() string {
	var letter string
	switch p.InstallScope {
	case ScopeProject:
		letter = "P"
	case ScopeLocal:
		letter = "L"
	default:
		return "[U]"
	}
	if p.IsCurrentProject {
		return "[" + letter + "]"
	}
	return "[" + letter + "*]"
}

// StatusIndicator returns [+] for effectively enabled, [-] otherwise.
func (p *Plugin) StatusIndicator() string {
	if p.IsEnabled() {
		return "[+]"
	}
	return "[-]"
}

// VersionMismatch reports whether the manifest and the registry disagree
// about the installed version. Versions that fail to parse as semver are
// compared as strings.
func (p *Plugin) VersionMismatch() bool {
	if p.Version == "" || p.RegistryVersion == "" || p.Version == p.RegistryVersion {
		return false
	}
	manifestVersion, err := goversion.NewVersion(p.Version)
	if err != nil {
		return true
	}
	recorded, err := goversion.NewVersion(p.RegistryVersion)
	if err != nil {
		return true
	}
	return !manifestVersion.Equal(recorded)
}
