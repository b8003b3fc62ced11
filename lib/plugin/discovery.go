// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Discovery merges the installed-plugins registry with settings from
// every relevant scope into [Plugin] snapshots. It is read-only: no
// discovery path takes a lock or writes a file.
type Discovery struct {
	env    Environment
	logger *slog.Logger
}

// NewDiscovery creates a Discovery over the given environment. A nil
// logger discards the soft-failure diagnostics.
func NewDiscovery(env Environment, logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Discovery{env: env, logger: logger}
}

// projectSettings pairs the two per-project documents so installs that
// share a project directory load them once.
type projectSettings struct {
	project *SettingsDocument
	local   *SettingsDocument
}

// DiscoverAll computes the full merged plugin view. It cannot fail:
// every unreadable or malformed file is treated as absent, so the result
// degrades to "nothing known" rather than an error. The result is sorted
// by lowercase display name.
func (d *Discovery) DiscoverAll() []*Plugin {
	userSettings := loadSettings(d.logger, d.env.UserSettingsPath())
	callerSettings := d.loadProject(d.env.WorkDir)
	registry := loadRegistry(d.logger, d.env.RegistryPath())

	// Settings for projects other than the caller's, loaded on demand
	// and cached for the duration of this pass. Installs bound to the
	// same project share one load.
	cache := map[string]projectSettings{}
	settingsFor := func(projectDir string) projectSettings {
		key := filepath.Clean(projectDir)
		if cached, ok := cache[key]; ok {
			return cached
		}
		loaded := d.loadProject(projectDir)
		cache[key] = loaded
		return loaded
	}

	var plugins []*Plugin

	// Registry iteration order is made deterministic up front so the
	// final stable sort breaks display-name ties the same way on every
	// run.
	for _, id := range slices.Sorted(maps.Keys(registry.Plugins)) {
		entries := registry.Plugins[id]
		if len(entries) == 0 {
			continue
		}
		// Only the first (most recent) install record is authoritative.
		entry := entries[0]
		plugins = append(plugins, d.buildView(id, entry, userSettings, callerSettings, settingsFor))
	}

	// Plugins that appear in the caller's settings but have no registry
	// entry still show up, anchored to the caller's own scopes. There
	// is no install record to point anywhere else.
	for _, id := range d.settingsOnlyIDs(registry, userSettings, callerSettings) {
		name, marketplace := ParseID(id)
		plugins = append(plugins, &Plugin{
			ID:               id,
			Name:             name,
			Marketplace:      marketplace,
			InstallScope:     ScopeUser,
			IsCurrentProject: true,
			EnabledUser:      settingOf(userSettings.EnabledPlugins, id),
			EnabledProject:   settingOf(callerSettings.project.EnabledPlugins, id),
			EnabledLocal:     settingOf(callerSettings.local.EnabledPlugins, id),
		})
	}

	sort.SliceStable(plugins, func(i, j int) bool {
		return strings.ToLower(plugins[i].Name) < strings.ToLower(plugins[j].Name)
	})
	return plugins
}

// buildView merges one registry entry with its settings and manifest.
func (d *Discovery) buildView(id string, entry InstallEntry, userSettings *SettingsDocument, callerSettings projectSettings, settingsFor func(string) projectSettings) *Plugin {
	name, marketplace := ParseID(id)
	scope := parseRegistryScope(entry.Scope)

	view := &Plugin{
		ID:               id,
		Name:             name,
		Marketplace:      marketplace,
		InstallScope:     scope,
		InstallPath:      entry.InstallPath,
		ProjectPath:      entry.ProjectPath,
		Version:          entry.Version,
		RegistryVersion:  entry.Version,
		InstalledAt:      entry.InstalledAt,
		LastUpdated:      entry.LastUpdated,
		IsCurrentProject: true,
		EnabledUser:      settingOf(userSettings.EnabledPlugins, id),
	}

	if scope != ScopeUser {
		// Project and local settings belong to the install's own
		// project, not the caller's. Legacy entries without a recorded
		// project path fall back to the caller's working directory.
		ownSettings := callerSettings
		if entry.ProjectPath != "" {
			view.IsCurrentProject = pathsEqual(entry.ProjectPath, d.env.WorkDir)
			ownSettings = settingsFor(entry.ProjectPath)
		} else {
			view.IsCurrentProject = isUnder(entry.InstallPath, filepath.Join(d.env.WorkDir, claudeDir))
		}
		view.EnabledProject = settingOf(ownSettings.project.EnabledPlugins, id)
		view.EnabledLocal = settingOf(ownSettings.local.EnabledPlugins, id)
	}

	if manifest := loadManifest(d.logger, ManifestPath(entry.InstallPath)); manifest != nil {
		if manifest.Name != "" {
			view.Name = manifest.Name
		}
		if manifest.Version != "" {
			view.Version = manifest.Version
		}
		view.Description = manifest.Description
		view.Author = manifest.Author
	}

	return view
}

// settingsOnlyIDs returns, in sorted order, the plugin IDs present in the
// caller's settings documents but absent from the registry.
func (d *Discovery) settingsOnlyIDs(registry *Registry, userSettings *SettingsDocument, callerSettings projectSettings) []string {
	ids := map[string]struct{}{}
	for _, document := range []*SettingsDocument{userSettings, callerSettings.project, callerSettings.local} {
		for id := range document.EnabledPlugins {
			if _, installed := registry.Plugins[id]; !installed {
				ids[id] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(ids))
}

// loadProject loads the project and local settings documents for one
// project directory.
func (d *Discovery) loadProject(projectDir string) projectSettings {
	return projectSettings{
		project: loadSettings(d.logger, d.env.ProjectSettingsPath(projectDir)),
		local:   loadSettings(d.logger, d.env.LocalSettingsPath(projectDir)),
	}
}

// Marketplaces returns the known-marketplaces registry. Unreadable or
// missing files yield an empty mapping.
func (d *Discovery) Marketplaces() Marketplaces {
	return loadMarketplaces(d.logger, d.env.MarketplacesPath())
}

// pathsEqual compares two paths after lexical cleaning. Equality, not
// containment: a registry entry for a parent directory does not make a
// subdirectory's invocation "current".
func pathsEqual(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// isUnder reports whether path is lexically inside dir.
func isUnder(path, dir string) bool {
	relative, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return relative != ".." && !strings.HasPrefix(relative, ".."+string(filepath.Separator))
}
