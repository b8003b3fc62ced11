// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/ccpm-tools/ccpm/lib/testutil"
)

// testEnv creates an Environment over temporary home and working
// directories.
func testEnv(t *testing.T) Environment {
	t.Helper()
	root := t.TempDir()
	return Environment{
		Home:    filepath.Join(root, "home"),
		WorkDir: filepath.Join(root, "work"),
	}
}

// installEntry renders a minimal registry entry as JSON.
func installEntry(scope, installPath, projectPath string) string {
	entry := fmt.Sprintf(`{"scope": %q, "installPath": %q, "version": "1.0.0",
		"installedAt": "2026-01-01T00:00:00Z", "lastUpdated": "2026-01-02T00:00:00Z"`,
		scope, installPath)
	if projectPath != "" {
		entry += fmt.Sprintf(`, "projectPath": %q`, projectPath)
	}
	return entry + "}"
}

func writeRegistry(t *testing.T, env Environment, entries map[string]string) {
	t.Helper()
	document := `{"version": 2, "plugins": {`
	first := true
	for id, entry := range entries {
		if !first {
			document += ", "
		}
		first = false
		document += fmt.Sprintf("%q: [%s]", id, entry)
	}
	document += "}}"
	testutil.WriteFile(t, env.RegistryPath(), document)
}

func findPlugin(t *testing.T, plugins []*Plugin, id string) *Plugin {
	t.Helper()
	for _, p := range plugins {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("plugin %s not in discovery output", id)
	return nil
}

func TestDiscoverAllEmpty(t *testing.T) {
	discovery := NewDiscovery(testEnv(t), nil)
	if plugins := discovery.DiscoverAll(); len(plugins) != 0 {
		t.Errorf("expected no plugins, got %d", len(plugins))
	}
}

func TestDiscoverAllUserScope(t *testing.T) {
	env := testEnv(t)
	installPath := filepath.Join(env.Home, ".claude", "plugins", "cache", "fmt")
	writeRegistry(t, env, map[string]string{
		"fmt@official": installEntry("user", installPath, ""),
	})
	testutil.WriteFile(t, env.UserSettingsPath(),
		`{"enabledPlugins": {"fmt@official": true}}`)

	plugins := NewDiscovery(env, nil).DiscoverAll()
	if len(plugins) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(plugins))
	}

	p := plugins[0]
	if p.Name != "fmt" || p.Marketplace != "official" {
		t.Errorf("parsed id = %s@%s", p.Name, p.Marketplace)
	}
	if p.InstallScope != ScopeUser {
		t.Errorf("install scope = %s, want user", p.InstallScope)
	}
	if !p.IsCurrentProject {
		t.Error("user-scope installs are always current")
	}
	if p.EnabledUser != SettingEnabled {
		t.Errorf("user setting = %v, want enabled", p.EnabledUser)
	}
	// Project and local do not apply to user-scope installs.
	if p.EnabledProject != SettingAbsent || p.EnabledLocal != SettingAbsent {
		t.Error("project/local settings should be absent for user-scope installs")
	}
	if !p.IsEnabled() {
		t.Error("plugin should be effectively enabled")
	}
	if p.Version != "1.0.0" || p.RegistryVersion != "1.0.0" {
		t.Errorf("version = %q, registry version = %q", p.Version, p.RegistryVersion)
	}
}

func TestDiscoverAllManifestOverride(t *testing.T) {
	env := testEnv(t)
	installPath := filepath.Join(env.Home, ".claude", "plugins", "cache", "fmt")
	writeRegistry(t, env, map[string]string{
		"fmt@official": installEntry("user", installPath, ""),
	})
	testutil.WriteFile(t, ManifestPath(installPath), `{
		"name": "formatter",
		"description": "Formats things",
		"version": "2.0.0",
		"author": {"name": "Ada", "email": "ada@example.com"}
	}`)

	p := NewDiscovery(env, nil).DiscoverAll()[0]
	if p.Name != "formatter" {
		t.Errorf("name = %q, want manifest name", p.Name)
	}
	if p.Description != "Formats things" {
		t.Errorf("description = %q", p.Description)
	}
	if p.Version != "2.0.0" {
		t.Errorf("version = %q, want manifest version", p.Version)
	}
	if p.RegistryVersion != "1.0.0" {
		t.Errorf("registry version = %q, should keep registry value", p.RegistryVersion)
	}
	if !p.VersionMismatch() {
		t.Error("manifest 2.0.0 vs registry 1.0.0 should report a mismatch")
	}
	if p.Author == nil || p.Author.Name != "Ada" {
		t.Errorf("author = %+v", p.Author)
	}
}

func TestDiscoverAllBrokenManifestFallsBack(t *testing.T) {
	env := testEnv(t)
	installPath := filepath.Join(env.Home, ".claude", "plugins", "cache", "fmt")
	writeRegistry(t, env, map[string]string{
		"fmt@official": installEntry("user", installPath, ""),
	})
	testutil.WriteFile(t, ManifestPath(installPath), `{"name": "truncated`)

	p := NewDiscovery(env, nil).DiscoverAll()[0]
	if p.Name != "fmt" {
		t.Errorf("name = %q, want registry-derived fallback", p.Name)
	}
	if p.Version != "1.0.0" {
		t.Errorf("version = %q, want registry fallback", p.Version)
	}
}

func TestDiscoverAllOtherProjectSettings(t *testing.T) {
	// A project-scoped install bound to a different project reads that
	// project's settings, never the caller's.
	env := testEnv(t)
	otherProject := filepath.Join(t.TempDir(), "other")
	installPath := filepath.Join(otherProject, ".claude", "plugins", "lint")

	writeRegistry(t, env, map[string]string{
		"lint@official": installEntry("project", installPath, otherProject),
	})
	testutil.WriteFile(t, env.ProjectSettingsPath(otherProject),
		`{"enabledPlugins": {"lint@official": true}}`)
	// The caller's own project settings say the opposite; they must be
	// ignored because the install is anchored elsewhere.
	testutil.WriteFile(t, env.ProjectSettingsPath(env.WorkDir),
		`{"enabledPlugins": {"lint@official": false}}`)

	p := NewDiscovery(env, nil).DiscoverAll()[0]
	if p.IsCurrentProject {
		t.Error("install bound to another project should not be current")
	}
	if p.EnabledProject != SettingEnabled {
		t.Errorf("project setting = %v, want the install's own project value", p.EnabledProject)
	}
	if !p.IsEnabled() {
		t.Error("plugin should be effectively enabled via its own project settings")
	}
	if p.ProjectPath != otherProject {
		t.Errorf("project path = %q, want %q", p.ProjectPath, otherProject)
	}
}

func TestDiscoverAllCurrentProjectByEquality(t *testing.T) {
	env := testEnv(t)
	installPath := filepath.Join(env.WorkDir, ".claude", "plugins", "lint")

	// Trailing separator should not defeat the equality check.
	writeRegistry(t, env, map[string]string{
		"lint@official": installEntry("local", installPath, env.WorkDir+string(filepath.Separator)),
	})
	testutil.WriteFile(t, env.LocalSettingsPath(env.WorkDir),
		`{"enabledPlugins": {"lint@official": true}}`)

	p := NewDiscovery(env, nil).DiscoverAll()[0]
	if !p.IsCurrentProject {
		t.Error("install bound to the working directory should be current")
	}
	if p.EnabledLocal != SettingEnabled {
		t.Errorf("local setting = %v, want enabled", p.EnabledLocal)
	}
}

func TestDiscoverAllLegacyEntryFallsBackToHeuristic(t *testing.T) {
	// Entries without a recorded project path fall back to "is the
	// install path under <cwd>/.claude" and the caller's own settings.
	env := testEnv(t)
	installPath := filepath.Join(env.WorkDir, ".claude", "plugins", "old")
	writeRegistry(t, env, map[string]string{
		"old@official": installEntry("local", installPath, ""),
	})
	testutil.WriteFile(t, env.LocalSettingsPath(env.WorkDir),
		`{"enabledPlugins": {"old@official": true}}`)

	p := NewDiscovery(env, nil).DiscoverAll()[0]
	if !p.IsCurrentProject {
		t.Error("install under <cwd>/.claude should be treated as current")
	}
	if p.EnabledLocal != SettingEnabled {
		t.Errorf("local setting = %v, want caller's local settings as fallback", p.EnabledLocal)
	}

	// The same legacy entry seen from an unrelated working directory is
	// not current.
	elsewhere := env
	elsewhere.WorkDir = t.TempDir()
	p = NewDiscovery(elsewhere, nil).DiscoverAll()[0]
	if p.IsCurrentProject {
		t.Error("install outside <cwd>/.claude should not be current")
	}
}

func TestDiscoverAllSettingsOnlyPlugin(t *testing.T) {
	// A plugin present in settings but absent from the registry still
	// appears, anchored to the caller's own scopes.
	env := testEnv(t)
	testutil.WriteFile(t, env.UserSettingsPath(),
		`{"enabledPlugins": {"ghost@nowhere": false}}`)
	testutil.WriteFile(t, env.LocalSettingsPath(env.WorkDir),
		`{"enabledPlugins": {"ghost@nowhere": true}}`)

	plugins := NewDiscovery(env, nil).DiscoverAll()
	if len(plugins) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(plugins))
	}

	p := plugins[0]
	if p.InstallScope != ScopeUser {
		t.Errorf("synthesized install scope = %s, want user", p.InstallScope)
	}
	if p.InstallPath != "" {
		t.Errorf("synthesized install path = %q, want empty", p.InstallPath)
	}
	if !p.IsCurrentProject {
		t.Error("synthesized entries are always current")
	}
	if p.EnabledUser != SettingDisabled || p.EnabledLocal != SettingEnabled {
		t.Errorf("settings = user %v, local %v", p.EnabledUser, p.EnabledLocal)
	}
	if !p.IsEnabled() {
		t.Error("local=true should win precedence")
	}
}

func TestDiscoverAllRegistryOnlyPluginIsDisabled(t *testing.T) {
	env := testEnv(t)
	writeRegistry(t, env, map[string]string{
		"quiet@official": installEntry("user", filepath.Join(env.Home, "p"), ""),
	})

	p := NewDiscovery(env, nil).DiscoverAll()[0]
	if p.IsEnabled() {
		t.Error("plugin with no setting in any scope should be disabled")
	}
	if p.EnabledUser.Present() {
		t.Error("user setting should be absent, not explicit false")
	}
}

func TestDiscoverAllUnreadableFilesAreSoft(t *testing.T) {
	env := testEnv(t)
	testutil.WriteFile(t, env.UserSettingsPath(), "{not json")
	testutil.WriteFile(t, env.RegistryPath(), "also not json")
	testutil.WriteFile(t, env.MarketplacesPath(), "[]")

	// Discovery must still succeed, degrading to nothing known.
	if plugins := NewDiscovery(env, nil).DiscoverAll(); len(plugins) != 0 {
		t.Errorf("expected empty result, got %d plugins", len(plugins))
	}
}

func TestDiscoverAllSortsByLowercaseName(t *testing.T) {
	env := testEnv(t)
	testutil.WriteFile(t, env.UserSettingsPath(), `{"enabledPlugins": {
		"Zebra@m": true, "apple@m": true, "Mango@m": true
	}}`)

	plugins := NewDiscovery(env, nil).DiscoverAll()
	var names []string
	for _, p := range plugins {
		names = append(names, p.Name)
	}
	want := []string{"apple", "Mango", "Zebra"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("sort order = %v, want %v", names, want)
		}
	}
}

func TestDiscoverAllEmptyEntryListSkipped(t *testing.T) {
	env := testEnv(t)
	testutil.WriteFile(t, env.RegistryPath(),
		`{"version": 2, "plugins": {"empty@m": []}}`)

	if plugins := NewDiscovery(env, nil).DiscoverAll(); len(plugins) != 0 {
		t.Errorf("registry id with no install records should be skipped, got %d", len(plugins))
	}
}

func TestDiscoverAllSecondRecordIgnored(t *testing.T) {
	env := testEnv(t)
	first := installEntry("user", filepath.Join(env.Home, "latest"), "")
	second := installEntry("local", filepath.Join(env.Home, "stale"), env.WorkDir)
	testutil.WriteFile(t, env.RegistryPath(), fmt.Sprintf(
		`{"version": 2, "plugins": {"dup@m": [%s, %s]}}`, first, second))

	p := NewDiscovery(env, nil).DiscoverAll()[0]
	if p.InstallScope != ScopeUser {
		t.Errorf("scope = %s, only the first record is authoritative", p.InstallScope)
	}
	if filepath.Base(p.InstallPath) != "latest" {
		t.Errorf("install path = %q, want the first record's", p.InstallPath)
	}
}

func TestDiscoverAllJsoncTolerated(t *testing.T) {
	env := testEnv(t)
	testutil.WriteFile(t, env.UserSettingsPath(), `{
		// hand-edited
		"enabledPlugins": {
			"fmt@official": true,
		},
	}`)

	plugins := NewDiscovery(env, nil).DiscoverAll()
	if len(plugins) != 1 || !plugins[0].IsEnabled() {
		t.Error("comments and trailing commas should be tolerated on read")
	}
}

func TestMarketplaces(t *testing.T) {
	env := testEnv(t)
	testutil.WriteFile(t, env.MarketplacesPath(), `{
		"official": {
			"source": {"source": "github", "repo": "anthropics/plugins"},
			"installLocation": "/tmp/marketplaces/official",
			"lastUpdated": "2026-01-01T00:00:00Z",
			"autoUpdate": true
		}
	}`)

	marketplaces := NewDiscovery(env, nil).Marketplaces()
	entry, ok := marketplaces["official"]
	if !ok {
		t.Fatal("official marketplace missing")
	}
	if entry.Source.Repo != "anthropics/plugins" || !entry.AutoUpdate {
		t.Errorf("entry = %+v", entry)
	}
}
