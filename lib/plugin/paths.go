// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment carries the two pieces of ambient filesystem state every
// path computation depends on: the user's home directory and the caller's
// working directory. It is constructed once and injected into [Discovery]
// and [Service] so tests can point both at temporary directories without
// touching process-global state.
type Environment struct {
	// Home is the user's home directory.
	Home string

	// WorkDir is the directory the tool was invoked from. Project and
	// local scope mutations resolve against it.
	WorkDir string
}

// NewEnvironment resolves the home and working directories from the
// process environment. A missing home directory is fatal: no scope path
// can be computed without it.
func NewEnvironment() (Environment, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return Environment{}, ErrHomeDirNotFound
	}

	workDir, err := os.Getwd()
	if err != nil {
		return Environment{}, fmt.Errorf("resolving working directory: %w", err)
	}

	return Environment{Home: home, WorkDir: workDir}, nil
}

// claudeDir is the configuration directory name used by Claude Code,
// both under the home directory and under each project.
const claudeDir = ".claude"

// UserSettingsPath returns the global settings file.
func (e Environment) UserSettingsPath() string {
	return filepath.Join(e.Home, claudeDir, "settings.json")
}

// ProjectSettingsPath returns the shared settings file for a project
// directory.
func (e Environment) ProjectSettingsPath(projectDir string) string {
	return filepath.Join(projectDir, claudeDir, "settings.json")
}

// LocalSettingsPath returns the private settings file for a project
// directory.
func (e Environment) LocalSettingsPath(projectDir string) string {
	return filepath.Join(projectDir, claudeDir, "settings.local.json")
}

// SettingsPath returns the settings file a mutation against the given
// scope targets. Project and local scopes resolve against the caller's
// working directory: enable/disable always operates on "here".
func (e Environment) SettingsPath(scope Scope) string {
	switch scope {
	case ScopeProject:
		return e.ProjectSettingsPath(e.WorkDir)
	case ScopeLocal:
		return e.LocalSettingsPath(e.WorkDir)
	default:
		return e.UserSettingsPath()
	}
}

// RegistryPath returns the installed-plugins registry file.
func (e Environment) RegistryPath() string {
	return filepath.Join(e.Home, claudeDir, "plugins", "installed_plugins.json")
}

// MarketplacesPath returns the known-marketplaces registry file.
func (e Environment) MarketplacesPath() string {
	return filepath.Join(e.Home, claudeDir, "plugins", "known_marketplaces.json")
}

// ManifestPath returns the optional per-install manifest file for an
// installed plugin tree.
func ManifestPath(installPath string) string {
	return filepath.Join(installPath, ".claude-plugin", "plugin.json")
}
