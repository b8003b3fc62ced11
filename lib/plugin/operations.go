// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ccpm-tools/ccpm/lib/atomicfile"
	"github.com/ccpm-tools/ccpm/lib/lockfile"
)

// Service mutates enabled/disabled settings. Every mutation is a
// load-modify-write of exactly one file, performed under an exclusive
// lock and published with an atomic rename.
type Service struct {
	env    Environment
	logger *slog.Logger
}

// NewService creates a Service over the given environment. A nil logger
// discards diagnostics.
func NewService(env Environment, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{env: env, logger: logger}
}

// Enable sets the plugin to enabled in the given scope.
func (s *Service) Enable(id string, scope Scope) error {
	return s.SetEnabled(id, scope, true)
}

// Disable sets the plugin to disabled in the given scope. This writes an
// explicit false, which overrides an enable in a lower-precedence scope —
// it is not the same as removing the setting.
func (s *Service) Disable(id string, scope Scope) error {
	return s.SetEnabled(id, scope, false)
}

// SetEnabled writes a single enabled/disabled entry into one scope's
// settings document. A missing or unreadable document is replaced by an
// empty one, so setting a value on a pristine scope works; write, lock,
// and conflict failures surface to the caller.
func (s *Service) SetEnabled(id string, scope Scope, enabled bool) error {
	path := s.env.SettingsPath(scope)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return writeError(filepath.Dir(path), err)
	}

	guard, err := lockfile.Acquire(path)
	if err != nil {
		return err
	}
	defer guard.Release()

	document := loadSettings(s.logger, path)
	document.EnabledPlugins[id] = enabled

	if err := s.writeDocument(path, document); err != nil {
		return err
	}

	s.logger.Debug("updated plugin setting",
		"plugin", id, "scope", string(scope), "enabled", enabled, "path", path)
	return nil
}

// Toggle flips a plugin's effective enabled state, writing the negation
// into the plugin's install scope. Note that the install scope is not
// necessarily the scope currently winning precedence: toggling a
// project-scope install leaves a local override in place, so the
// effective state the user observes may not change. This mirrors the
// behavior of Claude Code's own toggle.
func (s *Service) Toggle(p *Plugin) (bool, error) {
	newState := !p.IsEnabled()
	if err := s.SetEnabled(p.ID, p.InstallScope, newState); err != nil {
		return false, err
	}
	return newState, nil
}

// ToggleAutoUpdate flips a marketplace's autoUpdate flag in the
// known-marketplaces registry and returns the new value. Unlike settings
// mutations, a missing marketplace is an error: there is no meaningful
// default entry to create.
func (s *Service) ToggleAutoUpdate(name string) (bool, error) {
	path := s.env.MarketplacesPath()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, writeError(filepath.Dir(path), err)
	}

	guard, err := lockfile.Acquire(path)
	if err != nil {
		return false, err
	}
	defer guard.Release()

	marketplaces := loadMarketplaces(s.logger, path)
	entry, ok := marketplaces[name]
	if !ok {
		return false, &MarketplaceNotFoundError{Name: name}
	}

	entry.AutoUpdate = !entry.AutoUpdate
	marketplaces[name] = entry

	if err := s.writeDocument(path, marketplaces); err != nil {
		return false, err
	}
	return entry.AutoUpdate, nil
}

// AutoUpdate returns a marketplace's current autoUpdate flag.
func (s *Service) AutoUpdate(name string) (bool, error) {
	marketplaces := loadMarketplaces(s.logger, s.env.MarketplacesPath())
	entry, ok := marketplaces[name]
	if !ok {
		return false, &MarketplaceNotFoundError{Name: name}
	}
	return entry.AutoUpdate, nil
}

// writeDocument marshals a document and atomically replaces the file at
// path. The rename is the sole visible mutation: a concurrent reader
// sees the old or the new complete document, never a partial one.
func (s *Service) writeDocument(path string, document any) error {
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	data = append(data, '\n')

	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return writeError(path, err)
	}
	return nil
}
