// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/tidwall/jsonc"
)

// decodeFile reads a JSON document from disk. Comments and trailing
// commas are tolerated on the way in (Claude writes plain JSON, but the
// settings files are hand-edited often enough that strictness only
// manufactures "absent" documents); writes are always plain JSON.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Op: "read", Path: path, Err: err}
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), v); err != nil {
		return &ConfigError{Op: "parse", Path: path, Err: err}
	}
	return nil
}

// logSoftFailure records a read/parse failure that discovery is about to
// paper over with a default document. A missing file is the normal case
// and not worth logging.
func logSoftFailure(logger *slog.Logger, what string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	logger.Warn("using defaults for unreadable file", "document", what, "error", err)
}

// loadSettings reads one scope's settings document, substituting an empty
// document on any failure.
func loadSettings(logger *slog.Logger, path string) *SettingsDocument {
	document := NewSettingsDocument()
	if err := decodeFile(path, document); err != nil {
		logSoftFailure(logger, "settings", err)
		return NewSettingsDocument()
	}
	return document
}

// loadRegistry reads the installed-plugins registry, substituting an
// empty registry on any failure.
func loadRegistry(logger *slog.Logger, path string) *Registry {
	registry := NewRegistry()
	if err := decodeFile(path, registry); err != nil {
		logSoftFailure(logger, "registry", err)
		return NewRegistry()
	}
	if registry.Plugins == nil {
		registry.Plugins = map[string][]InstallEntry{}
	}
	return registry
}

// loadMarketplaces reads the known-marketplaces registry, substituting an
// empty mapping on any failure.
func loadMarketplaces(logger *slog.Logger, path string) Marketplaces {
	marketplaces := Marketplaces{}
	if err := decodeFile(path, &marketplaces); err != nil {
		logSoftFailure(logger, "marketplaces", err)
		return Marketplaces{}
	}
	return marketplaces
}

// loadManifest reads a per-install manifest. Returns nil on any failure:
// a manifest is optional metadata and its absence is not an error.
func loadManifest(logger *slog.Logger, path string) *Manifest {
	var manifest Manifest
	if err := decodeFile(path, &manifest); err != nil {
		logSoftFailure(logger, "manifest", err)
		return nil
	}
	return &manifest
}
