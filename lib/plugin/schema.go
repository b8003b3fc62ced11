// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"encoding/json"
)

// enabledPluginsKey is the one settings field this tool understands.
const enabledPluginsKey = "enabledPlugins"

// SettingsDocument is one scope's settings file. Claude Code stores many
// unrelated fields in the same file (model selection, permissions, hooks);
// this tool only interprets enabledPlugins and must round-trip everything
// else byte-for-byte so a rewrite never destroys settings it does not
// understand.
type SettingsDocument struct {
	// EnabledPlugins maps plugin ID to an explicit enabled/disabled value.
	// A missing key means the scope takes no position on that plugin.
	EnabledPlugins map[string]bool

	// Extra holds every top-level field other than enabledPlugins,
	// preserved verbatim for the rewrite.
	Extra map[string]json.RawMessage
}

// NewSettingsDocument returns an empty document, the default for a scope
// whose settings file is missing or unreadable.
func NewSettingsDocument() *SettingsDocument {
	return &SettingsDocument{EnabledPlugins: map[string]bool{}}
}

// UnmarshalJSON splits the document into the enabledPlugins mapping and
// the opaque remainder.
func (d *SettingsDocument) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	d.EnabledPlugins = map[string]bool{}
	d.Extra = map[string]json.RawMessage{}

	for key, value := range fields {
		if key == enabledPluginsKey {
			if err := json.Unmarshal(value, &d.EnabledPlugins); err != nil {
				return err
			}
			continue
		}
		d.Extra[key] = value
	}
	return nil
}

// MarshalJSON reassembles the document: pass-through fields plus the
// current enabledPlugins mapping. Key order is the encoder's sorted map
// order, which keeps rewrites deterministic.
func (d *SettingsDocument) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(d.Extra)+1)
	for key, value := range d.Extra {
		fields[key] = value
	}

	enabled, err := json.Marshal(d.EnabledPlugins)
	if err != nil {
		return nil, err
	}
	fields[enabledPluginsKey] = enabled

	return json.Marshal(fields)
}

// registryVersion is the installed_plugins.json format version this tool
// understands. The file is written by Claude Code; we never migrate it.
const registryVersion = 2

// Registry is the installed-plugins registry
// (~/.claude/plugins/installed_plugins.json). Installation records are
// independent of enabled/disabled settings.
type Registry struct {
	Version int                       `json:"version"`
	Plugins map[string][]InstallEntry `json:"plugins"`
}

// NewRegistry returns an empty registry, the default when the file is
// missing or unreadable.
func NewRegistry() *Registry {
	return &Registry{Version: registryVersion, Plugins: map[string][]InstallEntry{}}
}

// InstallEntry is one installation record for a plugin. A plugin ID maps
// to an ordered list of entries; only the first (most recent) is
// authoritative.
type InstallEntry struct {
	// Scope is the scope the plugin was installed into ("user",
	// "project", or "local").
	Scope string `json:"scope"`

	// InstallPath is the absolute path of the installed plugin tree.
	InstallPath string `json:"installPath"`

	// Version is the version recorded at install time.
	Version string `json:"version"`

	InstalledAt string `json:"installedAt"`
	LastUpdated string `json:"lastUpdated"`

	// GitCommitSha identifies a local checkout, when the plugin was
	// installed from one.
	GitCommitSha string `json:"gitCommitSha,omitempty"`

	// IsLocal marks plugins installed from a local path rather than a
	// marketplace.
	IsLocal bool `json:"isLocal,omitempty"`

	// ProjectPath is the project directory a project- or local-scoped
	// install is bound to. Older registry entries may omit it.
	ProjectPath string `json:"projectPath,omitempty"`
}

// Marketplaces is the known-marketplaces registry
// (~/.claude/plugins/known_marketplaces.json). The document is a flat
// mapping from marketplace name to entry.
type Marketplaces map[string]MarketplaceEntry

// MarketplaceEntry describes one registered marketplace.
type MarketplaceEntry struct {
	Source          MarketplaceSource `json:"source"`
	InstallLocation string            `json:"installLocation"`
	LastUpdated     string            `json:"lastUpdated"`
	AutoUpdate      bool              `json:"autoUpdate"`
}

// MarketplaceSource identifies where a marketplace is fetched from.
type MarketplaceSource struct {
	Source string `json:"source"`
	Repo   string `json:"repo"`
}

// Manifest is the optional per-install metadata file at
// <installPath>/.claude-plugin/plugin.json. When present and readable,
// its fields take priority over registry-derived values.
type Manifest struct {
	Name        string                          `json:"name"`
	Description string                          `json:"description,omitempty"`
	Version     string                          `json:"version,omitempty"`
	Author      *Author                         `json:"author,omitempty"`
	McpServers  map[string]ManifestMcpServer    `json:"mcpServers,omitempty"`
}

// Author is plugin author metadata from the manifest.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// ManifestMcpServer declares an MCP server shipped by a plugin. This tool
// only displays the server names; launching them is Claude Code's job.
type ManifestMcpServer struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}
