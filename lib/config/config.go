// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides preference loading for ccpm.
//
// Preferences are loaded from a single YAML file specified by the
// CCPM_CONFIG environment variable, falling back to
// ~/.config/ccpm/config.yaml. Unlike the Claude Code settings documents
// this tool manages, the preferences file belongs to ccpm itself: it is
// optional, and a missing file simply yields defaults. A present but
// malformed file is reported and ignored rather than blocking the tool,
// since every preference has a usable default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds ccpm's own preferences.
type Config struct {
	// DefaultScope is the settings scope enable and disable write to
	// when no --scope flag is given. One of "user", "project", "local".
	DefaultScope string `yaml:"default_scope"`

	// ConfirmRemove controls whether the interactive manager asks for
	// confirmation before removing a plugin.
	ConfirmRemove bool `yaml:"confirm_remove"`

	// Theme overrides the interactive manager's colors.
	Theme ThemeConfig `yaml:"theme"`
}

// ThemeConfig overrides individual TUI colors. Empty fields keep the
// built-in color.
type ThemeConfig struct {
	// Accent is the highlight color as a hex string (e.g. "#7aa2f7").
	Accent string `yaml:"accent"`

	// Muted is the secondary text color as a hex string.
	Muted string `yaml:"muted"`
}

// Default returns the default preferences, used as the base before
// loading the file and as the result when no file exists.
func Default() Config {
	return Config{
		DefaultScope:  "user",
		ConfirmRemove: true,
	}
}

// Load loads preferences from CCPM_CONFIG, falling back to
// ~/.config/ccpm/config.yaml. Missing files yield defaults silently;
// unreadable or malformed files yield defaults with a warning.
func Load(logger *slog.Logger) Config {
	path := os.Getenv("CCPM_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default()
		}
		path = filepath.Join(home, ".config", "ccpm", "config.yaml")
	}

	cfg, err := LoadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && logger != nil {
			logger.Warn("ignoring unreadable config file", "path", path, "error", err)
		}
		return Default()
	}
	return cfg
}

// LoadFile loads preferences from a specific file path, merging over the
// defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DefaultScope {
	case "user", "project", "local":
		return nil
	}
	return fmt.Errorf("invalid default_scope %q (expected user, project, or local)", c.DefaultScope)
}
