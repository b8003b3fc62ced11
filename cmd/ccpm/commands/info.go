// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ccpm-tools/ccpm/cmd/ccpm/cli"
	"github.com/ccpm-tools/ccpm/lib/plugin"
)

// InfoCommand returns the "info" subcommand.
func InfoCommand() *cli.Command {
	return &cli.Command{
		Name:    "info",
		Summary: "Show plugin details",
		Description: `Show full details for one plugin: identity, manifest metadata,
install location, and the enabled state in every settings scope.

Exits with status 1 when the plugin is not installed.`,
		Usage: "ccpm info <plugin>",
		Examples: []cli.Example{
			{
				Description: "Inspect a plugin",
				Command:     "ccpm info formatter@acme-tools",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one plugin ID (name@marketplace)")
			}
			id := args[0]

			env, err := plugin.NewEnvironment()
			if err != nil {
				return cli.Internal("resolve environment: %w", err)
			}
			plugins := plugin.NewDiscovery(env, logger).DiscoverAll()

			var found *plugin.Plugin
			for _, p := range plugins {
				if p.ID == id {
					found = p
					break
				}
			}
			if found == nil {
				fmt.Printf("Plugin %q not found.\n", id)
				return &cli.ExitError{Code: 1}
			}

			printInfo(found)
			return nil
		},
	}
}

func printInfo(p *plugin.Plugin) {
	fmt.Printf("Name:        %s\n", p.Name)
	fmt.Printf("Marketplace: %s\n", p.Marketplace)
	fmt.Printf("ID:          %s\n", p.ID)

	status := "disabled"
	if p.IsEnabled() {
		status = "enabled"
	}
	fmt.Printf("Status:      %s\n", status)
	fmt.Printf("Installed:   %s\n", installedDescription(p))
	fmt.Printf("Enabled in:  %s\n", p.EnabledContext())

	if p.InstallScope != plugin.ScopeUser && p.ProjectPath != "" {
		fmt.Printf("Project:     %s\n", p.ProjectPath)
	}
	if p.Version != "" {
		fmt.Printf("Version:     %s\n", p.Version)
	}
	if p.VersionMismatch() {
		fmt.Printf("Registry:    %s (manifest and registry disagree)\n", p.RegistryVersion)
	}
	if p.Author != nil {
		if p.Author.Email != "" {
			fmt.Printf("Author:      %s <%s>\n", p.Author.Name, p.Author.Email)
		} else {
			fmt.Printf("Author:      %s\n", p.Author.Name)
		}
	}
	if p.InstallPath != "" {
		fmt.Printf("Path:        %s\n", p.InstallPath)
	}
	if p.Description != "" {
		fmt.Printf("\nDescription:\n%s\n", p.Description)
	}
}

// installedDescription renders the install scope plus whether the install
// belongs to the current project.
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
