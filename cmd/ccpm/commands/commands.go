// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete ccpm CLI command tree. The main
// binary dispatches into this tree when invoked with arguments; with no
// arguments it launches the interactive plugin manager instead.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ccpm-tools/ccpm/cmd/ccpm/cli"
	"github.com/ccpm-tools/ccpm/lib/version"
)

// Root builds and returns the complete ccpm CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "ccpm",
		Description: `ccpm: Claude Code plugin manager.

List, inspect, enable, and disable Claude Code plugins across the
user, project, and local settings scopes. Run with no arguments to
open the interactive plugin manager.`,
		Subcommands: []*cli.Command{
			ListCommand(),
			EnableCommand(),
			DisableCommand(),
			InfoCommand(),
			MarketplaceCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					fmt.Printf("ccpm %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "List every installed plugin",
				Command:     "ccpm list",
			},
			{
				Description: "List only enabled project-scope plugins",
				Command:     "ccpm list --scope project --enabled",
			},
			{
				Description: "Enable a plugin in the user scope",
				Command:     "ccpm enable formatter@acme-tools",
			},
			{
				Description: "Disable a plugin in this project's local settings",
				Command:     "ccpm disable formatter@acme-tools --scope local",
			},
			{
				Description: "Show full details for a plugin",
				Command:     "ccpm info formatter@acme-tools",
			},
			{
				Description: "List known marketplaces",
				Command:     "ccpm marketplace list",
			},
		},
	}
}
