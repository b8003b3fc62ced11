// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/ccpm-tools/ccpm/cmd/ccpm/cli"
	"github.com/ccpm-tools/ccpm/lib/lockfile"
	"github.com/ccpm-tools/ccpm/lib/plugin"
)

// MarketplaceCommand returns the "marketplace" subcommand group.
func MarketplaceCommand() *cli.Command {
	return &cli.Command{
		Name:    "marketplace",
		Summary: "Marketplace registry commands",
		Description: `Inspect and adjust the known-marketplaces registry
(~/.claude/plugins/known_marketplaces.json).`,
		Subcommands: []*cli.Command{
			marketplaceListCommand(),
			marketplaceAutoUpdateCommand(),
		},
	}
}

func marketplaceListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Summary: "List known marketplaces",
		Usage:   "ccpm marketplace list",
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, err := plugin.NewEnvironment()
			if err != nil {
				return cli.Internal("resolve environment: %w", err)
			}
			marketplaces := plugin.NewDiscovery(env, logger).Marketplaces()

			if len(marketplaces) == 0 {
				fmt.Println("No marketplaces registered.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSOURCE\tAUTO-UPDATE\tLAST UPDATED")
			for _, name := range slices.Sorted(maps.Keys(marketplaces)) {
				entry := marketplaces[name]
				autoUpdate := "off"
				if entry.AutoUpdate {
					autoUpdate = "on"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					name, sourceLabel(entry.Source), autoUpdate, entry.LastUpdated)
			}
			return tw.Flush()
		},
	}
}

func marketplaceAutoUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:    "auto-update",
		Summary: "Toggle auto-update for a marketplace",
		Description: `Flip the autoUpdate flag on one marketplace entry. Prints the new
state after the write.`,
		Usage: "ccpm marketplace auto-update <name>",
		Examples: []cli.Example{
			{
				Description: "Toggle auto-update for a marketplace",
				Command:     "ccpm marketplace auto-update acme-tools",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one marketplace name")
			}
			name := args[0]

			env, err := plugin.NewEnvironment()
			if err != nil {
				return cli.Internal("resolve environment: %w", err)
			}
			service := plugin.NewService(env, logger)

			enabled, err := service.ToggleAutoUpdate(name)
			if err != nil {
				var notFound *plugin.MarketplaceNotFoundError
				if errors.As(err, &notFound) {
					return cli.NotFound("%s", notFound)
				}
				var conflict *lockfile.ConflictError
				if errors.As(err, &conflict) {
					return cli.Conflict("%s", conflict)
				}
				return cli.Internal("toggle auto-update for %s: %w", name, err)
			}

			state := "off"
			if enabled {
				state = "on"
			}
			fmt.Printf("Auto-update for %s is now %s\n", name, state)
			return nil
		},
	}
}

// sourceLabel renders a marketplace source as "kind:repo", or just the
// kind when no repo is recorded.
func sourceLabel(source plugin.MarketplaceSource) string {
	if source.Repo != "" {
		return source.Source + ":" + source.Repo
	}
	return source.Source
}
