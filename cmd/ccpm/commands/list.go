// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/ccpm-tools/ccpm/cmd/ccpm/cli"
	"github.com/ccpm-tools/ccpm/lib/plugin"
)

// ListCommand returns the "list" subcommand.
func ListCommand() *cli.Command {
	var scopeFlag string
	var onlyEnabled bool
	var onlyDisabled bool
	var debug bool

	return &cli.Command{
		Name:    "list",
		Summary: "List installed plugins",
		Description: `List every plugin known to Claude Code, merged from the install
registry and the three settings scopes.

The INSTALLED column shows the scope the plugin was installed into;
a trailing * marks a project- or local-scope install that belongs to
a different project than the current directory. ENABLED IN shows
which scopes carry an explicit enable.`,
		Usage: "ccpm list [flags]",
		Examples: []cli.Example{
			{
				Description: "List all plugins",
				Command:     "ccpm list",
			},
			{
				Description: "List only disabled user-scope plugins",
				Command:     "ccpm list --scope user --disabled",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.StringVarP(&scopeFlag, "scope", "s", "all", "filter by install scope (all, user, project, local)")
			flagSet.BoolVarP(&onlyEnabled, "enabled", "e", false, "show only enabled plugins")
			flagSet.BoolVarP(&onlyDisabled, "disabled", "d", false, "show only disabled plugins")
			flagSet.BoolVar(&debug, "debug", false, "show per-scope settings and project paths on stderr")
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			filter, err := plugin.ParseScopeFilter(scopeFlag)
			if err != nil {
				return cli.Validation("%s", err)
			}

			env, err := plugin.NewEnvironment()
			if err != nil {
				return cli.Internal("resolve environment: %w", err)
			}
			plugins := plugin.NewDiscovery(env, logger).DiscoverAll()

			if debug {
				fmt.Fprintf(os.Stderr, "DEBUG: loaded %d plugins\n", len(plugins))
				for _, p := range plugins {
					fmt.Fprintf(os.Stderr,
						"DEBUG: %s -> user=%s project=%s local=%s -> enabled=%t project_path=%q\n",
						p.ID, p.EnabledUser, p.EnabledProject, p.EnabledLocal,
						p.IsEnabled(), p.ProjectPath)
				}
				fmt.Fprintln(os.Stderr)
			}

			var filtered []*plugin.Plugin
			for _, p := range plugins {
				if !filter.Matches(p.InstallScope) {
					continue
				}
				if onlyEnabled && !p.IsEnabled() {
					continue
				}
				if onlyDisabled && !onlyEnabled && p.IsEnabled() {
					continue
				}
				filtered = append(filtered, p)
			}

			if len(filtered) == 0 {
				fmt.Println("No plugins found.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "NAME\tMARKETPLACE\tSTATUS\tINSTALLED\tENABLED IN")
			for _, p := range filtered {
				status := "disabled"
				if p.IsEnabled() {
					status = "enabled"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					p.Name, p.Marketplace, status, installedLabel(p), p.EnabledContext())
			}
			return tw.Flush()
		},
	}
}

// installedLabel renders the INSTALLED column: the install scope, with a
// trailing * for installs bound to a different project.
func installedLabel(p *plugin.Plugin) string {
	label := string(p.InstallScope)
	if p.InstallScope != plugin.ScopeUser && !p.IsCurrentProject {
		label += "*"
	}
	return label
}
