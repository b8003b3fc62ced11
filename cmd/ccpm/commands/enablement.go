// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/ccpm-tools/ccpm/cmd/ccpm/cli"
	"github.com/ccpm-tools/ccpm/lib/config"
	"github.com/ccpm-tools/ccpm/lib/lockfile"
	"github.com/ccpm-tools/ccpm/lib/plugin"
)

// EnableCommand returns the "enable" subcommand.
func EnableCommand() *cli.Command {
	return enablementCommand("enable", true)
}

// DisableCommand returns the "disable" subcommand.
func DisableCommand() *cli.Command {
	return enablementCommand("disable", false)
}

// enablementCommand builds the enable and disable subcommands, which
// differ only in the value written.
func enablementCommand(name string, enabled bool) *cli.Command {
	var scopeFlag string

	summary := "Enable a plugin in a settings scope"
	if !enabled {
		summary = "Disable a plugin in a settings scope"
	}

	return &cli.Command{
		Name:    name,
		Summary: summary,
		Description: fmt.Sprintf(`%s a plugin by writing an explicit entry to one settings scope.

The scope defaults to the defaultScope preference from the ccpm
config file, or user when unset. Writing to the project or local
scope targets the current directory's .claude settings.`, titleCase(name)),
		Usage: fmt.Sprintf("ccpm %s <plugin> [flags]", name),
		Examples: []cli.Example{
			{
				Description: fmt.Sprintf("%s a plugin in the user scope", titleCase(name)),
				Command:     fmt.Sprintf("ccpm %s formatter@acme-tools", name),
			},
			{
				Description: fmt.Sprintf("%s a plugin in this project's shared settings", titleCase(name)),
				Command:     fmt.Sprintf("ccpm %s formatter@acme-tools --scope project", name),
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
			flagSet.StringVarP(&scopeFlag, "scope", "s", "", "scope to write (user, project, local)")
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one plugin ID (name@marketplace)")
			}
			id := args[0]

			if scopeFlag == "" {
				scopeFlag = config.Load(logger).DefaultScope
			}
			scope, err := plugin.ParseScope(scopeFlag)
			if err != nil {
				return cli.Validation("%s", err)
			}

			env, err := plugin.NewEnvironment()
			if err != nil {
				return cli.Internal("resolve environment: %w", err)
			}
			service := plugin.NewService(env, logger)

			if err := service.SetEnabled(id, scope, enabled); err != nil {
				var conflict *lockfile.ConflictError
				if errors.As(err, &conflict) {
					return cli.Conflict("%s", conflict)
				}
				return cli.Internal("%s %s: %w", name, id, err)
			}

			if enabled {
				fmt.Printf("Enabled %s in %s scope\n", id, scope)
			} else {
				fmt.Printf("Disabled %s in %s scope\n", id, scope)
			}
			return nil
		},
	}
}

// titleCase uppercases the first byte of an ASCII command name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
