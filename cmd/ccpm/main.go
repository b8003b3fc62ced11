// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/ccpm-tools/ccpm/cmd/ccpm/cli"
	"github.com/ccpm-tools/ccpm/cmd/ccpm/commands"
	"github.com/ccpm-tools/ccpm/lib/config"
	"github.com/ccpm-tools/ccpm/lib/plugin"
	"github.com/ccpm-tools/ccpm/lib/pluginui"
	"github.com/ccpm-tools/ccpm/lib/version"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output return an ExitError
		// with the desired code; don't add a redundant "error:" line.
		var silent *cli.ExitError
		if errors.As(err, &silent) {
			os.Exit(silent.Code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]
	if len(args) > 0 && (args[0] == "--version" || args[0] == "-V") {
		fmt.Printf("ccpm %s\n", version.Info())
		return nil
	}

	logger := cli.NewCommandLogger(os.Getenv("CCPM_DEBUG") != "")

	// No subcommand launches the interactive plugin manager.
	if len(args) == 0 {
		return runManager(logger)
	}
	return commands.Root().Execute(context.Background(), args, logger)
}

// runManager launches the interactive TUI. Refuses to start when
// stdout is not a terminal so accidental invocations in scripts fail
// fast with a hint instead of emitting escape sequences.
func runManager(logger *slog.Logger) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal; run 'ccpm --help' for command usage")
	}

	env, err := plugin.NewEnvironment()
	if err != nil {
		return fmt.Errorf("resolve environment: %w", err)
	}
	prefs := config.Load(logger)

	model := pluginui.NewModel(env, logger, prefs)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
