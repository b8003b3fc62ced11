// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "ccpm",
		Subcommands: []*Command{
			{
				Name: "list",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "list"
					return nil
				},
			},
			{
				Name: "info",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "info"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"info"}, testLogger()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "info" {
		t.Errorf("dispatched to %q, want %q", called, "info")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "ccpm",
		Subcommands: []*Command{
			{
				Name: "marketplace",
				Subcommands: []*Command{
					{
						Name: "list",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							called = "marketplace list"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"marketplace", "list", "extra-arg"}, testLogger()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "marketplace list" {
		t.Errorf("dispatched to %q, want %q", called, "marketplace list")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra-arg" {
		t.Errorf("args = %v, want [extra-arg]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var scope string
	var target string

	command := &Command{
		Name: "enable",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("enable", pflag.ContinueOnError)
			flagSet.StringVar(&scope, "scope", "user", "settings scope")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--scope", "local", "formatter@acme"}, testLogger()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if scope != "local" {
		t.Errorf("scope = %q, want local", scope)
	}
	if target != "formatter@acme" {
		t.Errorf("target = %q, want formatter@acme", target)
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "ccpm",
		Subcommands: []*Command{
			{Name: "list"},
			{Name: "enable"},
			{Name: "disable"},
		},
	}

	err := root.Execute(context.Background(), []string{"enbale"}, testLogger())
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "enable"`) {
		t.Errorf("error %q should suggest enable", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.Bool("enabled", false, "")
			flagSet.String("scope", "all", "")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--enbaled"}, testLogger())
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "--enabled") {
		t.Errorf("error %q should suggest --enabled", err)
	}
}

func TestCommand_Execute_SubcommandRequiredWithoutRun(t *testing.T) {
	root := &Command{
		Name:        "marketplace",
		Subcommands: []*Command{{Name: "list"}},
	}
	if err := root.Execute(context.Background(), nil, testLogger()); err == nil {
		t.Fatal("expected error when no subcommand given")
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	root := &Command{
		Name:    "ccpm",
		Summary: "Claude Code plugin manager",
		Subcommands: []*Command{
			{Name: "list", Summary: "List installed plugins"},
			{Name: "enable", Summary: "Enable a plugin"},
		},
		Examples: []Example{
			{Description: "List plugins", Command: "ccpm list"},
		},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{"list", "List installed plugins", "enable", "Examples:", "ccpm list"} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	child := &Command{Name: "list"}
	parent := &Command{Name: "marketplace", Subcommands: []*Command{child}}
	root := &Command{Name: "ccpm", Subcommands: []*Command{parent}}

	// Dispatch wires parent pointers.
	_ = root.Execute(context.Background(), []string{"marketplace", "list"}, testLogger())

	if got := child.fullName(); got != "ccpm marketplace list" {
		t.Errorf("fullName() = %q, want %q", got, "ccpm marketplace list")
	}
}
