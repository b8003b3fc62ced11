// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

// Package plugin implements the scope resolution and mutation engine for
// Claude Code plugins.
//
// Claude Code tracks two independent kinds of state for every plugin: an
// installation record (which marketplace it came from, where it lives on
// disk, which scope it was installed into) and per-scope enabled settings.
// The two are stored in separate files and can disagree — a plugin can be
// enabled in a settings file without being installed, and installed without
// any settings entry. This package reconciles them.
//
// Settings live in three overlapping scopes:
//
//   - user:    ~/.claude/settings.json (global)
//   - project: <project>/.claude/settings.json (shared, committed)
//   - local:   <project>/.claude/settings.local.json (private)
//
// The effective enabled state of a plugin is the first explicit value in
// local → project → user order; a plugin with no setting in any scope is
// disabled. An explicit false in a higher-precedence scope overrides an
// explicit true below it — only absence yields to a lower scope.
//
// Discovery ([Discovery.DiscoverAll]) merges the installation registry with
// settings from every relevant scope into read-only [Plugin] snapshots.
// For project- and local-scoped installs the project/local settings consulted
// are those of the install's own originating project directory, not the
// caller's working directory. Discovery never fails: unreadable or malformed
// files are treated as absent.
//
// Mutation ([Service]) rewrites exactly one scope's settings document at a
// time, holding an exclusive lock (lib/lockfile) for the duration of the
// load-modify-write and publishing the new document with an atomic rename
// (lib/atomicfile) so concurrent readers never observe a partial file.
package plugin
