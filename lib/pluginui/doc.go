// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

// Package pluginui implements the interactive plugin manager: a
// bubbletea TUI that lists every discovered plugin, shows its settings
// across scopes, and drives enable/disable mutations through the
// plugin service.
//
// The model is a plain value; all mutations run synchronously inside
// Update because settings writes are short-lived local file operations.
// After every successful mutation the in-memory view is patched in
// place rather than re-running discovery, so the cursor and filter
// state survive. The r key forces a full reload.
package pluginui
