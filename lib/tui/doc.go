// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared building blocks for ccpm's terminal UI:
// the color theme and ANSI-aware overlay splicing used to draw modal
// dialogs over a rendered view.
package tui
