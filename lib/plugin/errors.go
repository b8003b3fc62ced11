// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"errors"
	"fmt"
)

// ErrHomeDirNotFound is returned when the user's home directory cannot be
// determined. Without it no scope path can be computed, so this is fatal
// at startup rather than a soft per-file failure.
var ErrHomeDirNotFound = errors.New("home directory not found")

// ConfigError describes a failure reading, parsing, or writing one of the
// persisted JSON documents. Discovery swallows these (a broken file is
// treated as absent); mutation surfaces write failures to the caller.
type ConfigError struct {
	// Op is "read", "parse", or "write".
	Op string

	// Path is the offending file.
	Path string

	// Err is the underlying I/O or decode error.
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s config file %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func writeError(path string, err error) error {
	return &ConfigError{Op: "write", Path: path, Err: err}
}

// NotFoundError is returned when an operation references a plugin ID that
// discovery does not know about.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("plugin not found: %s", e.ID)
}

// MarketplaceNotFoundError is returned when an auto-update operation
// references a marketplace absent from known_marketplaces.json.
type MarketplaceNotFoundError struct {
	Name string
}

func (e *MarketplaceNotFoundError) Error() string {
	return fmt.Sprintf("marketplace not found: %s", e.Name)
}
