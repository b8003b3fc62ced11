// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so the top-level handler can
// choose an exit status without parsing error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing required arguments, wrong argument count, unparseable
	// values. The caller should fix the invocation and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not exist:
	// unknown plugin ID, unknown marketplace. Retrying with the same
	// parameters will not help.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryConflict indicates the operation conflicts with existing
	// state, such as another process holding a settings lock.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryInternal indicates an unexpected error: bugs, I/O
	// failures, parse errors on data the system produced.
	CategoryInternal ErrorCategory = "internal"
)

// CommandError is a categorized error returned by CLI commands. The
// top-level handler in main maps the category to a process exit status.
//
// CommandError wraps an inner error, preserving the full chain for
// errors.Is and errors.As. Use the category-specific constructors
// (Validation, NotFound, etc.) rather than constructing it directly.
type CommandError struct {
	// Category classifies the error for exit-status selection.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

func (e *CommandError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and errors.As
// to walk the full chain through the CommandError wrapper.
func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode maps the category to a process exit status: validation and
// lookup failures exit 2, everything else exits 1.
func (e *CommandError) ExitCode() int {
	switch e.Category {
	case CategoryValidation, CategoryNotFound:
		return 2
	default:
		return 1
	}
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error: the operation conflicts with existing state.
func Conflict(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
