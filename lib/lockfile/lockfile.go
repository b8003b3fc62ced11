// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

// Package lockfile provides single-shot exclusive locks over settings
// files shared between independently launched processes.
//
// Two mechanisms layer together. An OS advisory lock on the open lock
// file handle is the actual mutual exclusion between cooperating
// processes. The lock file's JSON content ({pid, timestamp}) adds
// human-debuggable metadata and cross-invocation staleness recovery: a
// lock left behind by a killed process is detected by probing whether
// its recorded PID is still alive, without any heartbeat protocol.
//
// Acquisition never blocks or retries. A lock held by a live process is
// an immediate [ConflictError]; retry policy, if any, belongs to the
// caller.
package lockfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Metadata is the lock file content.
type Metadata struct {
	PID       int       `json:"pid"`
	Timestamp time.Time `json:"timestamp"`
}

// ConflictError reports that the lock is held by a live process.
type ConflictError struct {
	// Path is the lock file.
	Path string

	// PID is the owning process recorded in the lock file.
	PID int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s is locked by running process %d", e.Path, e.PID)
}

// Guard holds an acquired lock. Release it on every exit path,
// typically with defer.
type Guard struct {
	path     string
	file     *os.File
	released bool
}

// LockPath returns the companion lock file for a protected path: the
// final extension replaced with ".lock" (settings.json → settings.lock).
func LockPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".lock"
}

// Acquire takes an exclusive lock protecting the given path. It is a
// single non-blocking attempt: a lock held by a live process fails
// immediately with [ConflictError], a stale lock (dead or unparsable
// owner) is silently replaced.
func Acquire(path string) (*Guard, error) {
	lockPath := LockPath(path)

	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	// An existing lock file is a conflict only if its recorded owner is
	// still alive. Unreadable or unparsable metadata means a previous
	// owner died mid-write; treat it as stale and overwrite.
	if data, err := os.ReadFile(lockPath); err == nil {
		var metadata Metadata
		if err := json.Unmarshal(data, &metadata); err == nil {
			if processAlive(metadata.PID) {
				return nil, &ConflictError{Path: lockPath, PID: metadata.PID}
			}
			os.Remove(lockPath)
		}
	}

	file, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating lock file %s: %w", lockPath, err)
	}

	// The advisory lock catches contention the liveness check cannot:
	// another process that passed the staleness check in the same
	// window, or a non-cooperating locker on the same host.
	if err := flockExclusive(file); err != nil {
		file.Close()
		return nil, fmt.Errorf("locking %s: %w", lockPath, err)
	}

	metadata := Metadata{PID: os.Getpid(), Timestamp: time.Now().UTC()}
	data, err := json.Marshal(metadata)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("encoding lock metadata: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(lockPath)
		return nil, fmt.Errorf("writing lock metadata to %s: %w", lockPath, err)
	}

	return &Guard{path: lockPath, file: file}, nil
}

// Release deletes the lock file and drops the advisory lock. Deletion is
// best-effort: the advisory lock, not the file's existence, is the
// safety mechanism, and the file may already be gone. Safe to call more
// than once.
func (g *Guard) Release() {
	if g.released {
		return
	}
	g.released = true

	// Remove before close: we still hold the advisory lock during the
	// unlink, so we can only ever delete our own lock file.
	os.Remove(g.path)
	g.file.Close()
}
