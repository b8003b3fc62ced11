// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package lockfile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLockPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/a/settings.json", "/a/settings.lock"},
		{"/a/settings.local.json", "/a/settings.local.lock"},
		{"/a/noext", "/a/noext.lock"},
	}
	for _, test := range tests {
		if got := LockPath(test.path); got != test.want {
			t.Errorf("LockPath(%q) = %q, want %q", test.path, got, test.want)
		}
	}
}

func TestAcquireWritesMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	guard, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer guard.Release()

	data, err := os.ReadFile(LockPath(path))
	if err != nil {
		t.Fatalf("reading lock file: %v", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		t.Fatalf("lock metadata does not parse: %v", err)
	}
	if metadata.PID != os.Getpid() {
		t.Errorf("pid = %d, want %d", metadata.PID, os.Getpid())
	}
	if age := time.Since(metadata.Timestamp); age < 0 || age > time.Minute {
		t.Errorf("timestamp %v is not recent", metadata.Timestamp)
	}
}

func TestReleaseDeletesLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	guard, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := os.Stat(LockPath(path)); err != nil {
		t.Fatalf("lock file should exist while held: %v", err)
	}

	guard.Release()
	if _, err := os.Stat(LockPath(path)); !errors.Is(err, os.ErrNotExist) {
		t.Error("lock file should be deleted on release")
	}

	// Release is idempotent.
	guard.Release()
}

func TestAcquireConflictWithLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	// The current process's own PID is, by construction, alive.
	metadata, _ := json.Marshal(Metadata{PID: os.Getpid(), Timestamp: time.Now().UTC()})
	if err := os.WriteFile(LockPath(path), metadata, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Acquire(path)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error = %v, want ConflictError", err)
	}
	if conflict.PID != os.Getpid() {
		t.Errorf("conflict pid = %d, want %d", conflict.PID, os.Getpid())
	}
	if conflict.Path != LockPath(path) {
		t.Errorf("conflict path = %q, want %q", conflict.Path, LockPath(path))
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	if !processAlive(os.Getpid()) {
		t.Skip("no usable liveness probe on this platform")
	}

	path := filepath.Join(t.TempDir(), "settings.json")

	// PID 99999999 is above the default pid_max on any realistic
	// system, so the recorded owner is dead.
	metadata, _ := json.Marshal(Metadata{PID: 99999999, Timestamp: time.Now().UTC()})
	if err := os.WriteFile(LockPath(path), metadata, 0o644); err != nil {
		t.Fatal(err)
	}

	guard, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire over stale lock: %v", err)
	}
	defer guard.Release()

	// The replacement lock carries our PID.
	var replaced Metadata
	data, _ := os.ReadFile(LockPath(path))
	if err := json.Unmarshal(data, &replaced); err != nil {
		t.Fatalf("replacement metadata: %v", err)
	}
	if replaced.PID != os.Getpid() {
		t.Errorf("replacement pid = %d, want %d", replaced.PID, os.Getpid())
	}
}

func TestAcquireTreatsUnparsableLockAsStale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(LockPath(path), []byte("half-written gar"), 0o644); err != nil {
		t.Fatal(err)
	}

	guard, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire over unparsable lock: %v", err)
	}
	guard.Release()
}

func TestAcquireCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "settings.json")

	guard, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	guard.Release()
}
