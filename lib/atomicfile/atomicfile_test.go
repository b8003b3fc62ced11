// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := WriteFile(path, []byte(`{"a": 1}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"a": 1}` {
		t.Errorf("content = %q", data)
	}
}

func TestWriteFileReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q, want replacement", data)
	}
}

func TestWriteFileLeavesNoTemporary(t *testing.T) {
	dir := t.TempDir()
	if err := WriteFile(filepath.Join(dir, "out.json"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("temporary file %s left behind", entry.Name())
		}
	}
}

func TestWriteFileFailureLeavesTargetUntouched(t *testing.T) {
	// Writing into a missing directory fails before the rename, so an
	// existing sibling target at the final path is never affected and
	// no temporary file appears.
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing", "out.json")

	if err := WriteFile(missing, []byte("x"), 0o644); err == nil {
		t.Fatal("expected error writing into missing directory")
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Error("target should not exist after failed write")
	}
}
