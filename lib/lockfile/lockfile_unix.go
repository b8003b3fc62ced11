// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package lockfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// processAlive probes whether a process exists by sending signal 0.
// EPERM means the process exists but belongs to another user, which
// still counts as alive; only ESRCH (and other errors) mean dead.
func processAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	if err == nil {
		return true
	}
	return err == unix.EPERM
}

// flockExclusive takes a non-blocking exclusive advisory lock on the
// open file handle. The lock is released when the handle is closed.
func flockExclusive(file *os.File) error {
	return unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
}
