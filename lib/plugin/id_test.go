// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import "testing"

func TestParseID(t *testing.T) {
	tests := []struct {
		id          string
		name        string
		marketplace string
	}{
		{"context7@claude-plugins-official", "context7", "claude-plugins-official"},
		{"a@b", "a", "b"},
		{"some-plugin", "some-plugin", "unknown"},
		// Split on the last '@': marketplace names never contain '@',
		// plugin names in principle may.
		{"a@b@c", "a@b", "c"},
		{"@m", "", "m"},
		{"", "", "unknown"},
	}

	for _, test := range tests {
		name, marketplace := ParseID(test.id)
		if name != test.name || marketplace != test.marketplace {
			t.Errorf("ParseID(%q) = (%q, %q), want (%q, %q)",
				test.id, name, marketplace, test.name, test.marketplace)
		}
	}
}
