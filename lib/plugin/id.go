// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import "strings"

// UnknownMarketplace is the marketplace assigned to plugin IDs that carry
// no marketplace suffix.
const UnknownMarketplace = "unknown"

// ParseID splits a plugin ID of the form "name@marketplace" into its
// parts. The split is on the last '@' — marketplace names never contain
// '@', while plugin names in principle may. An ID with no '@' at all gets
// [UnknownMarketplace] as its marketplace.
func ParseID(id string) (name, marketplace string) {
	if index := strings.LastIndex(id, "@"); index >= 0 {
		return id[:index], id[index+1:]
	}
	return id, UnknownMarketplace
}
