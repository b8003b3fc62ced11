// Copyright 2026 The CCPM Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// maxSuggestionDistance is the largest edit distance still offered as a
// "did you mean" suggestion.
const maxSuggestionDistance = 4

// suggestCommand returns the closest subcommand name to input, or "" when
// nothing is close enough to be a plausible typo.
func suggestCommand(input string, subcommands []*Command) string {
	best := ""
	bestDistance := maxSuggestionDistance
	for _, sub := range subcommands {
		d := levenshtein(input, sub.Name)
		if d < bestDistance {
			best = sub.Name
			bestDistance = d
		}
	}
	return best
}

// suggestFlag finds the unknown flag in args and returns the closest
// registered flag name, or "" when nothing is close enough.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	var unknown string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			name := strings.TrimLeft(arg, "-")
			if i := strings.Index(name, "="); i >= 0 {
				name = name[:i]
			}
			if name != "" && flagSet.Lookup(name) == nil {
				unknown = name
				break
			}
		}
	}
	if unknown == "" {
		return ""
	}

	best := ""
	bestDistance := maxSuggestionDistance
	flagSet.VisitAll(func(f *pflag.Flag) {
		d := levenshtein(unknown, f.Name)
		if d < bestDistance {
			best = f.Name
			bestDistance = d
		}
	})
	if best == "" {
		return ""
	}
	return "--" + best
}

// levenshtein computes the edit distance between two strings using a
// single-row dynamic programming table.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		previous := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			current := row[j]
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			row[j] = min(row[j]+1, min(row[j-1]+1, previous+cost))
			previous = current
		}
	}
	return row[len(b)]
}
