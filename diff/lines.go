// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff provides line-level diff computation between file versions.
package diff

import "strings"

// =============================================================================
// LINE SPLITTING
// =============================================================================

// SplitLines splits text into lines for diffing.
//
// The framing rules are fixed so that every caller slicing text for Compute
// and later reassembling the result agrees on the same line boundaries:
//
//   - lines are separated by '\n'; a single trailing '\r' is stripped from
//     each line, so CRLF input diffs the same as LF input
//   - a trailing newline does not produce a trailing empty line
//     ("a\nb\n" is two lines)
//   - the empty string is one empty line, never zero lines
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
