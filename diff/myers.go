// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff provides line-level diff computation between file versions.
package diff

// The diff core is Myers' greedy O(ND) shortest-edit-script search over
// lines ("An O(ND) Difference Algorithm and Its Variations", 1986), with the
// usual common prefix and suffix reduction in front. The greedy variant
// keeps the full trace of furthest-reaching endpoints and backtracks through
// it, trading memory proportional to D*(N+M) for a simple, deterministic
// reconstruction. Callers diffing pathologically divergent inputs are
// expected to cap input size upstream.

// =============================================================================
// LINE MATCHING
// =============================================================================

// matchLines returns, for every base line index, the index of the other-side
// line it pairs with on a shortest edit path, or -1 for a line with no
// counterpart. Pairings are strictly increasing on both sides.
func matchLines(base, other []string) []int {
	n, m := len(base), len(other)
	matches := make([]int, n)
	for i := range matches {
		matches[i] = -1
	}
	if n == 0 || m == 0 {
		return matches
	}

	// Common prefix.
	prefix := 0
	for prefix < n && prefix < m && base[prefix] == other[prefix] {
		matches[prefix] = prefix
		prefix++
	}

	// Common suffix, not overlapping the prefix.
	suffix := 0
	for suffix < n-prefix && suffix < m-prefix && base[n-1-suffix] == other[m-1-suffix] {
		matches[n-1-suffix] = m - 1 - suffix
		suffix++
	}

	for _, p := range middleMatches(base[prefix:n-suffix], other[prefix:m-suffix]) {
		matches[prefix+p.base] = prefix + p.other
	}
	return matches
}

// matchPair pairs a base line index with an other-side line index.
type matchPair struct {
	base  int
	other int
}

// middleMatches runs the greedy forward search and backtracks the shortest
// path, collecting the diagonal (equal-line) steps. A tie between a deletion
// and an insertion of equal cost resolves to the deletion, so paths consume
// base lines as early as possible.
func middleMatches(a, b []string) []matchPair {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return nil
	}

	// v is indexed by diagonal k offset by maxCost; v[maxCost+k] is the
	// furthest x reached on diagonal k at the current edit cost.
	maxCost := n + m
	v := make([]int, 2*maxCost+1)
	v[maxCost+1] = 0
	var trace [][]int

	endCost := -1
search:
	for d := 0; d <= maxCost; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[maxCost+k-1] < v[maxCost+k+1]) {
				x = v[maxCost+k+1]
			} else {
				x = v[maxCost+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[maxCost+k] = x
			if x >= n && y >= m {
				endCost = d
				break search
			}
		}
	}

	var pairs []matchPair
	x, y := n, m
	for d := endCost; d >= 0; d-- {
		snapshot := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && snapshot[maxCost+k-1] < snapshot[maxCost+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := snapshot[maxCost+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			pairs = append(pairs, matchPair{base: x - 1, other: y - 1})
			x--
			y--
		}
		if d > 0 {
			x, y = prevX, prevY
		}
	}
	return pairs
}
