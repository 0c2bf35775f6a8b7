// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff provides line-level diff computation between file versions.
package diff

// =============================================================================
// EDIT OPERATIONS
// =============================================================================

// Op represents the kind of an edit operation.
type Op int

const (
	// OpEqual covers lines present in both sequences
	OpEqual Op = iota
	// OpInsert covers lines present only in the other sequence
	OpInsert
	// OpDelete covers lines present only in the base sequence
	OpDelete
	// OpReplace covers a base run substituted by a different other run
	OpReplace
)

// String returns the string representation of an edit operation.
func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// =============================================================================
// EDIT SCRIPT
// =============================================================================

// Edit is a single operation of an edit script. Ranges are half-open line
// index intervals. For OpInsert the base range is zero-width and marks the
// boundary the lines are inserted at; for OpDelete the other range is
// zero-width.
type Edit struct {
	Op Op

	// BaseStart and BaseEnd delimit the affected base lines.
	BaseStart int
	BaseEnd   int

	// OtherStart and OtherEnd delimit the affected other-side lines.
	OtherStart int
	OtherEnd   int
}

// BaseLen returns the number of base lines the edit covers.
func (e Edit) BaseLen() int { return e.BaseEnd - e.BaseStart }

// OtherLen returns the number of other-side lines the edit covers.
func (e Edit) OtherLen() int { return e.OtherEnd - e.OtherStart }

// Script is an ordered edit script between two line sequences. Equal and
// non-equal edits strictly alternate, and the base ranges of consecutive
// edits partition the base sequence exactly (likewise the other ranges for
// the other sequence).
type Script []Edit

// Stats holds line counts summarizing a script.
type Stats struct {
	// Additions counts lines present only in the other sequence.
	Additions int

	// Deletions counts lines present only in the base sequence.
	Deletions int
}

// Stats counts added and deleted lines over the whole script.
func (s Script) Stats() Stats {
	var st Stats
	for _, e := range s {
		switch e.Op {
		case OpInsert:
			st.Additions += e.OtherLen()
		case OpDelete:
			st.Deletions += e.BaseLen()
		case OpReplace:
			st.Additions += e.OtherLen()
			st.Deletions += e.BaseLen()
		}
	}
	return st
}

// =============================================================================
// DIFF COMPUTATION
// =============================================================================

// Compute diffs base against other and returns a minimal edit script.
//
// The diff is Myers' greedy O(ND) algorithm over whole lines. It is pure and
// deterministic: when a deletion and an insertion both lie on a shortest
// path, the deletion is taken first, which anchors equal runs at their
// earliest base position. Nil or empty inputs yield well-formed scripts.
func Compute(base, other []string) Script {
	return buildScript(base, other, matchLines(base, other))
}

// buildScript converts per-line match information into an alternating edit
// script covering both sequences exactly.
func buildScript(base, other []string, matches []int) Script {
	var script Script
	n, m := len(base), len(other)
	i, j := 0, 0
	for i < n || j < m {
		if i < n && matches[i] == j {
			// Equal run.
			baseStart, otherStart := i, j
			for i < n && matches[i] == j {
				i++
				j++
			}
			script = append(script, Edit{
				Op:         OpEqual,
				BaseStart:  baseStart,
				BaseEnd:    i,
				OtherStart: otherStart,
				OtherEnd:   j,
			})
			continue
		}

		// Gap: unmatched base lines and/or other-side lines up to the next
		// matched pair.
		baseStart, otherStart := i, j
		for i < n && matches[i] < 0 {
			i++
		}
		if i < n {
			j = matches[i]
		} else {
			j = m
		}

		e := Edit{BaseStart: baseStart, BaseEnd: i, OtherStart: otherStart, OtherEnd: j}
		switch {
		case e.BaseLen() > 0 && e.OtherLen() > 0:
			e.Op = OpReplace
		case e.BaseLen() > 0:
			e.Op = OpDelete
		default:
			e.Op = OpInsert
		}
		script = append(script, e)
	}
	return script
}
