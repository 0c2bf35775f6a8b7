// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff provides line-level diff computation between file versions.
//
// This package computes minimal edit scripts between two line sequences
// using Myers' O(ND) algorithm, with deterministic tie-breaking so that
// downstream consumers see stable output for identical inputs.
//
// # Key Types
//
//   - Op: Kind of edit operation (equal, insert, delete, replace)
//   - Edit: Single operation with half-open base/other line ranges
//   - Script: Ordered edit script partitioning both sequences
//   - Stats: Added and deleted line counts for a script
//
// # Usage
//
// Split text into lines and compute an edit script:
//
//	base := diff.SplitLines(baseText)
//	other := diff.SplitLines(otherText)
//	script := diff.Compute(base, other)
//	stats := script.Stats()
package diff
