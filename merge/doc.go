// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package merge implements three-way merge conflict resolution for file
// content.
//
// Given the common-ancestor (base), local (ours), and incoming (theirs)
// versions of a text file, the package classifies the file into an ordered
// list of regions (unchanged, changed by one side, or conflicting), drives
// per-region resolution through whole-side accepts, per-line picks, or
// free-typed replacement text, and reassembles the merged file on demand.
//
// # Key Types
//
//   - RegionKind: Classification of a base interval (unchanged, ours-only,
//     theirs-only, conflict)
//   - Resolution: How a conflict region has been resolved, if at all
//   - MergeRegion: One classified interval with candidate content and a
//     re-enterable resolution state machine
//   - SelectableLine: Per-line inclusion state for custom resolution
//   - FileMergeResult: Ordered region list for one file, with derived
//     counts, unresolved-conflict navigation, and content assembly
//
// # Usage
//
// Build a result and resolve its conflicts:
//
//	result := merge.NewFileMergeResult(baseText, oursText, theirsText)
//	for _, region := range result.Regions() {
//		if region.Kind == merge.RegionConflict {
//			if err := region.AcceptOurs(); err != nil {
//				return err
//			}
//		}
//	}
//	merged := result.MergedContent()
//
// # Concurrency
//
// The engine is pure and synchronous: no goroutines, timers, locks, or I/O.
// Each FileMergeResult assumes a single writer; derived views may be re-read
// freely between mutations. Hosts may run the whole build-and-resolve
// pipeline off their UI thread, but must not mutate one result from two
// goroutines at once.
package merge
