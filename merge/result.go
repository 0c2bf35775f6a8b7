// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package merge implements three-way merge conflict resolution for file
// content.
package merge

import (
	"strings"

	"github.com/jeranaias/trimerge/diff"
)

// =============================================================================
// FILE MERGE RESULT
// =============================================================================

// FileMergeResult owns the ordered region list for one file's three-way
// merge. All derived views (counts, navigation, merged content) are
// recomputed from region state on demand, so they can never drift from it.
//
// A result is built once per merge attempt. When the underlying file
// versions change, discard the result and build a new one.
type FileMergeResult struct {
	regions  []*MergeRegion
	revision uint64
	onChange func()
}

// NewFileMergeResult builds the merge result for one file from its three
// versions, using default options.
func NewFileMergeResult(baseText, oursText, theirsText string) *FileMergeResult {
	return NewFileMergeResultWithOptions(baseText, oursText, theirsText, Options{})
}

// NewFileMergeResultWithOptions builds the merge result for one file from
// its three versions.
func NewFileMergeResultWithOptions(baseText, oursText, theirsText string, opts Options) *FileMergeResult {
	result := &FileMergeResult{
		regions: BuildRegions(
			diff.SplitLines(baseText),
			diff.SplitLines(oursText),
			diff.SplitLines(theirsText),
			opts,
		),
	}
	for _, region := range result.regions {
		region.notify = result.markChanged
	}
	return result
}

func (fr *FileMergeResult) markChanged() {
	fr.revision++
	if fr.onChange != nil {
		fr.onChange()
	}
}

// OnChange registers the change callback, replacing any previous one. The
// callback runs synchronously after every successful resolution mutation on
// any region of this result; bulk operations fire it once per region they
// touch. Pass nil to unregister.
func (fr *FileMergeResult) OnChange(fn func()) {
	fr.onChange = fn
}

// Revision returns a counter that increments on every successful resolution
// mutation, for callers that compare snapshots instead of subscribing.
func (fr *FileMergeResult) Revision() uint64 { return fr.revision }

// Regions returns the ordered region list. The slice is owned by the
// result; callers must not modify it.
func (fr *FileMergeResult) Regions() []*MergeRegion { return fr.regions }

// RegionCount returns the number of regions.
func (fr *FileMergeResult) RegionCount() int { return len(fr.regions) }

// Region returns the region at index i, or nil when i is out of range.
func (fr *FileMergeResult) Region(i int) *MergeRegion {
	if i < 0 || i >= len(fr.regions) {
		return nil
	}
	return fr.regions[i]
}

// =============================================================================
// CONTENT ASSEMBLY
// =============================================================================

// MergedContent assembles the merged file text from every region's resolved
// output, in region order. Safe to call at any time: unresolved conflicts
// contribute their conflict-marker block, so the text is always writable to
// disk even while conflicts remain.
func (fr *FileMergeResult) MergedContent() string {
	var lines []string
	for _, region := range fr.regions {
		lines = append(lines, region.ResolvedLines()...)
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// DERIVED COUNTS
// =============================================================================

// TotalConflictCount returns the number of conflict regions, resolved or
// not.
func (fr *FileMergeResult) TotalConflictCount() int {
	count := 0
	for _, region := range fr.regions {
		if region.Kind == RegionConflict {
			count++
		}
	}
	return count
}

// UnresolvedCount returns the number of conflict regions still awaiting a
// resolution.
func (fr *FileMergeResult) UnresolvedCount() int {
	count := 0
	for _, region := range fr.regions {
		if region.Kind == RegionConflict && region.resolution == ResolutionNone {
			count++
		}
	}
	return count
}

// ResolvedConflictCount returns the number of conflict regions that have a
// resolution applied.
func (fr *FileMergeResult) ResolvedConflictCount() int {
	count := 0
	for _, region := range fr.regions {
		if region.Kind == RegionConflict && region.resolution != ResolutionNone {
			count++
		}
	}
	return count
}

// IsFullyResolved reports whether the merged content is clean: every
// conflict region has a resolution, and no region's output begins a line
// with a conflict-marker sentinel. The second check catches markers typed
// back in through manual text, which would otherwise save a file that still
// looks conflicted to other tools.
func (fr *FileMergeResult) IsFullyResolved() bool {
	for _, region := range fr.regions {
		if region.Kind == RegionConflict && region.resolution == ResolutionNone {
			return false
		}
	}
	for _, region := range fr.regions {
		for _, line := range region.ResolvedLines() {
			if strings.HasPrefix(line, MarkerOurs) ||
				strings.HasPrefix(line, MarkerSeparator) ||
				strings.HasPrefix(line, MarkerTheirs) {
				return false
			}
		}
	}
	return true
}

// =============================================================================
// CONFLICT NAVIGATION
// =============================================================================

// FirstUnresolvedConflictIndex returns the region index of the first
// unresolved conflict, or -1 when none remain.
func (fr *FileMergeResult) FirstUnresolvedConflictIndex() int {
	return fr.NextUnresolvedConflictIndex(-1)
}

// NextUnresolvedConflictIndex scans forward from current (exclusive) and
// returns the region index of the next unresolved conflict. The scan stops
// at the end of the region list, without wrapping around, and returns -1
// when nothing remains in that direction.
func (fr *FileMergeResult) NextUnresolvedConflictIndex(current int) int {
	start := current + 1
	if start < 0 {
		start = 0
	}
	for i := start; i < len(fr.regions); i++ {
		if fr.regions[i].Kind == RegionConflict && fr.regions[i].resolution == ResolutionNone {
			return i
		}
	}
	return -1
}

// PreviousUnresolvedConflictIndex scans backward from current (exclusive)
// and returns the region index of the previous unresolved conflict. The
// scan stops at the start of the region list, without wrapping around, and
// returns -1 when nothing remains in that direction.
func (fr *FileMergeResult) PreviousUnresolvedConflictIndex(current int) int {
	start := current - 1
	if start >= len(fr.regions) {
		start = len(fr.regions) - 1
	}
	for i := start; i >= 0; i-- {
		if fr.regions[i].Kind == RegionConflict && fr.regions[i].resolution == ResolutionNone {
			return i
		}
	}
	return -1
}

// =============================================================================
// BULK RESOLUTION
// =============================================================================

// SelectAllOurs resolves every still-unresolved conflict with our side's
// lines and returns the number of regions it touched. Regions that already
// have a resolution are left alone.
func (fr *FileMergeResult) SelectAllOurs() int {
	resolved := 0
	for _, region := range fr.regions {
		if region.Kind == RegionConflict && region.resolution == ResolutionNone {
			if err := region.AcceptOurs(); err == nil {
				resolved++
			}
		}
	}
	return resolved
}

// SelectAllTheirs resolves every still-unresolved conflict with their
// side's lines and returns the number of regions it touched. Regions that
// already have a resolution are left alone.
func (fr *FileMergeResult) SelectAllTheirs() int {
	resolved := 0
	for _, region := range fr.regions {
		if region.Kind == RegionConflict && region.resolution == ResolutionNone {
			if err := region.AcceptTheirs(); err == nil {
				resolved++
			}
		}
	}
	return resolved
}
