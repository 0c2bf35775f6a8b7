// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package merge implements three-way merge conflict resolution for file
// content.
package merge

import (
	"github.com/jeranaias/trimerge/diff"
)

// =============================================================================
// REGION CONSTRUCTION
// =============================================================================

// sideChange is one contiguous edit of a single side against the base: the
// base interval it rewrites (zero-width for a pure insert) and the side's
// replacement lines (empty for a pure delete).
type sideChange struct {
	baseStart int
	baseEnd   int
	lines     []string
}

// scriptChanges extracts the non-equal edits of an edit script as side
// changes, in base order.
func scriptChanges(script diff.Script, other []string) []sideChange {
	var changes []sideChange
	for _, e := range script {
		if e.Op == diff.OpEqual {
			continue
		}
		changes = append(changes, sideChange{
			baseStart: e.BaseStart,
			baseEnd:   e.BaseEnd,
			lines:     other[e.OtherStart:e.OtherEnd],
		})
	}
	return changes
}

// BuildRegions classifies the three-way merge of base, ours, and theirs
// into an ordered region list.
//
// Both sides are diffed against the base independently, then changes are
// grouped: changes whose base intervals overlap, or touch with no unchanged
// base line between them, belong to the same region. A group changed by one
// side alone becomes RegionOursOnly or RegionTheirsOnly; a group changed by
// both becomes RegionConflict, unless both sides produced identical lines,
// in which case nothing is left to resolve and the group collapses to
// RegionUnchanged. Two insertions at the same base boundary form a
// zero-width conflict.
//
// The base ranges of the returned regions partition the base sequence
// exactly. Regions alias the input slices; callers must not mutate the
// inputs afterwards. Regions built here report resolution changes only once
// adopted by a FileMergeResult.
func BuildRegions(base, ours, theirs []string, opts Options) []*MergeRegion {
	oursChanges := scriptChanges(diff.Compute(base, ours), ours)
	theirsChanges := scriptChanges(diff.Compute(base, theirs), theirs)

	var regions []*MergeRegion
	pos := 0
	oi, ti := 0, 0
	for oi < len(oursChanges) || ti < len(theirsChanges) {
		// Seed the group with the earliest remaining change.
		var start, end int
		if ti >= len(theirsChanges) || (oi < len(oursChanges) && oursChanges[oi].baseStart <= theirsChanges[ti].baseStart) {
			start, end = oursChanges[oi].baseStart, oursChanges[oi].baseEnd
		} else {
			start, end = theirsChanges[ti].baseStart, theirsChanges[ti].baseEnd
		}

		// Absorb changes until neither side extends the group. Absorbing one
		// side can pull the group's end past the next change on the other
		// side, so the scan repeats until a fixed point.
		groupOursLo, groupTheirsLo := oi, ti
		for {
			grew := false
			for oi < len(oursChanges) && oursChanges[oi].baseStart <= end {
				if oursChanges[oi].baseEnd > end {
					end = oursChanges[oi].baseEnd
				}
				oi++
				grew = true
			}
			for ti < len(theirsChanges) && theirsChanges[ti].baseStart <= end {
				if theirsChanges[ti].baseEnd > end {
					end = theirsChanges[ti].baseEnd
				}
				ti++
				grew = true
			}
			if !grew {
				break
			}
		}

		if start > pos {
			regions = append(regions, &MergeRegion{
				Kind:    RegionUnchanged,
				Base:    LineSpan{Start: pos, Lines: base[pos:start]},
				Content: base[pos:start],
			})
		}

		span := LineSpan{Start: start, Lines: base[start:end]}
		oursMembers := oursChanges[groupOursLo:oi]
		theirsMembers := theirsChanges[groupTheirsLo:ti]

		switch {
		case len(theirsMembers) == 0:
			regions = append(regions, &MergeRegion{
				Kind:    RegionOursOnly,
				Base:    span,
				Content: sideContent(base, oursMembers, start, end),
			})
		case len(oursMembers) == 0:
			regions = append(regions, &MergeRegion{
				Kind:    RegionTheirsOnly,
				Base:    span,
				Content: sideContent(base, theirsMembers, start, end),
			})
		default:
			oursLines := sideContent(base, oursMembers, start, end)
			theirsLines := sideContent(base, theirsMembers, start, end)
			if equalLines(oursLines, theirsLines) {
				// Both sides rewrote the interval identically.
				regions = append(regions, &MergeRegion{
					Kind:    RegionUnchanged,
					Base:    span,
					Content: oursLines,
				})
			} else {
				regions = append(regions, &MergeRegion{
					Kind:        RegionConflict,
					Base:        span,
					OursLines:   oursLines,
					TheirsLines: theirsLines,
					oursLabel:   opts.OursLabel,
					theirsLabel: opts.TheirsLabel,
				})
			}
		}
		pos = end
	}

	if pos < len(base) {
		regions = append(regions, &MergeRegion{
			Kind:    RegionUnchanged,
			Base:    LineSpan{Start: pos, Lines: base[pos:]},
			Content: base[pos:],
		})
	}
	return regions
}

// sideContent materializes one side's version of the base interval
// [start,end): member changes contribute their replacement lines, and the
// gaps between them contribute the base lines that side left untouched.
func sideContent(base []string, members []sideChange, start, end int) []string {
	var lines []string
	pos := start
	for _, ch := range members {
		if ch.baseStart > pos {
			lines = append(lines, base[pos:ch.baseStart]...)
		}
		lines = append(lines, ch.lines...)
		if ch.baseEnd > pos {
			pos = ch.baseEnd
		}
	}
	if end > pos {
		lines = append(lines, base[pos:end]...)
	}
	return lines
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
