// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package merge implements three-way merge conflict resolution for file
// content.
package merge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// RESOLUTION STATE MACHINE TESTS
// =============================================================================

// conflictFixture builds a result with exactly one conflict region: our side
// rewrote the middle line as two lines, their side as one.
func conflictFixture(t *testing.T) (*FileMergeResult, *MergeRegion) {
	t.Helper()
	result := NewFileMergeResult(
		"start\nold\nend\n",
		"start\nours1\nours2\nend\n",
		"start\ntheirs1\nend\n",
	)
	require.Equal(t, 1, result.TotalConflictCount())
	region := result.Region(result.FirstUnresolvedConflictIndex())
	require.NotNil(t, region)
	require.Equal(t, RegionConflict, region.Kind)
	return result, region
}

func TestMergeRegion_InitialState(t *testing.T) {
	_, region := conflictFixture(t)

	require.Equal(t, ResolutionNone, region.Resolution())
	require.False(t, region.IsResolved())
	require.Equal(t, []string{"ours1", "ours2"}, region.OursLines)
	require.Equal(t, []string{"theirs1"}, region.TheirsLines)
	require.Empty(t, region.SelectableOurs(), "selection state must not materialize before custom mode")
	require.Empty(t, region.SelectableTheirs())

	require.Equal(t, []string{
		"<<<<<<< ours",
		"ours1",
		"ours2",
		"=======",
		"theirs1",
		">>>>>>> theirs",
	}, region.ResolvedLines())
}

func TestMergeRegion_AcceptOurs(t *testing.T) {
	_, region := conflictFixture(t)

	require.NoError(t, region.AcceptOurs())
	require.Equal(t, ResolutionOurs, region.Resolution())
	require.True(t, region.IsResolved())
	require.Equal(t, []string{"ours1", "ours2"}, region.ResolvedLines())
}

func TestMergeRegion_AcceptTheirs(t *testing.T) {
	_, region := conflictFixture(t)

	require.NoError(t, region.AcceptTheirs())
	require.Equal(t, ResolutionTheirs, region.Resolution())
	require.Equal(t, []string{"theirs1"}, region.ResolvedLines())
}

// Resolution transitions are re-enterable: switching to another resolution
// must leave no residue from the previous one.
func TestMergeRegion_Reenterable(t *testing.T) {
	_, region := conflictFixture(t)

	require.NoError(t, region.AcceptOurs())
	require.NoError(t, region.AcceptTheirs())
	require.Equal(t, []string{"theirs1"}, region.ResolvedLines())

	require.NoError(t, region.AcceptOurs())
	require.Equal(t, []string{"ours1", "ours2"}, region.ResolvedLines())

	require.NoError(t, region.Reset())
	require.Equal(t, ResolutionNone, region.Resolution())
	require.False(t, region.IsResolved())
	require.Equal(t, MarkerOurs+" ours", region.ResolvedLines()[0])
}

func TestMergeRegion_CustomSelection(t *testing.T) {
	_, region := conflictFixture(t)

	require.NoError(t, region.EnterCustomMode())
	require.Equal(t, ResolutionNone, region.Resolution(), "entering custom mode alone must not resolve")

	selOurs := region.SelectableOurs()
	require.Len(t, selOurs, 2)
	for _, sel := range selOurs {
		require.False(t, sel.Included)
	}
	selTheirs := region.SelectableTheirs()
	require.Len(t, selTheirs, 1)
	require.False(t, selTheirs[0].Included)

	require.NoError(t, region.ToggleTheirsLine(0))
	require.Equal(t, ResolutionCustom, region.Resolution())
	require.True(t, region.IsResolved())
	require.Equal(t, []string{"theirs1"}, region.ResolvedLines())

	require.NoError(t, region.ToggleOursLine(1))
	require.Equal(t, []string{"ours2", "theirs1"}, region.ResolvedLines())

	require.NoError(t, region.ToggleOursLine(0))
	require.Equal(t, []string{"ours1", "ours2", "theirs1"}, region.ResolvedLines())

	require.NoError(t, region.ToggleOursLine(0))
	require.Equal(t, []string{"ours2", "theirs1"}, region.ResolvedLines())
}

// Custom output always lists included our-side lines before included
// their-side lines, regardless of the order the toggles happened in.
func TestMergeRegion_CustomOrderFixed(t *testing.T) {
	_, region := conflictFixture(t)

	require.NoError(t, region.ToggleTheirsLine(0))
	require.NoError(t, region.ToggleOursLine(0))
	require.Equal(t, []string{"ours1", "theirs1"}, region.ResolvedLines())
}

func TestMergeRegion_ToggleOutOfRange(t *testing.T) {
	_, region := conflictFixture(t)

	require.Error(t, region.ToggleOursLine(2))
	require.Error(t, region.ToggleOursLine(-1))
	require.Error(t, region.ToggleTheirsLine(1))
	require.Equal(t, ResolutionNone, region.Resolution(), "failed toggles must not resolve the region")
}

// After a whole-side accept, entering custom mode seeds the chosen side's
// lines as included so the first toggle adjusts rather than starts over.
func TestMergeRegion_CustomSeededFromAccept(t *testing.T) {
	_, region := conflictFixture(t)

	require.NoError(t, region.AcceptOurs())
	require.NoError(t, region.EnterCustomMode())

	for _, sel := range region.SelectableOurs() {
		require.True(t, sel.Included)
	}
	for _, sel := range region.SelectableTheirs() {
		require.False(t, sel.Included)
	}
	require.Equal(t, []string{"ours1", "ours2"}, region.ResolvedLines(), "accept stays in effect until a toggle")

	require.NoError(t, region.ToggleTheirsLine(0))
	require.Equal(t, ResolutionCustom, region.Resolution())
	require.Equal(t, []string{"ours1", "ours2", "theirs1"}, region.ResolvedLines())
}

// A whole-side accept discards materialized selection state; the next
// custom-mode entry recomputes defaults instead of reviving stale picks.
func TestMergeRegion_AcceptDiscardsSelection(t *testing.T) {
	_, region := conflictFixture(t)

	require.NoError(t, region.EnterCustomMode())
	require.NoError(t, region.ToggleOursLine(0))
	require.Equal(t, []string{"ours1"}, region.ResolvedLines())

	require.NoError(t, region.AcceptTheirs())
	require.Empty(t, region.SelectableOurs())
	require.Empty(t, region.SelectableTheirs())

	require.NoError(t, region.EnterCustomMode())
	for _, sel := range region.SelectableOurs() {
		require.False(t, sel.Included, "previous picks must not survive an accept")
	}
	for _, sel := range region.SelectableTheirs() {
		require.True(t, sel.Included)
	}
}

func TestMergeRegion_ManualText(t *testing.T) {
	_, region := conflictFixture(t)

	require.NoError(t, region.SetManualText("merged line 1\nmerged line 2"))
	require.Equal(t, ResolutionManual, region.Resolution())
	require.Equal(t, "merged line 1\nmerged line 2", region.ManualText())
	require.Equal(t, []string{"merged line 1", "merged line 2"}, region.ResolvedLines())

	require.NoError(t, region.SetManualText(""))
	require.Equal(t, []string{""}, region.ResolvedLines(), "empty manual text is one empty line")
}

func TestMergeRegion_ResetClearsManualText(t *testing.T) {
	_, region := conflictFixture(t)

	require.NoError(t, region.SetManualText("typed"))
	require.NoError(t, region.Reset())
	require.Equal(t, ResolutionNone, region.Resolution())
	require.Empty(t, region.ManualText())
}

// Resolution calls on non-conflict regions indicate caller bugs and must be
// rejected without mutating anything.
func TestMergeRegion_NonConflictRejected(t *testing.T) {
	result, _ := conflictFixture(t)
	region := result.Region(0)
	require.Equal(t, RegionUnchanged, region.Kind)

	calls := []struct {
		name string
		call func() error
	}{
		{"AcceptOurs", region.AcceptOurs},
		{"AcceptTheirs", region.AcceptTheirs},
		{"EnterCustomMode", region.EnterCustomMode},
		{"ToggleOursLine", func() error { return region.ToggleOursLine(0) }},
		{"ToggleTheirsLine", func() error { return region.ToggleTheirsLine(0) }},
		{"SetManualText", func() error { return region.SetManualText("x") }},
		{"Reset", region.Reset},
	}

	for _, tc := range calls {
		err := tc.call()
		require.Error(t, err, "%s on a non-conflict region", tc.name)
		require.True(t, errors.Is(err, ErrNotConflict), "%s must wrap ErrNotConflict", tc.name)
	}

	require.True(t, region.IsResolved())
	require.Equal(t, []string{"start"}, region.ResolvedLines())
}

func TestMergeRegion_MarkerBlockWithDeletedSide(t *testing.T) {
	result := NewFileMergeResult("a\nb\nc\n", "a\nc\n", "a\nB2\nc\n")
	region := result.Region(result.FirstUnresolvedConflictIndex())
	require.NotNil(t, region)

	require.Equal(t, []string{
		"<<<<<<< ours",
		"=======",
		"B2",
		">>>>>>> theirs",
	}, region.ResolvedLines())
}

func TestRegionKind_String(t *testing.T) {
	tests := []struct {
		kind     RegionKind
		expected string
	}{
		{RegionUnchanged, "unchanged"},
		{RegionOursOnly, "ours-only"},
		{RegionTheirsOnly, "theirs-only"},
		{RegionConflict, "conflict"},
		{RegionKind(42), "unknown"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.kind.String())
	}
}

func TestResolution_String(t *testing.T) {
	tests := []struct {
		resolution Resolution
		expected   string
	}{
		{ResolutionNone, "none"},
		{ResolutionOurs, "ours"},
		{ResolutionTheirs, "theirs"},
		{ResolutionCustom, "custom"},
		{ResolutionManual, "manual"},
		{Resolution(42), "unknown"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.resolution.String())
	}
}

func TestLineSpan(t *testing.T) {
	span := LineSpan{Start: 3, Lines: []string{"a", "b"}}
	require.Equal(t, 2, span.Count())
	require.Equal(t, 5, span.End())

	empty := LineSpan{Start: 7}
	require.Equal(t, 0, empty.Count())
	require.Equal(t, 7, empty.End())
}
