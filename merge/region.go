// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package merge implements three-way merge conflict resolution for file
// content.
package merge

import (
	"errors"
	"fmt"

	"github.com/jeranaias/trimerge/diff"
)

// =============================================================================
// CONFLICT MARKERS
// =============================================================================

// Conflict-marker sentinels, as emitted for unresolved regions and scanned
// for by FileMergeResult.IsFullyResolved.
const (
	MarkerOurs      = "<<<<<<<"
	MarkerSeparator = "======="
	MarkerTheirs    = ">>>>>>>"
)

// ErrNotConflict is returned when a resolution transition is requested on a
// region that is not a conflict. That always means the caller addressed the
// wrong region, so the methods fail loudly instead of ignoring the call.
var ErrNotConflict = errors.New("region is not a conflict")

// =============================================================================
// LINE SPAN
// =============================================================================

// LineSpan is a contiguous run of lines from one version of the file, with
// the index of its first line in that version. Immutable once built.
type LineSpan struct {
	// Start is the zero-based index of the first line.
	Start int

	// Lines holds the literal line content.
	Lines []string
}

// Count returns the number of lines in the span.
func (s LineSpan) Count() int { return len(s.Lines) }

// End returns the index one past the last line. Equal to Start for
// zero-width spans.
func (s LineSpan) End() int { return s.Start + len(s.Lines) }

// =============================================================================
// REGION KIND
// =============================================================================

// RegionKind classifies how a base interval was changed by the two sides.
type RegionKind int

const (
	// RegionUnchanged - Interval identical in base, ours, and theirs, or
	// rewritten identically by both sides
	RegionUnchanged RegionKind = iota

	// RegionOursOnly - Interval changed by our side alone
	RegionOursOnly

	// RegionTheirsOnly - Interval changed by their side alone
	RegionTheirsOnly

	// RegionConflict - Interval changed by both sides in different ways
	RegionConflict
)

// String returns the string representation of a region kind.
func (k RegionKind) String() string {
	switch k {
	case RegionUnchanged:
		return "unchanged"
	case RegionOursOnly:
		return "ours-only"
	case RegionTheirsOnly:
		return "theirs-only"
	case RegionConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// =============================================================================
// RESOLUTION
// =============================================================================

// Resolution represents how a conflict region has been resolved.
type Resolution int

const (
	// ResolutionNone - Conflict not resolved yet
	ResolutionNone Resolution = iota

	// ResolutionOurs - Resolved with our side's lines
	ResolutionOurs

	// ResolutionTheirs - Resolved with their side's lines
	ResolutionTheirs

	// ResolutionCustom - Resolved with a per-line selection from both sides
	ResolutionCustom

	// ResolutionManual - Resolved with free-typed replacement text
	ResolutionManual
)

// String returns the string representation of a resolution state.
func (r Resolution) String() string {
	switch r {
	case ResolutionNone:
		return "none"
	case ResolutionOurs:
		return "ours"
	case ResolutionTheirs:
		return "theirs"
	case ResolutionCustom:
		return "custom"
	case ResolutionManual:
		return "manual"
	default:
		return "unknown"
	}
}

// =============================================================================
// SELECTABLE LINE
// =============================================================================

// SelectableLine is one candidate line of a conflict region together with
// its inclusion flag for custom resolution. Selection state is materialized
// lazily: regions resolved at whole-side granularity never allocate it.
type SelectableLine struct {
	// Text is the literal line content.
	Text string

	// Included reports whether the line is part of the custom output.
	Included bool
}

// =============================================================================
// MERGE REGION
// =============================================================================

// MergeRegion is one classified interval of a three-way merge. The
// structural fields are fixed when the region list is built; resolution
// state changes only through methods, so the owning result's change hook
// always observes mutations.
//
// Concatenating the Base spans of a result's regions in order reproduces
// the base file exactly.
type MergeRegion struct {
	// Kind classifies the region.
	Kind RegionKind

	// Base is the region's interval of the base file. Zero-width when both
	// sides inserted at the same boundary.
	Base LineSpan

	// Content holds the output lines for non-conflict kinds: the shared
	// lines for RegionUnchanged, the changed side's lines for
	// RegionOursOnly and RegionTheirsOnly. Nil for conflicts.
	Content []string

	// OursLines and TheirsLines are the two candidate contents of a
	// conflict region. Either may be empty when that side deleted the
	// interval. Nil for non-conflict kinds.
	OursLines   []string
	TheirsLines []string

	oursLabel   string
	theirsLabel string

	resolution       Resolution
	manualText       string
	selectableOurs   []SelectableLine
	selectableTheirs []SelectableLine

	// notify is wired exactly once when the owning result is built.
	notify func()
}

// Resolution returns the region's current resolution state.
func (r *MergeRegion) Resolution() Resolution { return r.resolution }

// IsResolved reports whether the region needs no further attention.
// Non-conflict regions are always resolved; conflict regions are resolved
// once any resolution has been applied.
func (r *MergeRegion) IsResolved() bool {
	return r.Kind != RegionConflict || r.resolution != ResolutionNone
}

// ManualText returns the free-typed replacement text. Meaningful only while
// the resolution is ResolutionManual.
func (r *MergeRegion) ManualText() string { return r.manualText }

// SelectableOurs returns a snapshot of the our-side selection state. Empty
// until custom-mode state has been materialized.
func (r *MergeRegion) SelectableOurs() []SelectableLine {
	return append([]SelectableLine(nil), r.selectableOurs...)
}

// SelectableTheirs returns a snapshot of the their-side selection state.
// Empty until custom-mode state has been materialized.
func (r *MergeRegion) SelectableTheirs() []SelectableLine {
	return append([]SelectableLine(nil), r.selectableTheirs...)
}

// AcceptOurs resolves the conflict with our side's lines. Previously
// materialized selection state is dropped, so a later custom-mode entry
// starts fresh from this choice.
func (r *MergeRegion) AcceptOurs() error {
	if r.Kind != RegionConflict {
		return fmt.Errorf("accept ours: %w (kind %s)", ErrNotConflict, r.Kind)
	}
	r.resolution = ResolutionOurs
	r.selectableOurs = nil
	r.selectableTheirs = nil
	r.changed()
	return nil
}

// AcceptTheirs resolves the conflict with their side's lines. Previously
// materialized selection state is dropped, so a later custom-mode entry
// starts fresh from this choice.
func (r *MergeRegion) AcceptTheirs() error {
	if r.Kind != RegionConflict {
		return fmt.Errorf("accept theirs: %w (kind %s)", ErrNotConflict, r.Kind)
	}
	r.resolution = ResolutionTheirs
	r.selectableOurs = nil
	r.selectableTheirs = nil
	r.changed()
	return nil
}

// EnterCustomMode materializes per-line selection state if it is not
// already present. After a whole-side accept the chosen side's lines start
// included; otherwise all lines start excluded. Entering custom mode alone
// does not resolve the region; the first toggle does.
func (r *MergeRegion) EnterCustomMode() error {
	if r.Kind != RegionConflict {
		return fmt.Errorf("enter custom mode: %w (kind %s)", ErrNotConflict, r.Kind)
	}
	r.ensureSelectable()
	return nil
}

// ToggleOursLine flips the inclusion of our-side line i, materializing
// selection state if needed. The first toggle moves the region to
// ResolutionCustom.
func (r *MergeRegion) ToggleOursLine(i int) error {
	if r.Kind != RegionConflict {
		return fmt.Errorf("toggle ours line: %w (kind %s)", ErrNotConflict, r.Kind)
	}
	r.ensureSelectable()
	if i < 0 || i >= len(r.selectableOurs) {
		return fmt.Errorf("toggle ours line: index %d out of range [0,%d)", i, len(r.selectableOurs))
	}
	r.selectableOurs[i].Included = !r.selectableOurs[i].Included
	r.resolution = ResolutionCustom
	r.changed()
	return nil
}

// ToggleTheirsLine flips the inclusion of their-side line i, materializing
// selection state if needed. The first toggle moves the region to
// ResolutionCustom.
func (r *MergeRegion) ToggleTheirsLine(i int) error {
	if r.Kind != RegionConflict {
		return fmt.Errorf("toggle theirs line: %w (kind %s)", ErrNotConflict, r.Kind)
	}
	r.ensureSelectable()
	if i < 0 || i >= len(r.selectableTheirs) {
		return fmt.Errorf("toggle theirs line: index %d out of range [0,%d)", i, len(r.selectableTheirs))
	}
	r.selectableTheirs[i].Included = !r.selectableTheirs[i].Included
	r.resolution = ResolutionCustom
	r.changed()
	return nil
}

// SetManualText resolves the region with literal replacement text. The text
// is split into lines during assembly under the same framing rules as the
// input files.
func (r *MergeRegion) SetManualText(text string) error {
	if r.Kind != RegionConflict {
		return fmt.Errorf("set manual text: %w (kind %s)", ErrNotConflict, r.Kind)
	}
	r.manualText = text
	r.resolution = ResolutionManual
	r.changed()
	return nil
}

// Reset returns the region to the unresolved state, dropping selection
// state and manual text.
func (r *MergeRegion) Reset() error {
	if r.Kind != RegionConflict {
		return fmt.Errorf("reset: %w (kind %s)", ErrNotConflict, r.Kind)
	}
	r.resolution = ResolutionNone
	r.manualText = ""
	r.selectableOurs = nil
	r.selectableTheirs = nil
	r.changed()
	return nil
}

// ResolvedLines returns the region's output lines under its current state.
// Unresolved conflicts render as a conflict-marker block, so the output is
// always assemblable. Computed on demand, never cached.
func (r *MergeRegion) ResolvedLines() []string {
	if r.Kind != RegionConflict {
		return r.Content
	}
	switch r.resolution {
	case ResolutionOurs:
		return r.OursLines
	case ResolutionTheirs:
		return r.TheirsLines
	case ResolutionCustom:
		lines := make([]string, 0, len(r.selectableOurs)+len(r.selectableTheirs))
		for _, sel := range r.selectableOurs {
			if sel.Included {
				lines = append(lines, sel.Text)
			}
		}
		for _, sel := range r.selectableTheirs {
			if sel.Included {
				lines = append(lines, sel.Text)
			}
		}
		return lines
	case ResolutionManual:
		return diff.SplitLines(r.manualText)
	default:
		return r.markerBlock()
	}
}

// ensureSelectable materializes selection state once. Whole-side accepts
// seed the chosen side as included; any other state seeds everything
// excluded.
func (r *MergeRegion) ensureSelectable() {
	if r.selectableOurs != nil || r.selectableTheirs != nil {
		return
	}
	r.selectableOurs = makeSelectable(r.OursLines, r.resolution == ResolutionOurs)
	r.selectableTheirs = makeSelectable(r.TheirsLines, r.resolution == ResolutionTheirs)
}

func makeSelectable(lines []string, included bool) []SelectableLine {
	sel := make([]SelectableLine, len(lines))
	for i, line := range lines {
		sel[i] = SelectableLine{Text: line, Included: included}
	}
	return sel
}

// markerBlock renders the canonical conflict-marker form of an unresolved
// region.
func (r *MergeRegion) markerBlock() []string {
	oursLabel, theirsLabel := r.oursLabel, r.theirsLabel
	if oursLabel == "" {
		oursLabel = DefaultOursLabel
	}
	if theirsLabel == "" {
		theirsLabel = DefaultTheirsLabel
	}

	lines := make([]string, 0, len(r.OursLines)+len(r.TheirsLines)+3)
	lines = append(lines, MarkerOurs+" "+oursLabel)
	lines = append(lines, r.OursLines...)
	lines = append(lines, MarkerSeparator)
	lines = append(lines, r.TheirsLines...)
	lines = append(lines, MarkerTheirs+" "+theirsLabel)
	return lines
}

func (r *MergeRegion) changed() {
	if r.notify != nil {
		r.notify()
	}
}
