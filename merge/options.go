// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package merge implements three-way merge conflict resolution for file
// content.
package merge

// Default conflict-marker labels, used when Options leaves them empty.
const (
	DefaultOursLabel   = "ours"
	DefaultTheirsLabel = "theirs"
)

// Options configures region construction for one file.
//
// The zero value is ready to use and produces the default marker labels.
type Options struct {
	// OursLabel names our side in conflict-marker output, after "<<<<<<<".
	// Host applications usually pass the current branch name.
	OursLabel string

	// TheirsLabel names their side in conflict-marker output, after
	// ">>>>>>>". Host applications usually pass the merged-in ref name.
	TheirsLabel string
}
