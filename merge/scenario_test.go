// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package merge implements three-way merge conflict resolution for file
// content.
package merge

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SCENARIO TESTS
// =============================================================================

// mergeScenario is one three-way merge fixture from testdata/scenarios.toml,
// with the expected classification and both bulk-resolution outcomes.
type mergeScenario struct {
	Name         string   `toml:"name"`
	Base         string   `toml:"base"`
	Ours         string   `toml:"ours"`
	Theirs       string   `toml:"theirs"`
	Conflicts    int      `toml:"conflicts"`
	Kinds        []string `toml:"kinds"`
	MergedOurs   string   `toml:"merged_ours"`
	MergedTheirs string   `toml:"merged_theirs"`
}

type scenarioFile struct {
	Scenarios []mergeScenario `toml:"scenario"`
}

func TestMergeScenarios(t *testing.T) {
	var file scenarioFile
	_, err := toml.DecodeFile("testdata/scenarios.toml", &file)
	require.NoError(t, err, "scenario fixtures must load")
	require.NotEmpty(t, file.Scenarios)

	for _, sc := range file.Scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			result := NewFileMergeResult(sc.Base, sc.Ours, sc.Theirs)

			require.Equal(t, sc.Conflicts, result.TotalConflictCount())

			kinds := make([]string, 0, result.RegionCount())
			for _, region := range result.Regions() {
				kinds = append(kinds, region.Kind.String())
			}
			require.Equal(t, sc.Kinds, kinds)

			result.SelectAllOurs()
			require.True(t, result.IsFullyResolved())
			require.Equal(t, sc.MergedOurs, result.MergedContent())

			result = NewFileMergeResult(sc.Base, sc.Ours, sc.Theirs)
			result.SelectAllTheirs()
			require.True(t, result.IsFullyResolved())
			require.Equal(t, sc.MergedTheirs, result.MergedContent())
		})
	}
}
