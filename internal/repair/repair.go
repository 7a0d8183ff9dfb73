// Package repair adjusts a labeling in a single pass: clusters spanning too
// many proficiency levels are split into level bands, and undersized clusters
// are merged into their most similar large neighbor or demoted to noise.
package repair

import (
	"github.com/jonathan/skill-taxonomy/internal/types"
)

const (
	// splitLevelRange is the maximum level spread a cluster may keep.
	splitLevelRange = 2
	// mergeSimilarityThreshold is the minimum similarity for absorption.
	mergeSimilarityThreshold = 0.5
	// mergeFloor is the lower bound on the undersized-cluster cutoff.
	mergeFloor = 5
)

// Run returns a repaired labeling. The input labeling is not modified. All
// split and merge decisions read the pre-repair statistics snapshot; clusters
// created by splitting are not re-examined within the pass.
func Run(labeling types.Labeling, skills []types.Skill, stats types.ClusterStatsMap, minClusterSize int) types.Labeling {
	repaired := labeling.Clone()
	splitByLevel(repaired, skills, stats)
	mergeSmall(repaired, stats, minClusterSize)
	return repaired
}

// band maps a level to its split band: levels 1-2 share band 0, 3-4 band 1,
// 5-6 band 2, 7 band 3.
func band(level int) int {
	return (level - 1) / 2
}
