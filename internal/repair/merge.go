package repair

import (
	"github.com/jonathan/skill-taxonomy/internal/types"
)

// mergeSmall absorbs undersized clusters into their most similar large
// cluster, or demotes them to noise when nothing is similar enough. Sizes,
// dominant levels, and dominant contexts come from the pre-repair snapshot.
func mergeSmall(labeling types.Labeling, stats types.ClusterStatsMap, minClusterSize int) {
	cutoff := minClusterSize / 2
	if cutoff < mergeFloor {
		cutoff = mergeFloor
	}

	var targets []int
	for _, id := range stats.IDs() {
		if stats[id].Size >= minClusterSize {
			targets = append(targets, id)
		}
	}

	for _, id := range stats.IDs() {
		if stats[id].Size >= cutoff {
			continue
		}

		bestTarget, bestSim := types.NoiseLabel, 0.0
		for _, target := range targets {
			if target == id {
				continue
			}
			if sim := similarity(stats[id], stats[target]); sim > bestSim {
				bestSim = sim
				bestTarget = target
			}
		}

		newLabel := types.NoiseLabel
		if bestSim > mergeSimilarityThreshold {
			newLabel = bestTarget
		}
		for _, m := range labeling.Members(id) {
			labeling.Labels[m] = newLabel
		}
	}
}

// similarity scores two clusters by dominant-level proximity, halved when
// their dominant contexts differ.
func similarity(a, b *types.ClusterStats) float64 {
	levelDiff := a.Level.Dominant - b.Level.Dominant
	if levelDiff < 0 {
		levelDiff = -levelDiff
	}
	sim := 1.0 / (1.0 + float64(levelDiff))
	if a.Context.Dominant != b.Context.Dominant {
		sim *= 0.5
	}
	return sim
}
