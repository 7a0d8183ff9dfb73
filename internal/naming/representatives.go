package naming

import (
	"math"
	"sort"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// Representative scoring weights: closeness to the centroid dominates, then
// fit with the cluster's dominant level, then extraction confidence.
const (
	centralityWeight = 0.5
	levelFitWeight   = 0.3
	confidenceWeight = 0.2
)

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Representatives selects up to n skills per cluster to show a naming
// delegate, scored by centrality, level fit, and confidence.
func Representatives(skills []types.Skill, labeling types.Labeling, stats types.ClusterStatsMap, features [][]float64, n int) map[int][]types.Skill {
	if n <= 0 {
		n = 3
	}

	out := make(map[int][]types.Skill)
	for _, id := range stats.IDs() {
		members := labeling.Members(id)
		if len(members) == 0 {
			continue
		}
		cs := stats[id]

		type scored struct {
			member int
			score  float64
		}
		candidates := make([]scored, 0, len(members))
		for _, m := range members {
			skill := skills[m]

			centrality := 1.0
			if len(cs.Centroid) > 0 && m < len(features) {
				centrality = 1.0 / (1.0 + euclidean(features[m], cs.Centroid))
			}

			levelDiff := skill.Level - cs.Level.Dominant
			if levelDiff < 0 {
				levelDiff = -levelDiff
			}
			levelFit := 1.0 / (1.0 + float64(levelDiff))

			candidates = append(candidates, scored{
				member: m,
				score:  centralityWeight*centrality + levelFitWeight*levelFit + confidenceWeight*skill.Confidence,
			})
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].score > candidates[j].score
		})

		count := n
		if count > len(candidates) {
			count = len(candidates)
		}
		reps := make([]types.Skill, count)
		for i := 0; i < count; i++ {
			reps[i] = skills[candidates[i].member]
		}
		out[id] = reps
	}
	return out
}
