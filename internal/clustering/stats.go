package clustering

import (
	"context"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// maxTopKeywords caps the keyword summary per cluster.
const maxTopKeywords = 10

// ComputeStats builds per-cluster statistics over the fused feature space.
// Clusters are disjoint, so each one is computed concurrently.
func ComputeStats(ctx context.Context, skills []types.Skill, labeling types.Labeling, features [][]float64) (types.ClusterStatsMap, error) {
	stats := make(types.ClusterStatsMap)
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	for _, id := range labeling.ClusterIDs() {
		id := id
		members := labeling.Members(id)
		g.Go(func() error {
			cs := computeClusterStats(id, members, skills, features)
			mu.Lock()
			stats[id] = cs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func computeClusterStats(id int, members []int, skills []types.Skill, features [][]float64) *types.ClusterStats {
	cs := &types.ClusterStats{ID: id, Size: len(members)}
	if len(members) == 0 {
		return cs
	}

	// Centroid and distance spread in fused space.
	dim := len(features[members[0]])
	centroid := make([]float64, dim)
	for _, m := range members {
		for d, v := range features[m] {
			centroid[d] += v
		}
	}
	for d := range centroid {
		centroid[d] /= float64(len(members))
	}
	cs.Centroid = centroid

	distances := make([]float64, len(members))
	for i, m := range members {
		distances[i] = euclidean(features[m], centroid)
	}
	cs.AvgDistance = mean(distances)
	cs.StdDistance = std(distances, cs.AvgDistance)
	cs.Cohesion = 1.0 / (1.0 + cs.AvgDistance)

	cs.Level = levelStats(members, skills)
	cs.Context = contextStats(members, skills)
	cs.TopKeywords = topKeywords(members, skills)

	total := 0.0
	for _, m := range members {
		total += skills[m].Confidence
	}
	cs.AvgConfidence = total / float64(len(members))

	cs.Coherence = coherence(cs.Level.Std, cs.Context.Diversity)
	return cs
}

func levelStats(members []int, skills []types.Skill) types.LevelStats {
	levels := make([]float64, len(members))
	counts := make(map[int]int)
	minLevel, maxLevel := skills[members[0]].Level, skills[members[0]].Level
	for i, m := range members {
		level := skills[m].Level
		levels[i] = float64(level)
		counts[level]++
		if level < minLevel {
			minLevel = level
		}
		if level > maxLevel {
			maxLevel = level
		}
	}

	// Mode; the smallest level wins ties.
	dominant, best := 0, -1
	for level := types.MinLevel; level <= types.MaxLevel; level++ {
		if counts[level] > best {
			best = counts[level]
			dominant = level
		}
	}

	m := mean(levels)
	return types.LevelStats{
		Dominant: dominant,
		Mean:     m,
		Std:      std(levels, m),
		Min:      minLevel,
		Max:      maxLevel,
	}
}

func contextStats(members []int, skills []types.Skill) types.ContextStats {
	distribution := make(map[types.Context]int)
	for _, m := range members {
		distribution[skills[m].Context]++
	}

	// Mode; the lexicographically first context wins ties.
	contexts := make([]types.Context, 0, len(distribution))
	for ctx := range distribution {
		contexts = append(contexts, ctx)
	}
	sort.Slice(contexts, func(i, j int) bool { return contexts[i] < contexts[j] })

	var dominant types.Context
	best := -1
	for _, ctx := range contexts {
		if distribution[ctx] > best {
			best = distribution[ctx]
			dominant = ctx
		}
	}

	return types.ContextStats{
		Dominant:     dominant,
		Distribution: distribution,
		Diversity:    float64(len(distribution)) / float64(types.NumContexts),
	}
}

func topKeywords(members []int, skills []types.Skill) []string {
	counts := make(map[string]int)
	for _, m := range members {
		for _, kw := range skills[m].Keywords {
			counts[kw]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	keywords := make([]string, 0, len(counts))
	for kw := range counts {
		keywords = append(keywords, kw)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})

	if len(keywords) > maxTopKeywords {
		keywords = keywords[:maxTopKeywords]
	}
	return keywords
}

// coherence penalizes level spread (up to 0.5) and context diversity beyond a
// single dominant context, floored at 0.
func coherence(levelStd, contextDiversity float64) float64 {
	levelPenalty := math.Min(levelStd/2.0, 0.5)
	diversityPenalty := math.Max(0, (contextDiversity-0.33)*0.3)
	score := 1.0 - levelPenalty - diversityPenalty
	if score < 0 {
		return 0
	}
	return score
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// std is the population standard deviation.
func std(values []float64, m float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		d := v - m
		total += d * d
	}
	return math.Sqrt(total / float64(len(values)))
}
