package clustering

import (
	"context"
	"fmt"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// Engine runs a clustering delegate and derives per-cluster statistics.
type Engine struct {
	Clusterer      Clusterer
	MinClusterSize int
	MinSamples     int
}

// NewEngine wires a delegate with its size parameters.
func NewEngine(clusterer Clusterer, minClusterSize, minSamples int) *Engine {
	return &Engine{
		Clusterer:      clusterer,
		MinClusterSize: minClusterSize,
		MinSamples:     minSamples,
	}
}

// Run clusters the fused features and computes statistics for each cluster.
// Inputs smaller than the minimum cluster size produce an all-noise labeling
// rather than an error; the delegate is not consulted.
func (e *Engine) Run(ctx context.Context, skills []types.Skill, features [][]float64) (types.Labeling, types.ClusterStatsMap, error) {
	if len(skills) != len(features) {
		return types.Labeling{}, nil, fmt.Errorf("got %d skills but %d feature rows", len(skills), len(features))
	}

	n := len(features)
	if n < e.MinClusterSize {
		labels := make([]int, n)
		for i := range labels {
			labels[i] = types.NoiseLabel
		}
		return types.NewLabeling(labels), types.ClusterStatsMap{}, nil
	}

	labels, err := e.Clusterer.Cluster(features, e.MinClusterSize, e.MinSamples)
	if err != nil {
		return types.Labeling{}, nil, fmt.Errorf("clustering delegate failed: %w", err)
	}
	if err := checkLabels(labels, n); err != nil {
		return types.Labeling{}, nil, err
	}

	labeling := types.NewLabeling(labels)
	stats, err := ComputeStats(ctx, skills, labeling, features)
	if err != nil {
		return types.Labeling{}, nil, fmt.Errorf("computing cluster stats failed: %w", err)
	}
	return labeling, stats, nil
}
