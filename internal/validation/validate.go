// Package validation checks a built taxonomy for coverage, coherence,
// distinctiveness, and structural sanity.
package validation

import (
	"fmt"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// Hard floors that make a taxonomy invalid regardless of configuration.
const (
	minAcceptableCoverage  = 0.5
	minAcceptableCoherence = 0.3
	maxOrphanRatio         = 0.3
)

// Options holds the configured quality thresholds. Misses against these
// produce warnings; only the hard floors above invalidate a taxonomy.
type Options struct {
	CoverageThreshold        float64
	CoherenceThreshold       float64
	DistinctivenessThreshold float64
	MaxOrphanSkills          int
	MinDepth                 int
	MaxDepth                 int
	BalanceThreshold         float64
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{
		CoverageThreshold:        0.95,
		CoherenceThreshold:       0.7,
		DistinctivenessThreshold: 0.5,
		MaxOrphanSkills:          100,
		MinDepth:                 2,
		MaxDepth:                 10,
		BalanceThreshold:         0.5,
	}
}

// Validate scores the taxonomy and returns a verdict. It reads its inputs
// without modification, so validating twice yields the same result.
func Validate(taxonomy *types.Taxonomy, skills []types.Skill, labeling types.Labeling, stats types.ClusterStatsMap, opts Options) *types.ValidationResult {
	result := &types.ValidationResult{
		IsValid: true,
		Metrics: make(map[string]float64),
	}

	if taxonomy == nil || taxonomy.Root == nil {
		result.AddError("taxonomy has no root")
		return result
	}
	if len(skills) == 0 {
		result.AddError("no skills to validate against")
		return result
	}

	coverage := checkCoverage(labeling, result, opts)
	coherence := checkCoherence(skills, labeling, stats, result, opts)
	distinctiveness := checkDistinctiveness(skills, labeling, result, opts)
	checkStructure(taxonomy, result, opts)

	result.Metrics[types.MetricCoverage] = coverage
	result.Metrics[types.MetricCoherence] = coherence
	result.Metrics[types.MetricDistinctiveness] = distinctiveness
	result.Metrics[types.MetricOrphanSkills] = float64(labeling.NoiseCount())
	result.Metrics[types.MetricMaxDepth] = float64(taxonomy.Root.Depth())

	return result
}

func checkCoverage(labeling types.Labeling, result *types.ValidationResult, opts Options) float64 {
	total := labeling.Len()
	labeled := total - labeling.NoiseCount()
	coverage := float64(labeled) / float64(total)

	if coverage < minAcceptableCoverage {
		result.AddError(fmt.Sprintf("coverage %.2f is below the %.2f floor", coverage, minAcceptableCoverage))
	} else if coverage < opts.CoverageThreshold {
		result.AddWarning(fmt.Sprintf("coverage %.2f is below the configured threshold %.2f", coverage, opts.CoverageThreshold))
	}

	orphans := labeling.NoiseCount()
	if ratio := float64(orphans) / float64(total); ratio > maxOrphanRatio {
		result.AddError(fmt.Sprintf("%.0f%% of skills are orphaned (floor is %.0f%%)", ratio*100, maxOrphanRatio*100))
	} else if orphans > opts.MaxOrphanSkills {
		result.AddWarning(fmt.Sprintf("%d orphan skills exceed the configured limit %d", orphans, opts.MaxOrphanSkills))
	}

	return coverage
}
