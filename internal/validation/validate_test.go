package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

func healthyFixture() (*types.Taxonomy, []types.Skill, types.Labeling, types.ClusterStatsMap) {
	skills := make([]types.Skill, 8)
	labels := make([]int, 8)
	for i := range skills {
		skills[i] = types.Skill{
			ID:       string(rune('a' + i)),
			Level:    3,
			Context:  types.ContextPractical,
			Category: "technical",
		}
		labels[i] = i / 4
	}

	root := &types.TaxonomyNode{
		ID:   "root",
		Kind: types.NodeRoot,
		Children: []*types.TaxonomyNode{
			{ID: "c0", Kind: types.NodeCluster, ClusterID: 0, SkillIDs: []string{"a", "b", "c", "d"}},
			{ID: "c1", Kind: types.NodeCluster, ClusterID: 1, SkillIDs: []string{"e", "f", "g", "h"}},
		},
	}
	taxonomy := &types.Taxonomy{Root: root}

	stats := types.ClusterStatsMap{
		0: {ID: 0, Size: 4, Coherence: 0.9},
		1: {ID: 1, Size: 4, Coherence: 0.8},
	}
	return taxonomy, skills, types.NewLabeling(labels), stats
}

func TestValidate_HealthyTaxonomy(t *testing.T) {
	taxonomy, skills, labeling, stats := healthyFixture()

	result := Validate(taxonomy, skills, labeling, stats, DefaultOptions())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.InDelta(t, 1.0, result.Metrics[types.MetricCoverage], 1e-9)
	assert.InDelta(t, 0.85, result.Metrics[types.MetricCoherence], 1e-9)
	assert.InDelta(t, 1.0, result.Metrics[types.MetricDistinctiveness], 1e-9)
	assert.InDelta(t, 0.0, result.Metrics[types.MetricOrphanSkills], 1e-9)
	assert.InDelta(t, 2.0, result.Metrics[types.MetricMaxDepth], 1e-9)
	assert.Contains(t, result.Metrics, types.MetricBalance)
}

func TestValidate_Idempotent(t *testing.T) {
	taxonomy, skills, labeling, stats := healthyFixture()

	first := Validate(taxonomy, skills, labeling, stats, DefaultOptions())
	second := Validate(taxonomy, skills, labeling, stats, DefaultOptions())

	assert.Equal(t, first.IsValid, second.IsValid)
	assert.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, first.Warnings, second.Warnings)
	assert.Equal(t, first.Metrics, second.Metrics)
}

func TestValidate_CoverageFloor(t *testing.T) {
	taxonomy, skills, _, stats := healthyFixture()
	// 6 of 8 skills are noise: coverage 0.25 breaks the hard floor.
	labeling := types.NewLabeling([]int{0, 0, -1, -1, -1, -1, -1, -1})

	result := Validate(taxonomy, skills, labeling, stats, DefaultOptions())

	assert.False(t, result.IsValid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidate_CoverageBelowConfiguredThresholdWarns(t *testing.T) {
	taxonomy, skills, _, stats := healthyFixture()
	// 1 of 8 noise: coverage 0.875 clears the floor, misses the 0.95 target.
	labeling := types.NewLabeling([]int{0, 0, 0, 0, 1, 1, 1, -1})

	result := Validate(taxonomy, skills, labeling, stats, DefaultOptions())

	assert.True(t, result.IsValid)
	assert.NotEmpty(t, result.Warnings)
}

func TestValidate_OrphanRatioFloor(t *testing.T) {
	taxonomy, skills, _, stats := healthyFixture()
	// 3 of 8 orphaned is 37.5%, above the 30% ceiling.
	labeling := types.NewLabeling([]int{0, 0, 0, 1, 1, -1, -1, -1})

	result := Validate(taxonomy, skills, labeling, stats, DefaultOptions())

	assert.False(t, result.IsValid)
}

func TestValidate_CoherenceFloor(t *testing.T) {
	taxonomy, skills, labeling, _ := healthyFixture()
	stats := types.ClusterStatsMap{
		0: {ID: 0, Size: 4, Coherence: 0.1},
		1: {ID: 1, Size: 4, Coherence: 0.2},
	}

	result := Validate(taxonomy, skills, labeling, stats, DefaultOptions())

	assert.False(t, result.IsValid)
	assert.InDelta(t, 0.15, result.Metrics[types.MetricCoherence], 1e-9)
}

func TestValidate_DepthOutsideRangeWarns(t *testing.T) {
	taxonomy, skills, labeling, stats := healthyFixture()
	opts := DefaultOptions()
	opts.MinDepth = 3

	result := Validate(taxonomy, skills, labeling, stats, opts)

	// Depth bounds are a configured threshold, not a hard floor.
	assert.True(t, result.IsValid)
	assert.NotEmpty(t, result.Warnings)
}

func TestValidate_DeepTreeStaysValid(t *testing.T) {
	_, skills, labeling, stats := healthyFixture()

	// A chain 11 nodes tall with healthy coverage and coherence.
	leaf := &types.TaxonomyNode{
		Kind: types.NodeCluster, ClusterID: 0,
		SkillIDs: []string{"a", "b", "c", "d", "e", "f", "g", "h"},
	}
	node := leaf
	for i := 0; i < 10; i++ {
		node = &types.TaxonomyNode{Kind: types.NodeCategory, Children: []*types.TaxonomyNode{node}}
	}
	node.Kind = types.NodeRoot
	taxonomy := &types.Taxonomy{Root: node}

	result := Validate(taxonomy, skills, labeling, stats, DefaultOptions())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.NotEmpty(t, result.Warnings)
}

func TestCheckCoherence_NoClustersWarns(t *testing.T) {
	result := &types.ValidationResult{IsValid: true, Metrics: map[string]float64{}}

	got := checkCoherence(nil, types.NewLabeling([]int{-1, -1}), types.ClusterStatsMap{}, result, DefaultOptions())

	assert.Zero(t, got)
	assert.True(t, result.IsValid)
	assert.NotEmpty(t, result.Warnings)
}

func TestValidate_NilRootAndEmptySkills(t *testing.T) {
	_, skills, labeling, stats := healthyFixture()

	result := Validate(nil, skills, labeling, stats, DefaultOptions())
	assert.False(t, result.IsValid)

	taxonomy, _, _, _ := healthyFixture()
	result = Validate(taxonomy, nil, labeling, stats, DefaultOptions())
	assert.False(t, result.IsValid)
}

func TestBasicCoherence_FallbackWhenStatsMissing(t *testing.T) {
	taxonomy, skills, labeling, _ := healthyFixture()

	// No stats at all: both clusters fall back to the basic estimate.
	// Uniform levels give a tightness factor of 1; size 4 gives 4/50.
	result := Validate(taxonomy, skills, labeling, types.ClusterStatsMap{}, DefaultOptions())

	want := (4.0/50.0 + 1.0) / 2.0
	assert.InDelta(t, want, result.Metrics[types.MetricCoherence], 1e-9)
}

func TestCheckDistinctiveness_MixedClusters(t *testing.T) {
	skills := []types.Skill{
		{Category: "technical"},
		{Category: "technical"},
		{Category: "cognitive"},
		{Category: "interpersonal"},
	}
	labeling := types.NewLabeling([]int{0, 0, 1, 1})
	result := &types.ValidationResult{IsValid: true, Metrics: map[string]float64{}}

	// Cluster 0 is pure (score 1); cluster 1 spans 2 of 3 categories
	// (score 1 - 1/2).
	got := checkDistinctiveness(skills, labeling, result, DefaultOptions())
	assert.InDelta(t, 0.75, got, 1e-9)
}

func TestBalanceScore_ChildCountSpread(t *testing.T) {
	// Root and its first child both branch into 2: counts [2, 2], cv 0.
	uniform := &types.TaxonomyNode{
		Children: []*types.TaxonomyNode{
			{
				Children: []*types.TaxonomyNode{
					{SkillIDs: []string{"a"}},
					{SkillIDs: []string{"b"}},
				},
			},
			{SkillIDs: []string{"c", "d", "e", "f"}},
		},
	}
	assert.InDelta(t, 1.0, balanceScore(uniform), 1e-9)

	// Branching nodes with 2 and 6 children: counts [2, 6], mean 4,
	// population std 2, cv 0.5.
	skewed := &types.TaxonomyNode{
		Children: []*types.TaxonomyNode{
			{
				Children: []*types.TaxonomyNode{
					{SkillIDs: []string{"a"}}, {SkillIDs: []string{"b"}}, {SkillIDs: []string{"c"}},
					{SkillIDs: []string{"d"}}, {SkillIDs: []string{"e"}}, {SkillIDs: []string{"f"}},
				},
			},
			{SkillIDs: []string{"g", "h"}},
		},
	}
	assert.InDelta(t, 1.0/1.5, balanceScore(skewed), 1e-9)

	// No branching nodes at all scores perfect balance.
	assert.InDelta(t, 1.0, balanceScore(&types.TaxonomyNode{}), 1e-9)
}
