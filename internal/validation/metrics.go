package validation

import (
	"fmt"
	"math"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// checkCoherence averages the per-cluster coherence scores. When a cluster
// carries no computed statistics, a basic estimate stands in: the mean of a
// size factor min(1, size/50) and a level-tightness factor 1/(1+levelStd).
func checkCoherence(skills []types.Skill, labeling types.Labeling, stats types.ClusterStatsMap, result *types.ValidationResult, opts Options) float64 {
	ids := labeling.ClusterIDs()
	if len(ids) == 0 {
		result.AddWarning("taxonomy contains no clusters")
		return 0
	}

	total := 0.0
	for _, id := range ids {
		if cs, ok := stats[id]; ok {
			total += cs.Coherence
			continue
		}
		total += basicCoherence(id, skills, labeling)
	}
	coherence := total / float64(len(ids))

	if coherence < minAcceptableCoherence {
		result.AddError(fmt.Sprintf("average coherence %.2f is below the %.2f floor", coherence, minAcceptableCoherence))
	} else if coherence < opts.CoherenceThreshold {
		result.AddWarning(fmt.Sprintf("average coherence %.2f is below the configured threshold %.2f", coherence, opts.CoherenceThreshold))
	}
	return coherence
}

func basicCoherence(id int, skills []types.Skill, labeling types.Labeling) float64 {
	members := labeling.Members(id)
	if len(members) == 0 {
		return 0
	}

	sizeFactor := math.Min(1.0, float64(len(members))/50.0)

	meanLevel := 0.0
	for _, m := range members {
		meanLevel += float64(skills[m].Level)
	}
	meanLevel /= float64(len(members))

	variance := 0.0
	for _, m := range members {
		d := float64(skills[m].Level) - meanLevel
		variance += d * d
	}
	levelStd := math.Sqrt(variance / float64(len(members)))

	return (sizeFactor + 1.0/(1.0+levelStd)) / 2.0
}

// checkDistinctiveness measures how focused each cluster is on a single
// category relative to the overall category spread.
func checkDistinctiveness(skills []types.Skill, labeling types.Labeling, result *types.ValidationResult, opts Options) float64 {
	allCategories := make(map[string]bool)
	for _, skill := range skills {
		allCategories[skill.Category] = true
	}
	totalCats := len(allCategories)

	ids := labeling.ClusterIDs()
	if len(ids) == 0 {
		return 0
	}
	if totalCats <= 1 {
		return 1.0
	}

	total := 0.0
	for _, id := range ids {
		clusterCats := make(map[string]bool)
		for _, m := range labeling.Members(id) {
			clusterCats[skills[m].Category] = true
		}
		total += 1.0 - float64(len(clusterCats)-1)/float64(totalCats-1)
	}
	distinctiveness := total / float64(len(ids))

	if distinctiveness < opts.DistinctivenessThreshold {
		result.AddWarning(fmt.Sprintf("average distinctiveness %.2f is below the configured threshold %.2f",
			distinctiveness, opts.DistinctivenessThreshold))
	}
	return distinctiveness
}

// checkStructure verifies depth bounds, sibling balance, and empty leaves.
func checkStructure(taxonomy *types.Taxonomy, result *types.ValidationResult, opts Options) {
	depth := taxonomy.Root.Depth()
	if depth < opts.MinDepth || depth > opts.MaxDepth {
		result.AddWarning(fmt.Sprintf("tree depth %d outside acceptable range [%d, %d]", depth, opts.MinDepth, opts.MaxDepth))
	}

	balance := balanceScore(taxonomy.Root)
	result.Metrics[types.MetricBalance] = balance
	if balance < opts.BalanceThreshold {
		result.AddWarning(fmt.Sprintf("balance score %.2f is below the threshold %.2f", balance, opts.BalanceThreshold))
	}

	empty := 0
	taxonomy.Root.Walk(func(node *types.TaxonomyNode, _ int) {
		if node.Kind != types.NodeRoot && len(node.Children) == 0 && len(node.SkillIDs) == 0 {
			empty++
		}
	})
	if empty > 0 {
		result.AddWarning(fmt.Sprintf("%d empty leaf nodes in tree", empty))
	}
}

// balanceScore is 1/(1+cv), where cv is the coefficient of variation of the
// child counts across every branching node in the tree.
func balanceScore(root *types.TaxonomyNode) float64 {
	var counts []float64
	root.Walk(func(node *types.TaxonomyNode, _ int) {
		if len(node.Children) > 0 {
			counts = append(counts, float64(len(node.Children)))
		}
	})
	if len(counts) == 0 {
		return 1.0
	}

	m := 0.0
	for _, c := range counts {
		m += c
	}
	m /= float64(len(counts))

	variance := 0.0
	for _, c := range counts {
		d := c - m
		variance += d * d
	}
	cv := math.Sqrt(variance/float64(len(counts))) / m
	return 1.0 / (1.0 + cv)
}
