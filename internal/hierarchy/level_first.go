package hierarchy

import (
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// levelBands are the fixed proficiency bands of the level-first strategy.
var levelBands = []struct {
	Name     string
	Min, Max int
}{
	{"Foundational (Levels 1-2)", 1, 2},
	{"Intermediate (Levels 3-4)", 3, 4},
	{"Advanced (Levels 5-6)", 5, 6},
	{"Strategic (Level 7)", 7, 7},
}

// buildLevelFirst arranges the tree as band -> category -> cluster. Each
// cluster lands in the band holding its dominant level.
func buildLevelFirst(root *types.TaxonomyNode, skills []types.Skill, labeling types.Labeling, stats types.ClusterStatsMap, names map[int]string, cfg Config) {
	for _, bandDef := range levelBands {
		// Collect this band's clusters grouped by dominant category.
		byCategory := make(map[string][]int)
		for _, id := range stats.IDs() {
			dominant := stats[id].Level.Dominant
			if dominant < bandDef.Min || dominant > bandDef.Max {
				continue
			}
			category := dominantCategory(id, skills, labeling)
			byCategory[category] = append(byCategory[category], id)
		}
		if len(byCategory) == 0 {
			continue
		}

		bandNode := &types.TaxonomyNode{
			ID:        uuid.NewString(),
			Name:      bandDef.Name,
			Kind:      types.NodeLevelBand,
			ClusterID: types.NoiseLabel,
		}

		categories := make([]string, 0, len(byCategory))
		for category := range byCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		for _, category := range categories {
			categoryNode := &types.TaxonomyNode{
				ID:        uuid.NewString(),
				Name:      category,
				Kind:      types.NodeCategory,
				ClusterID: types.NoiseLabel,
			}
			for _, id := range byCategory[category] {
				categoryNode.Children = append(categoryNode.Children,
					clusterNode(id, skills, labeling, names, cfg.MaxChildren))
			}
			bandNode.Children = append(bandNode.Children, categoryNode)
		}

		root.Children = append(root.Children, bandNode)
	}
}
