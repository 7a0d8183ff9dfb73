package hierarchy

import (
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// buildCategoryFirst arranges the tree as category -> subcategory -> cluster.
// Subcategories are optional; clusters with no keyword match stay directly
// under the category.
func buildCategoryFirst(root *types.TaxonomyNode, skills []types.Skill, labeling types.Labeling, stats types.ClusterStatsMap, names map[int]string, cfg Config) {
	byCategory := make(map[string][]int)
	for _, id := range stats.IDs() {
		category := dominantCategory(id, skills, labeling)
		byCategory[category] = append(byCategory[category], id)
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

		subcategories := cfg.Subcategories[category]
		subNodes := make([]*types.TaxonomyNode, len(subcategories))

		for _, id := range byCategory[category] {
			node := clusterNode(id, skills, labeling, names, cfg.MaxChildren)

			subIdx := assignSubcategory(stats[id].TopKeywords, subcategories, subNodes)
			if subIdx < 0 {
				categoryNode.Children = append(categoryNode.Children, node)
				continue
			}
			if subNodes[subIdx] == nil {
				subNodes[subIdx] = &types.TaxonomyNode{
					ID:        uuid.NewString(),
					Name:      subcategories[subIdx].Name,
					Kind:      types.NodeSubcategory,
					ClusterID: types.NoiseLabel,
				}
			}
			subNodes[subIdx].Children = append(subNodes[subIdx].Children, node)
		}

		for _, subNode := range subNodes {
			if subNode != nil {
				categoryNode.Children = append(categoryNode.Children, subNode)
			}
		}

		root.Children = append(root.Children, categoryNode)
	}
}

// assignSubcategory picks the subcategory with the most keyword overlap.
// Ties go to the least populated subcategory so far; zero overlap returns -1.
func assignSubcategory(clusterKeywords []string, subcategories []Subcategory, subNodes []*types.TaxonomyNode) int {
	bestIdx, bestOverlap := -1, 0
	for i, sub := range subcategories {
		overlap := keywordOverlap(clusterKeywords, sub.Keywords)
		if overlap == 0 {
			continue
		}
		switch {
		case overlap > bestOverlap:
			bestIdx, bestOverlap = i, overlap
		case overlap == bestOverlap && population(subNodes, i) < population(subNodes, bestIdx):
			bestIdx = i
		}
	}
	return bestIdx
}

func keywordOverlap(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, kw := range a {
		set[kw] = true
	}
	overlap := 0
	for _, kw := range b {
		if set[kw] {
			overlap++
		}
	}
	return overlap
}

func population(subNodes []*types.TaxonomyNode, idx int) int {
	if idx < 0 || subNodes[idx] == nil {
		return 0
	}
	return len(subNodes[idx].Children)
}
