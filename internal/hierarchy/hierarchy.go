// Package hierarchy assembles clustered skills into a rooted taxonomy tree.
package hierarchy

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// Strategy selects the top-level organization of the tree.
type Strategy string

// Supported build strategies.
const (
	StrategyLevelFirst    Strategy = "level_first"
	StrategyCategoryFirst Strategy = "category_first"
)

// Subcategory defines an optional grouping under a category, matched against
// cluster keywords.
type Subcategory struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Config controls the shape of the built tree.
type Config struct {
	Strategy      Strategy                 `json:"strategy"`
	MaxDepth      int                      `json:"max_depth"`
	MinChildren   int                      `json:"min_children"`
	MaxChildren   int                      `json:"max_children"`
	Subcategories map[string][]Subcategory `json:"subcategories,omitempty"`
}

// DefaultConfig returns the standard tree shape limits.
func DefaultConfig() Config {
	return Config{
		Strategy:    StrategyLevelFirst,
		MaxDepth:    5,
		MinChildren: 3,
		MaxChildren: 20,
	}
}

// FallbackName is the deterministic display name used when no naming delegate
// has produced one for a cluster.
func FallbackName(id int) string {
	return fmt.Sprintf("Cluster %d", id)
}

// Build assembles the taxonomy from a labeling and its cluster statistics.
// names maps cluster ids to display names; missing entries fall back to
// FallbackName so the build never blocks on a naming delegate. Noise skills
// stay out of the tree and are reported as orphans in the metadata.
func Build(skills []types.Skill, labeling types.Labeling, stats types.ClusterStatsMap, names map[int]string, cfg Config) (*types.Taxonomy, error) {
	if labeling.Len() != len(skills) {
		return nil, fmt.Errorf("labeling covers %d skills, want %d", labeling.Len(), len(skills))
	}

	root := &types.TaxonomyNode{
		ID:        uuid.NewString(),
		Name:      "Skill Taxonomy",
		Kind:      types.NodeRoot,
		ClusterID: types.NoiseLabel,
	}

	switch cfg.Strategy {
	case StrategyLevelFirst, "":
		buildLevelFirst(root, skills, labeling, stats, names, cfg)
	case StrategyCategoryFirst:
		buildCategoryFirst(root, skills, labeling, stats, names, cfg)
	default:
		return nil, fmt.Errorf("unknown hierarchy strategy %q", cfg.Strategy)
	}

	balance(root, cfg.MaxChildren)
	flattenAtDepth(root, cfg.MaxDepth)
	pruneEmpty(root)

	return &types.Taxonomy{
		Root: root,
		Metadata: types.TaxonomyMetadata{
			TotalSkills:   labeling.Len() - labeling.NoiseCount(),
			TotalClusters: labeling.NumClusters(),
			OrphanSkills:  labeling.NoiseCount(),
			MaxDepth:      root.Depth(),
			Strategy:      string(cfg.Strategy),
			Config:        cfg,
			GeneratedAt:   time.Now().UTC(),
		},
	}, nil
}

// clusterNode builds the node for one cluster. Clusters larger than
// maxChildren are broken into per-level skill groups.
func clusterNode(id int, skills []types.Skill, labeling types.Labeling, names map[int]string, maxChildren int) *types.TaxonomyNode {
	name, ok := names[id]
	if !ok || name == "" {
		name = FallbackName(id)
	}
	node := &types.TaxonomyNode{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      types.NodeCluster,
		ClusterID: id,
	}

	members := labeling.Members(id)
	if maxChildren > 0 && len(members) > maxChildren {
		byLevel := make(map[int][]string)
		for _, m := range members {
			byLevel[skills[m].Level] = append(byLevel[skills[m].Level], skills[m].ID)
		}
		levels := make([]int, 0, len(byLevel))
		for level := range byLevel {
			levels = append(levels, level)
		}
		sort.Ints(levels)
		for _, level := range levels {
			node.Children = append(node.Children, &types.TaxonomyNode{
				ID:        uuid.NewString(),
				Name:      fmt.Sprintf("%s - Level %d", name, level),
				Kind:      types.NodeSkillGroup,
				ClusterID: id,
				SkillIDs:  byLevel[level],
			})
		}
		return node
	}

	for _, m := range members {
		node.SkillIDs = append(node.SkillIDs, skills[m].ID)
	}
	return node
}

// dominantCategory returns the most common category among a cluster's skills;
// the lexicographically first category wins ties.
func dominantCategory(id int, skills []types.Skill, labeling types.Labeling) string {
	counts := make(map[string]int)
	for _, m := range labeling.Members(id) {
		category := skills[m].Category
		if category == "" {
			category = "uncategorized"
		}
		counts[category]++
	}

	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	best := ""
	for _, category := range categories {
		if best == "" || counts[category] > counts[best] {
			best = category
		}
	}
	return best
}

// ApplyNames renames cluster and skill-group nodes from a cluster-id name
// map, preserving the level suffix on skill groups.
func ApplyNames(root *types.TaxonomyNode, names map[int]string) {
	if len(names) == 0 {
		return
	}
	root.Walk(func(node *types.TaxonomyNode, _ int) {
		if node.Kind != types.NodeCluster {
			return
		}
		if name, ok := names[node.ClusterID]; ok && name != "" {
			old := node.Name
			node.Name = name
			for _, child := range node.Children {
				if child.Kind == types.NodeSkillGroup {
					child.Name = name + trimPrefixName(child.Name, old)
				}
			}
		}
	})
}

func trimPrefixName(full, prefix string) string {
	if len(full) > len(prefix) && full[:len(prefix)] == prefix {
		return full[len(prefix):]
	}
	return ""
}
