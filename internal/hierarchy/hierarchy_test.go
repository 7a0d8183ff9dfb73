package hierarchy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

func twoClusterFixture() ([]types.Skill, types.Labeling, types.ClusterStatsMap) {
	skills := []types.Skill{
		{ID: "a", Name: "HTML Basics", Level: 1, Context: types.ContextPractical, Category: "technical"},
		{ID: "b", Name: "CSS Basics", Level: 1, Context: types.ContextPractical, Category: "technical"},
		{ID: "c", Name: "System Design", Level: 5, Context: types.ContextHybrid, Category: "cognitive"},
		{ID: "d", Name: "Architecture Review", Level: 5, Context: types.ContextHybrid, Category: "cognitive"},
	}
	labeling := types.NewLabeling([]int{0, 0, 1, 1})
	stats := types.ClusterStatsMap{
		0: {ID: 0, Size: 2, Level: types.LevelStats{Dominant: 1, Min: 1, Max: 1}},
		1: {ID: 1, Size: 2, Level: types.LevelStats{Dominant: 5, Min: 5, Max: 5}},
	}
	return skills, labeling, stats
}

func TestBuild_LevelFirstBands(t *testing.T) {
	skills, labeling, stats := twoClusterFixture()

	taxonomy, err := Build(skills, labeling, stats, nil, DefaultConfig())
	require.NoError(t, err)

	root := taxonomy.Root
	require.Len(t, root.Children, 2)
	assert.Equal(t, "Foundational (Levels 1-2)", root.Children[0].Name)
	assert.Equal(t, "Advanced (Levels 5-6)", root.Children[1].Name)

	// Band -> category -> cluster.
	foundational := root.Children[0]
	require.Len(t, foundational.Children, 1)
	assert.Equal(t, "technical", foundational.Children[0].Name)
	assert.Equal(t, types.NodeCategory, foundational.Children[0].Kind)

	cluster := foundational.Children[0].Children[0]
	assert.Equal(t, types.NodeCluster, cluster.Kind)
	assert.Equal(t, "Cluster 0", cluster.Name)
	assert.ElementsMatch(t, []string{"a", "b"}, cluster.SkillIDs)
}

func TestBuild_MetadataCounts(t *testing.T) {
	skills, _, stats := twoClusterFixture()
	labeling := types.NewLabeling([]int{0, 0, 1, -1})

	taxonomy, err := Build(skills, labeling, stats, nil, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 3, taxonomy.Metadata.TotalSkills)
	assert.Equal(t, 2, taxonomy.Metadata.TotalClusters)
	assert.Equal(t, 1, taxonomy.Metadata.OrphanSkills)
	assert.False(t, taxonomy.Metadata.GeneratedAt.IsZero())
}

func TestBuild_NamesApplied(t *testing.T) {
	skills, labeling, stats := twoClusterFixture()
	names := map[int]string{0: "Web Fundamentals", 1: "Systems Architecture"}

	taxonomy, err := Build(skills, labeling, stats, names, DefaultConfig())
	require.NoError(t, err)

	var seen []string
	taxonomy.Root.Walk(func(node *types.TaxonomyNode, _ int) {
		if node.Kind == types.NodeCluster {
			seen = append(seen, node.Name)
		}
	})
	assert.ElementsMatch(t, []string{"Web Fundamentals", "Systems Architecture"}, seen)
}

func TestBuild_LabelingLengthMismatch(t *testing.T) {
	skills, _, stats := twoClusterFixture()

	_, err := Build(skills, types.NewLabeling([]int{0, 0}), stats, nil, DefaultConfig())
	assert.Error(t, err)
}

func TestBuild_UnknownStrategy(t *testing.T) {
	skills, labeling, stats := twoClusterFixture()
	cfg := DefaultConfig()
	cfg.Strategy = "alphabetical"

	_, err := Build(skills, labeling, stats, nil, cfg)
	assert.Error(t, err)
}

func TestBuild_CategoryFirstWithSubcategories(t *testing.T) {
	skills, labeling, stats := twoClusterFixture()
	stats[0].TopKeywords = []string{"web", "frontend"}
	stats[1].TopKeywords = []string{"distributed"}

	cfg := DefaultConfig()
	cfg.Strategy = StrategyCategoryFirst
	cfg.Subcategories = map[string][]Subcategory{
		"technical": {
			{Name: "Web Development", Keywords: []string{"web", "html"}},
			{Name: "Data Engineering", Keywords: []string{"etl", "sql"}},
		},
	}

	taxonomy, err := Build(skills, labeling, stats, nil, cfg)
	require.NoError(t, err)

	root := taxonomy.Root
	require.Len(t, root.Children, 2)
	assert.Equal(t, "cognitive", root.Children[0].Name)
	assert.Equal(t, "technical", root.Children[1].Name)

	// Cluster 0 matches the web subcategory; cluster 1 has no overlap and
	// sits directly under its category.
	technical := root.Children[1]
	require.Len(t, technical.Children, 1)
	assert.Equal(t, "Web Development", technical.Children[0].Name)
	assert.Equal(t, types.NodeSubcategory, technical.Children[0].Kind)

	cognitive := root.Children[0]
	require.Len(t, cognitive.Children, 1)
	assert.Equal(t, types.NodeCluster, cognitive.Children[0].Kind)
}

func TestAssignSubcategory_TieGoesToLeastPopulated(t *testing.T) {
	subcategories := []Subcategory{
		{Name: "First", Keywords: []string{"go"}},
		{Name: "Second", Keywords: []string{"go"}},
	}
	subNodes := []*types.TaxonomyNode{
		{Children: []*types.TaxonomyNode{{}, {}}},
		nil,
	}

	assert.Equal(t, 1, assignSubcategory([]string{"go"}, subcategories, subNodes))
}

func TestAssignSubcategory_NoOverlap(t *testing.T) {
	subcategories := []Subcategory{{Name: "Web", Keywords: []string{"html"}}}

	assert.Equal(t, -1, assignSubcategory([]string{"sql"}, subcategories, make([]*types.TaxonomyNode, 1)))
}

func TestClusterNode_OversizedSplitsByLevel(t *testing.T) {
	skills := []types.Skill{
		{ID: "a", Level: 2},
		{ID: "b", Level: 2},
		{ID: "c", Level: 3},
	}
	labeling := types.NewLabeling([]int{0, 0, 0})

	node := clusterNode(0, skills, labeling, nil, 2)

	require.Len(t, node.Children, 2)
	assert.Equal(t, "Cluster 0 - Level 2", node.Children[0].Name)
	assert.Equal(t, []string{"a", "b"}, node.Children[0].SkillIDs)
	assert.Equal(t, "Cluster 0 - Level 3", node.Children[1].Name)
	assert.Empty(t, node.SkillIDs)
}

func TestBalance_WrapsIntoGroups(t *testing.T) {
	node := &types.TaxonomyNode{ID: "n"}
	for i := 0; i < 5; i++ {
		node.Children = append(node.Children, &types.TaxonomyNode{SkillIDs: []string{"x"}})
	}

	balance(node, 2)

	require.Len(t, node.Children, 3)
	assert.Equal(t, "Group 1", node.Children[0].Name)
	assert.Equal(t, "Group 3", node.Children[2].Name)
	assert.Len(t, node.Children[0].Children, 2)
	assert.Len(t, node.Children[2].Children, 1)
}

func TestFlattenAtDepth_PullsSkillsUp(t *testing.T) {
	leaf := &types.TaxonomyNode{SkillIDs: []string{"a", "b"}}
	mid := &types.TaxonomyNode{Children: []*types.TaxonomyNode{leaf}}
	root := &types.TaxonomyNode{Children: []*types.TaxonomyNode{mid}}

	flattenAtDepth(root, 2)

	assert.Equal(t, 2, root.Depth())
	require.Len(t, root.Children, 1)
	assert.Equal(t, []string{"a", "b"}, root.Children[0].SkillIDs)
	assert.Nil(t, root.Children[0].Children)
}

func TestPruneEmpty_RemovesSkilllessSubtrees(t *testing.T) {
	root := &types.TaxonomyNode{
		Children: []*types.TaxonomyNode{
			{ID: "empty", Children: []*types.TaxonomyNode{{ID: "inner"}}},
			{ID: "full", SkillIDs: []string{"a"}},
		},
	}

	pruneEmpty(root)

	require.Len(t, root.Children, 1)
	assert.Equal(t, "full", root.Children[0].ID)
}

func TestApplyNames_PreservesSkillGroupSuffix(t *testing.T) {
	root := &types.TaxonomyNode{
		Children: []*types.TaxonomyNode{
			{
				Kind:      types.NodeCluster,
				ClusterID: 3,
				Name:      "Cluster 3",
				Children: []*types.TaxonomyNode{
					{Kind: types.NodeSkillGroup, ClusterID: 3, Name: "Cluster 3 - Level 4"},
				},
			},
		},
	}

	ApplyNames(root, map[int]string{3: "Cloud Operations"})

	cluster := root.Children[0]
	assert.Equal(t, "Cloud Operations", cluster.Name)
	assert.Equal(t, "Cloud Operations - Level 4", cluster.Children[0].Name)
}

func TestDominantCategory_TieAndFallback(t *testing.T) {
	skills := []types.Skill{
		{Category: "technical"},
		{Category: "cognitive"},
		{Category: ""},
	}

	// One of each: lexicographically first wins the tie.
	assert.Equal(t, "cognitive", dominantCategory(0, skills[:2], types.NewLabeling([]int{0, 0})))
	assert.Equal(t, "uncategorized", dominantCategory(0, skills[2:], types.NewLabeling([]int{0})))
}

func TestExportText_Outline(t *testing.T) {
	skills, labeling, stats := twoClusterFixture()
	taxonomy, err := Build(skills, labeling, stats, map[int]string{0: "Web Fundamentals"}, DefaultConfig())
	require.NoError(t, err)

	text := ExportText(taxonomy)

	assert.True(t, strings.HasPrefix(text, "Skill Taxonomy\n"))
	assert.Contains(t, text, "skills: 4  clusters: 2  orphans: 0")
	assert.Contains(t, text, "Web Fundamentals (2 skills)")
	assert.Contains(t, text, "Foundational (Levels 1-2) (2 skills)")
}
