package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-taxonomy/internal/config"
	"github.com/jonathan/skill-taxonomy/internal/types"
)

// fourGroupClusterer labels every row by its index modulo four.
type fourGroupClusterer struct{}

func (fourGroupClusterer) Cluster(features [][]float64, minClusterSize, minSamples int) ([]int, error) {
	labels := make([]int, len(features))
	for i := range labels {
		labels[i] = i % 4
	}
	return labels, nil
}

func makeRecords(n int) []types.SkillRecord {
	records := make([]types.SkillRecord, n)
	for i := range records {
		group := i % 4
		records[i] = types.SkillRecord{
			ID:         fmt.Sprintf("s%d", i),
			Name:       fmt.Sprintf("Skill Number %d", i),
			Level:      group + 2,
			Context:    "practical",
			Category:   "technical",
			Confidence: 0.9,
			Embedding:  []float64{float64(group), 1.0},
		}
	}
	return records
}

func TestRun_EndToEnd(t *testing.T) {
	var events []ProgressEvent

	result, err := Run(context.Background(), RunOptions{
		Records:   makeRecords(60),
		Clusterer: fourGroupClusterer{},
		OnProgress: func(event ProgressEvent) {
			events = append(events, event)
		},
	})
	require.NoError(t, err)

	assert.Len(t, result.Skills, 60)
	assert.Equal(t, 4, result.Labeling.NumClusters())
	assert.Equal(t, 0, result.Labeling.NoiseCount())

	// Uniform levels per cluster: repair has nothing to split or merge.
	assert.Equal(t, result.Labeling.Labels, result.RepairedLabeling.Labels)
	assert.Len(t, result.RepairedStats, 4)

	require.NotNil(t, result.Taxonomy)
	assert.Equal(t, 60, result.Taxonomy.Root.SkillCount())
	assert.LessOrEqual(t, result.Taxonomy.Root.Depth(), 10)

	require.NotNil(t, result.Validation)
	assert.True(t, result.Validation.IsValid)
	assert.InDelta(t, 1.0, result.Validation.Metrics[types.MetricCoverage], 1e-9)

	require.NotNil(t, result.Summary)
	assert.Equal(t, 60, result.Summary.SkillCount)
	assert.Equal(t, 4, result.Summary.ClusterCount)
	assert.True(t, result.Summary.IsValid)
	assert.Greater(t, result.Summary.DurationSeconds, 0.0)

	// Every stage reported progress.
	steps := make(map[string]bool)
	for _, event := range events {
		steps[event.Step] = true
	}
	assert.True(t, steps["preprocessed_skills"])
	assert.True(t, steps["labeling"])
	assert.True(t, steps["taxonomy"])
	assert.True(t, steps["validation_report"])
}

func TestRun_FallbackNamesWithoutDelegate(t *testing.T) {
	result, err := Run(context.Background(), RunOptions{
		Records:   makeRecords(60),
		Clusterer: fourGroupClusterer{},
	})
	require.NoError(t, err)

	var clusterNames []string
	result.Taxonomy.Root.Walk(func(node *types.TaxonomyNode, _ int) {
		if node.Kind == types.NodeCluster {
			clusterNames = append(clusterNames, node.Name)
		}
	})
	assert.ElementsMatch(t, []string{"Cluster 0", "Cluster 1", "Cluster 2", "Cluster 3"}, clusterNames)
}

func TestRun_SingleSkillIsAllNoise(t *testing.T) {
	result, err := Run(context.Background(), RunOptions{
		Records:   makeRecords(1),
		Clusterer: fourGroupClusterer{},
	})
	require.NoError(t, err)

	// Below the minimum cluster size everything is noise; the run completes
	// with an invalid verdict rather than an error.
	assert.Equal(t, []int{-1}, result.Labeling.Labels)
	assert.Empty(t, result.Stats)
	assert.False(t, result.Validation.IsValid)
	assert.Equal(t, 1, result.Summary.OrphanSkills)
}

func TestRun_CustomConfig(t *testing.T) {
	cfg := &config.Config{MinClusterSize: 4, Strategy: "category_first"}

	result, err := Run(context.Background(), RunOptions{
		Records:   makeRecords(20),
		Config:    cfg,
		Clusterer: fourGroupClusterer{},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Labeling.NumClusters())
	assert.Equal(t, "category_first", result.Taxonomy.Metadata.Strategy)
}

func TestRun_PreprocessFailureIsFatal(t *testing.T) {
	records := makeRecords(2)
	records[1].Level = nil

	_, err := Run(context.Background(), RunOptions{
		Records:   records,
		Clusterer: fourGroupClusterer{},
	})
	assert.Error(t, err)
}

func TestLoadRecords_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	content := `[{"id": "s1", "name": "Go Programming", "level": 4, "context": "practical", "confidence": 0.9, "embedding": [0.1, 0.2]}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	records, err := LoadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Go Programming", records[0].Name)
}

func TestLoadRecords_SchemaViolationIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	// Missing the required level field.
	content := `[{"name": "Go Programming", "context": "practical", "embedding": [0.1]}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadRecords(path)
	assert.Error(t, err)
}

func TestLoadRecords_MissingFile(t *testing.T) {
	_, err := LoadRecords(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
