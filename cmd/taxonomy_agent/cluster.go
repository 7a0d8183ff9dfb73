package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-taxonomy/internal/clustering"
	"github.com/jonathan/skill-taxonomy/internal/fusion"
	"github.com/jonathan/skill-taxonomy/internal/types"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Fuse features and cluster canonical skills",
	Long:  "Fuses semantic, level, and context features for a skills JSON file, clusters them with the selected delegate, and writes the labeling and per-cluster statistics.",
	RunE:  runCluster,
}

var (
	clusterSkills         string
	clusterLabelingOut    string
	clusterStatsOut       string
	clusterAlgorithm      string
	clusterMinClusterSize int
	clusterMinSamples     int
	clusterSeed           int64
)

func init() {
	clusterCmd.Flags().StringVarP(&clusterSkills, "skills", "s", "", "Path to input skills JSON file (required)")
	clusterCmd.Flags().StringVarP(&clusterLabelingOut, "out", "o", "", "Path to output labeling JSON file (required)")
	clusterCmd.Flags().StringVar(&clusterStatsOut, "stats-out", "", "Path to output cluster stats JSON file")
	clusterCmd.Flags().StringVar(&clusterAlgorithm, "algorithm", "dbscan", "Clustering algorithm: dbscan or kmeans")
	clusterCmd.Flags().IntVar(&clusterMinClusterSize, "min-cluster-size", 10, "Minimum skills per cluster")
	clusterCmd.Flags().IntVar(&clusterMinSamples, "min-samples", 5, "Minimum samples for a dense region")
	clusterCmd.Flags().Int64Var(&clusterSeed, "seed", clustering.DefaultSeed, "Random seed for the centroid delegate")

	markRequired(clusterCmd, "skills", "out")

	rootCmd.AddCommand(clusterCmd)
}

func runCluster(_ *cobra.Command, _ []string) error {
	var skills []types.Skill
	if err := readJSON(clusterSkills, &skills); err != nil {
		return err
	}

	features, err := fusion.Fuse(skills, fusion.DefaultWeights())
	if err != nil {
		return fmt.Errorf("feature fusion failed: %w", err)
	}

	clusterer, err := clustering.NewClusterer(clusterAlgorithm, clusterSeed)
	if err != nil {
		return err
	}

	engine := clustering.NewEngine(clusterer, clusterMinClusterSize, clusterMinSamples)
	labeling, stats, err := engine.Run(cmdContext(), skills, features)
	if err != nil {
		return fmt.Errorf("clustering failed: %w", err)
	}

	if err := writeJSON(clusterLabelingOut, labeling); err != nil {
		return err
	}
	if clusterStatsOut != "" {
		if err := writeJSON(clusterStatsOut, stats); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "Clustered %d skills into %d clusters (%d noise)\n",
		len(skills), labeling.NumClusters(), labeling.NoiseCount())
	return nil
}
