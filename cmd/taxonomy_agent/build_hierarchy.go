package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-taxonomy/internal/hierarchy"
	"github.com/jonathan/skill-taxonomy/internal/types"
)

var buildHierarchyCmd = &cobra.Command{
	Use:   "build-hierarchy",
	Short: "Assemble a taxonomy tree from a labeling",
	Long:  "Builds the taxonomy tree from canonical skills, a labeling, and cluster statistics, applying the configured strategy, balancing, depth flattening, and empty-node pruning.",
	RunE:  runBuildHierarchy,
}

var (
	buildSkills   string
	buildLabeling string
	buildStats    string
	buildNames    string
	buildOutput   string
	buildTextOut  string
	buildStrategy string
	buildMaxDepth int
	buildMaxKids  int
)

func init() {
	buildHierarchyCmd.Flags().StringVarP(&buildSkills, "skills", "s", "", "Path to input skills JSON file (required)")
	buildHierarchyCmd.Flags().StringVarP(&buildLabeling, "labeling", "l", "", "Path to input labeling JSON file (required)")
	buildHierarchyCmd.Flags().StringVar(&buildStats, "stats", "", "Path to input cluster stats JSON file (required)")
	buildHierarchyCmd.Flags().StringVar(&buildNames, "names", "", "Path to cluster names JSON file (cluster id -> name)")
	buildHierarchyCmd.Flags().StringVarP(&buildOutput, "out", "o", "", "Path to output taxonomy JSON file (required)")
	buildHierarchyCmd.Flags().StringVar(&buildTextOut, "text-out", "", "Path to also write an indented text outline")
	buildHierarchyCmd.Flags().StringVar(&buildStrategy, "strategy", "level_first", "Build strategy: level_first or category_first")
	buildHierarchyCmd.Flags().IntVar(&buildMaxDepth, "max-depth", 5, "Maximum tree depth")
	buildHierarchyCmd.Flags().IntVar(&buildMaxKids, "max-children", 20, "Maximum children per node")

	markRequired(buildHierarchyCmd, "skills", "labeling", "stats", "out")

	rootCmd.AddCommand(buildHierarchyCmd)
}

func runBuildHierarchy(_ *cobra.Command, _ []string) error {
	var skills []types.Skill
	if err := readJSON(buildSkills, &skills); err != nil {
		return err
	}

	var labeling types.Labeling
	if err := readJSON(buildLabeling, &labeling); err != nil {
		return err
	}

	var stats types.ClusterStatsMap
	if err := readJSON(buildStats, &stats); err != nil {
		return err
	}

	names := make(map[int]string)
	if buildNames != "" {
		if err := readJSON(buildNames, &names); err != nil {
			return err
		}
	}

	cfg := hierarchy.DefaultConfig()
	cfg.Strategy = hierarchy.Strategy(buildStrategy)
	cfg.MaxDepth = buildMaxDepth
	cfg.MaxChildren = buildMaxKids

	taxonomy, err := hierarchy.Build(skills, labeling, stats, names, cfg)
	if err != nil {
		return fmt.Errorf("hierarchy build failed: %w", err)
	}

	if err := writeJSON(buildOutput, taxonomy); err != nil {
		return err
	}
	if buildTextOut != "" {
		if err := os.WriteFile(buildTextOut, []byte(hierarchy.ExportText(taxonomy)), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", buildTextOut, err)
		}
	}

	fmt.Fprintf(os.Stdout, "Built taxonomy: %d skills, %d clusters, depth %d\n",
		taxonomy.Metadata.TotalSkills, taxonomy.Metadata.TotalClusters, taxonomy.Metadata.MaxDepth)
	return nil
}
