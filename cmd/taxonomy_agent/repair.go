package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-taxonomy/internal/repair"
	"github.com/jonathan/skill-taxonomy/internal/types"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Split and merge clusters in a labeling",
	Long:  "Applies the single-pass repair rules to a labeling: clusters spanning more than two proficiency levels are split into bands, and undersized clusters are merged into similar large clusters or demoted to noise.",
	RunE:  runRepair,
}

var (
	repairSkills         string
	repairLabeling       string
	repairStats          string
	repairOutput         string
	repairMinClusterSize int
)

func init() {
	repairCmd.Flags().StringVarP(&repairSkills, "skills", "s", "", "Path to input skills JSON file (required)")
	repairCmd.Flags().StringVarP(&repairLabeling, "labeling", "l", "", "Path to input labeling JSON file (required)")
	repairCmd.Flags().StringVar(&repairStats, "stats", "", "Path to input cluster stats JSON file (required)")
	repairCmd.Flags().StringVarP(&repairOutput, "out", "o", "", "Path to output repaired labeling JSON file (required)")
	repairCmd.Flags().IntVar(&repairMinClusterSize, "min-cluster-size", 10, "Minimum skills per cluster")

	markRequired(repairCmd, "skills", "labeling", "stats", "out")

	rootCmd.AddCommand(repairCmd)
}

func runRepair(_ *cobra.Command, _ []string) error {
	var skills []types.Skill
	if err := readJSON(repairSkills, &skills); err != nil {
		return err
	}

	var labeling types.Labeling
	if err := readJSON(repairLabeling, &labeling); err != nil {
		return err
	}

	var stats types.ClusterStatsMap
	if err := readJSON(repairStats, &stats); err != nil {
		return err
	}

	if labeling.Len() != len(skills) {
		return fmt.Errorf("labeling covers %d skills but %d were loaded", labeling.Len(), len(skills))
	}

	repaired := repair.Run(labeling, skills, stats, repairMinClusterSize)

	if err := writeJSON(repairOutput, repaired); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Repair: %d clusters -> %d clusters (%d noise)\n",
		labeling.NumClusters(), repaired.NumClusters(), repaired.NoiseCount())
	return nil
}
