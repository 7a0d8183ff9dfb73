package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-taxonomy/internal/observability"
	"github.com/jonathan/skill-taxonomy/internal/types"
	"github.com/jonathan/skill-taxonomy/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a built taxonomy",
	Long:  "Scores a taxonomy for coverage, coherence, distinctiveness, orphan count, and structural sanity, and reports a verdict with metrics.",
	RunE:  runValidate,
}

var (
	validateTaxonomy string
	validateSkills   string
	validateLabeling string
	validateStats    string
	validateOutput   string
)

func init() {
	validateCmd.Flags().StringVarP(&validateTaxonomy, "taxonomy", "t", "", "Path to input taxonomy JSON file (required)")
	validateCmd.Flags().StringVarP(&validateSkills, "skills", "s", "", "Path to input skills JSON file (required)")
	validateCmd.Flags().StringVarP(&validateLabeling, "labeling", "l", "", "Path to input labeling JSON file (required)")
	validateCmd.Flags().StringVar(&validateStats, "stats", "", "Path to input cluster stats JSON file")
	validateCmd.Flags().StringVarP(&validateOutput, "out", "o", "", "Path to output validation report JSON file")

	markRequired(validateCmd, "taxonomy", "skills", "labeling")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	var taxonomy types.Taxonomy
	if err := readJSON(validateTaxonomy, &taxonomy); err != nil {
		return err
	}

	var skills []types.Skill
	if err := readJSON(validateSkills, &skills); err != nil {
		return err
	}

	var labeling types.Labeling
	if err := readJSON(validateLabeling, &labeling); err != nil {
		return err
	}

	stats := make(types.ClusterStatsMap)
	if validateStats != "" {
		if err := readJSON(validateStats, &stats); err != nil {
			return err
		}
	}

	result := validation.Validate(&taxonomy, skills, labeling, stats, validation.DefaultOptions())

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintValidation(result)

	if validateOutput != "" {
		if err := writeJSON(validateOutput, result); err != nil {
			return err
		}
	}

	if !result.IsValid {
		return fmt.Errorf("taxonomy is invalid: %d errors", len(result.Errors))
	}
	return nil
}
