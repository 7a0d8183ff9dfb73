package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-taxonomy/internal/pipeline"
	"github.com/jonathan/skill-taxonomy/internal/preprocess"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Normalize raw skill records into canonical skills",
	Long:  "Cleans and normalizes a skill records JSON file into the canonical skill schema: level words resolved, contexts checked, categories folded, duplicates and low-confidence records dropped.",
	RunE:  runPreprocess,
}

var (
	preprocessInput      string
	preprocessOutput     string
	preprocessConfidence float64
)

func init() {
	preprocessCmd.Flags().StringVarP(&preprocessInput, "input", "i", "", "Path to skill records JSON file (required)")
	preprocessCmd.Flags().StringVarP(&preprocessOutput, "out", "o", "", "Path to output skills JSON file (required)")
	preprocessCmd.Flags().Float64Var(&preprocessConfidence, "confidence", 0.7, "Minimum extraction confidence to keep a record")

	markRequired(preprocessCmd, "input", "out")

	rootCmd.AddCommand(preprocessCmd)
}

func runPreprocess(_ *cobra.Command, _ []string) error {
	records, err := pipeline.LoadRecords(preprocessInput)
	if err != nil {
		return err
	}

	opts := preprocess.DefaultOptions()
	opts.ConfidenceThreshold = preprocessConfidence

	skills, report, err := preprocess.Run(records, opts)
	if err != nil {
		return fmt.Errorf("preprocessing failed: %w", err)
	}

	if err := writeJSON(preprocessOutput, skills); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Kept %d of %d records, wrote %s\n", report.Output, report.Input, preprocessOutput)
	return nil
}
