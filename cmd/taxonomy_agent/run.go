package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-taxonomy/internal/config"
	"github.com/jonathan/skill-taxonomy/internal/hierarchy"
	"github.com/jonathan/skill-taxonomy/internal/naming"
	"github.com/jonathan/skill-taxonomy/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full taxonomy pipeline",
	Long:  "Runs preprocessing, feature fusion, clustering, repair, hierarchy building, and validation end to end over a skill records JSON file.",
	RunE:  runRun,
}

var (
	runInput   string
	runOutput  string
	runConfig  string
	runAPIKey  string
	runDB      string
	runVerbose bool
)

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "Path to skill records JSON file (required unless set in config)")
	runCmd.Flags().StringVarP(&runOutput, "out", "o", "", "Path to output taxonomy JSON file (required unless set in config)")
	runCmd.Flags().StringVarP(&runConfig, "config", "c", "", "Path to pipeline config JSON file")
	runCmd.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key for cluster naming (or GEMINI_API_KEY env var)")
	runCmd.Flags().StringVar(&runDB, "db", "", "PostgreSQL URL for artifact persistence (or DATABASE_URL env var)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed stage output")

	rootCmd.AddCommand(runCmd)
}

// newNamer returns a Gemini-backed naming delegate, or an untyped nil when no
// key is set or the delegate cannot be created. Returning a concrete nil
// pointer inside the interface would defeat the pipeline's nil check.
func newNamer(ctx context.Context, apiKey string) naming.Namer {
	if apiKey == "" {
		return nil
	}
	gemini, err := naming.NewGeminiNamer(ctx, apiKey, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: naming delegate unavailable: %v. Using fallback names.\n", err)
		return nil
	}
	return gemini
}

func runRun(_ *cobra.Command, _ []string) error {
	ctx := cmdContext()

	cfg := config.DefaultConfig()
	if runConfig != "" {
		loaded, err := config.LoadConfig(runConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded.MergeWithDefaults(cfg)
	}

	// CLI flags win over config file values
	if runInput != "" {
		cfg.Input = runInput
	}
	if runOutput != "" {
		cfg.Output = runOutput
	}
	if runAPIKey != "" {
		cfg.APIKey = runAPIKey
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if runDB != "" {
		cfg.DatabaseURL = runDB
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if runVerbose {
		cfg.Verbose = true
	}

	if cfg.Input == "" {
		return fmt.Errorf("no input file: set --input or 'input' in the config file")
	}
	if cfg.Output == "" {
		return fmt.Errorf("no output file: set --out or 'output' in the config file")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Naming delegate is optional; without a key the fallback names are used.
	namer := newNamer(ctx, cfg.APIKey)
	if namer != nil {
		defer func() { _ = namer.Close() }()
	}

	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		InputPath: cfg.Input,
		Config:    &cfg,
		Namer:     namer,
		Verbose:   cfg.Verbose,
	})
	if err != nil {
		return err
	}

	if err := writeJSON(cfg.Output, result.Taxonomy); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote taxonomy to %s\n", cfg.Output)

	if !result.Validation.IsValid {
		fmt.Fprintf(os.Stderr, "Warning: taxonomy failed validation (%d errors)\n", len(result.Validation.Errors))
	}

	// Print the outline for quick inspection in verbose mode
	if cfg.Verbose {
		fmt.Fprint(os.Stdout, hierarchy.ExportText(result.Taxonomy))
	}

	return nil
}
