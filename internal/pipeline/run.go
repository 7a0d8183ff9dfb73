// Package pipeline provides the high-level orchestration for taxonomy generation.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-taxonomy/internal/clustering"
	"github.com/jonathan/skill-taxonomy/internal/config"
	"github.com/jonathan/skill-taxonomy/internal/db"
	"github.com/jonathan/skill-taxonomy/internal/fusion"
	"github.com/jonathan/skill-taxonomy/internal/hierarchy"
	"github.com/jonathan/skill-taxonomy/internal/naming"
	"github.com/jonathan/skill-taxonomy/internal/observability"
	"github.com/jonathan/skill-taxonomy/internal/preprocess"
	"github.com/jonathan/skill-taxonomy/internal/repair"
	"github.com/jonathan/skill-taxonomy/internal/schemas"
	"github.com/jonathan/skill-taxonomy/internal/types"
	"github.com/jonathan/skill-taxonomy/internal/validation"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	InputPath  string
	Records    []types.SkillRecord // Direct data injection; used when InputPath is empty
	Config     *config.Config
	Clusterer  clustering.Clusterer // Optional delegate override
	Namer      naming.Namer         // Optional naming delegate
	Verbose    bool
	OnProgress ProgressCallback
}

// Result holds every stage output of a completed run.
type Result struct {
	Skills           []types.Skill
	Report           *preprocess.Report
	Labeling         types.Labeling
	Stats            types.ClusterStatsMap
	RepairedLabeling types.Labeling
	RepairedStats    types.ClusterStatsMap
	Names            map[int]string
	Taxonomy         *types.Taxonomy
	Validation       *types.ValidationResult
	RunID            uuid.UUID
	Summary          *RunSummary
}

// RunSummary is the compact run record persisted as the final artifact.
type RunSummary struct {
	SkillCount      int                `json:"skill_count"`
	ClusterCount    int                `json:"cluster_count"`
	OrphanSkills    int                `json:"orphan_skills"`
	IsValid         bool               `json:"is_valid"`
	Metrics         map[string]float64 `json:"metrics"`
	Weights         fusion.Weights     `json:"weights"`
	DurationSeconds float64            `json:"duration_seconds"`
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// Run orchestrates the full taxonomy pipeline. Each stage consumes only the
// frozen output of the previous one.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	started := time.Now()

	cfg := config.DefaultConfig()
	if opts.Config != nil {
		cfg = opts.Config.MergeWithDefaults(cfg)
	}

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if cfg.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	// Load records from file unless injected directly
	records := opts.Records
	source := "(direct)"
	if opts.InputPath != "" {
		var err error
		records, err = LoadRecords(opts.InputPath)
		if err != nil {
			return nil, fmt.Errorf("loading skill records failed: %w", err)
		}
		source = opts.InputPath
	}

	if database != nil {
		var err error
		runID, err = database.CreateRun(ctx, source, len(records))
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
		} else if opts.Verbose {
			fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
		}
	}

	result := &Result{RunID: runID}

	// Step 1: Preprocess
	fmt.Printf("Step 1/6: Preprocessing %d skill records...\n", len(records))
	skills, report, err := preprocess.Run(records, preprocess.Options{
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		MinNameLength:       cfg.MinSkillLength,
		MaxNameLength:       cfg.MaxSkillLength,
	})
	if err != nil {
		return nil, fmt.Errorf("preprocessing failed: %w", err)
	}
	result.Skills = skills
	result.Report = report
	if opts.Verbose {
		printer.PrintPreprocessReport(report)
	}
	emitProgress(&opts, db.StepPreprocessedSkills, db.CategoryPreprocess,
		fmt.Sprintf("Kept %d of %d records", report.Output, report.Input), nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepPreprocessedSkills, db.CategoryPreprocess, skills)
		_ = database.SaveArtifact(ctx, runID, db.StepPreprocessReport, db.CategoryPreprocess, report)
	}

	// Step 2: Feature fusion
	fmt.Printf("Step 2/6: Fusing features for %d skills...\n", len(skills))
	weights := fusion.Weights{
		Semantic: cfg.SemanticWeight,
		Level:    cfg.LevelWeight,
		Context:  cfg.ContextWeight,
	}
	features, err := fusion.Fuse(skills, weights)
	if err != nil {
		return nil, fmt.Errorf("feature fusion failed: %w", err)
	}

	// Step 3: Clustering
	fmt.Printf("Step 3/6: Clustering with %s...\n", cfg.Algorithm)
	clusterer := opts.Clusterer
	if clusterer == nil {
		clusterer, err = clustering.NewClusterer(cfg.Algorithm, cfg.Seed)
		if err != nil {
			return nil, fmt.Errorf("creating clusterer failed: %w", err)
		}
	}
	engine := clustering.NewEngine(clusterer, cfg.MinClusterSize, cfg.MinSamples)
	labeling, stats, err := engine.Run(ctx, skills, features)
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}
	result.Labeling = labeling
	result.Stats = stats
	if opts.Verbose {
		printer.PrintClusterStats(stats)
	}
	emitProgress(&opts, db.StepLabeling, db.CategoryClustering,
		fmt.Sprintf("Found %d clusters (%d noise skills)", labeling.NumClusters(), labeling.NoiseCount()), nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepLabeling, db.CategoryClustering, labeling)
		_ = database.SaveArtifact(ctx, runID, db.StepClusterStats, db.CategoryClustering, stats)
	}

	// Step 4: Repair
	fmt.Printf("Step 4/6: Repairing clusters...\n")
	repaired := repair.Run(labeling, skills, stats, cfg.MinClusterSize)
	repairedStats, err := clustering.ComputeStats(ctx, skills, repaired, features)
	if err != nil {
		return nil, fmt.Errorf("computing repaired cluster stats failed: %w", err)
	}
	result.RepairedLabeling = repaired
	result.RepairedStats = repairedStats
	emitProgress(&opts, db.StepRepairedLabeling, db.CategoryClustering,
		fmt.Sprintf("Repair left %d clusters (%d noise skills)", repaired.NumClusters(), repaired.NoiseCount()), nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepRepairedLabeling, db.CategoryClustering, repaired)
		_ = database.SaveArtifact(ctx, runID, db.StepRepairedStats, db.CategoryClustering, repairedStats)
	}

	// Step 5: Hierarchy and naming run concurrently; the tree is built with
	// fallback names and renamed once the delegate returns.
	fmt.Printf("Step 5/6: Building hierarchy (%s)...\n", cfg.Strategy)

	g, gCtx := errgroup.WithContext(ctx)

	var taxonomy *types.Taxonomy
	names := make(map[int]string)
	var taxMu, nameMu sync.Mutex

	g.Go(func() error {
		built, err := hierarchy.Build(skills, repaired, repairedStats, nil, hierarchy.Config{
			Strategy:    hierarchy.Strategy(cfg.Strategy),
			MaxDepth:    cfg.MaxDepth,
			MinChildren: cfg.MinChildren,
			MaxChildren: cfg.MaxChildren,
		})
		if err != nil {
			return fmt.Errorf("hierarchy build failed: %w", err)
		}
		taxMu.Lock()
		taxonomy = built
		taxMu.Unlock()
		return nil
	})

	if opts.Namer != nil {
		g.Go(func() error {
			representatives := naming.Representatives(skills, repaired, repairedStats, features, 3)
			generated := naming.NameClusters(gCtx, opts.Namer, representatives)
			nameMu.Lock()
			for id, name := range generated {
				names[id] = name
			}
			nameMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	hierarchy.ApplyNames(taxonomy.Root, names)
	result.Names = names
	result.Taxonomy = taxonomy
	if opts.Verbose {
		printer.PrintTaxonomy(taxonomy)
	}
	emitProgress(&opts, db.StepTaxonomy, db.CategoryHierarchy,
		fmt.Sprintf("Built taxonomy with depth %d", taxonomy.Metadata.MaxDepth), nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepClusterNames, db.CategoryHierarchy, names)
		_ = database.SaveArtifact(ctx, runID, db.StepTaxonomy, db.CategoryHierarchy, taxonomy)
		_ = database.SaveTextArtifact(ctx, runID, db.StepTaxonomyText, db.CategoryHierarchy, hierarchy.ExportText(taxonomy))
	}

	// Step 6: Validation
	fmt.Printf("Step 6/6: Validating taxonomy...\n")
	verdict := validation.Validate(taxonomy, skills, repaired, repairedStats, validation.Options{
		CoverageThreshold:        cfg.CoverageThreshold,
		CoherenceThreshold:       cfg.CoherenceThreshold,
		DistinctivenessThreshold: cfg.DistinctivenessThreshold,
		MaxOrphanSkills:          cfg.MaxOrphanSkills,
		MinDepth:                 validation.DefaultOptions().MinDepth,
		MaxDepth:                 validation.DefaultOptions().MaxDepth,
		BalanceThreshold:         validation.DefaultOptions().BalanceThreshold,
	})
	result.Validation = verdict
	if opts.Verbose {
		printer.PrintValidation(verdict)
	}
	emitProgress(&opts, db.StepValidationReport, db.CategoryValidation,
		fmt.Sprintf("Validation verdict: valid=%t (%d errors, %d warnings)",
			verdict.IsValid, len(verdict.Errors), len(verdict.Warnings)), verdict)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepValidationReport, db.CategoryValidation, verdict)
	}

	result.Summary = &RunSummary{
		SkillCount:      len(skills),
		ClusterCount:    repaired.NumClusters(),
		OrphanSkills:    repaired.NoiseCount(),
		IsValid:         verdict.IsValid,
		Metrics:         verdict.Metrics,
		Weights:         weights,
		DurationSeconds: time.Since(started).Seconds(),
	}
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepRunSummary, db.CategorySummary, result.Summary)
		status := "completed"
		if !verdict.IsValid {
			status = "completed_invalid"
		}
		_ = database.CompleteRun(ctx, runID, status)
	}

	fmt.Printf("Done! Taxonomy built from %d skills.\n", len(skills))
	return result, nil
}

// LoadRecords reads and schema-validates a skill records JSON file. A schema
// violation is fatal: the contract is checked once at ingestion so later
// stages never re-probe field types.
func LoadRecords(path string) ([]types.SkillRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file %s: %w", path, err)
	}

	if schemaPath := schemas.ResolveSchemaPath(schemas.SkillRecordsSchema); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			return nil, fmt.Errorf("records file %s failed schema validation: %w", path, err)
		}
	}

	var records []types.SkillRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records JSON: %w", err)
	}
	return records, nil
}
