package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a taxonomy pipeline run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Source      string     `json:"source"`
	SkillCount  int        `json:"skill_count"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Artifact steps persisted per pipeline stage
const (
	StepPreprocessedSkills = "preprocessed_skills"
	StepPreprocessReport   = "preprocess_report"
	StepLabeling           = "labeling"
	StepClusterStats       = "cluster_stats"
	StepRepairedLabeling   = "repaired_labeling"
	StepRepairedStats      = "repaired_stats"
	StepClusterNames       = "cluster_names"
	StepTaxonomy           = "taxonomy"
	StepTaxonomyText       = "taxonomy_text"
	StepValidationReport   = "validation_report"
	StepRunSummary         = "run_summary"
)

// Artifact categories grouping related steps
const (
	CategoryPreprocess = "preprocess"
	CategoryClustering = "clustering"
	CategoryHierarchy  = "hierarchy"
	CategoryValidation = "validation"
	CategorySummary    = "summary"
)
