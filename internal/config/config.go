// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the pipeline configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	Input  string `json:"input,omitempty"`  // Path to skill records JSON file
	Output string `json:"output,omitempty"` // Path to write the taxonomy JSON

	// Feature fusion weights (normalized to sum 1 before use)
	SemanticWeight float64 `json:"semantic_weight,omitempty" validate:"gte=0"`
	LevelWeight    float64 `json:"level_weight,omitempty" validate:"gte=0"`
	ContextWeight  float64 `json:"context_weight,omitempty" validate:"gte=0"`

	// Clustering
	Algorithm      string `json:"algorithm,omitempty" validate:"omitempty,oneof=dbscan kmeans"`
	MinClusterSize int    `json:"min_cluster_size,omitempty" validate:"gte=0"`
	MinSamples     int    `json:"min_samples,omitempty" validate:"gte=0"`
	Seed           int64  `json:"seed,omitempty"`

	// Hierarchy
	Strategy    string `json:"strategy,omitempty" validate:"omitempty,oneof=level_first category_first"`
	MaxDepth    int    `json:"max_depth,omitempty" validate:"gte=0"`
	MinChildren int    `json:"min_children,omitempty" validate:"gte=0"`
	MaxChildren int    `json:"max_children,omitempty" validate:"gte=0"`

	// Validation thresholds
	CoverageThreshold        float64 `json:"coverage_threshold,omitempty" validate:"gte=0,lte=1"`
	CoherenceThreshold       float64 `json:"coherence_threshold,omitempty" validate:"gte=0,lte=1"`
	DistinctivenessThreshold float64 `json:"distinctiveness_threshold,omitempty" validate:"gte=0,lte=1"`
	MaxOrphanSkills          int     `json:"max_orphan_skills,omitempty" validate:"gte=0"`

	// Preprocessing
	ConfidenceThreshold float64 `json:"confidence_threshold,omitempty" validate:"gte=0,lte=1"`
	MinSkillLength      int     `json:"min_skill_length,omitempty" validate:"gte=0"`
	MaxSkillLength      int     `json:"max_skill_length,omitempty" validate:"gte=0"`

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key for the naming delegate
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

var configValidator = validator.New()

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		SemanticWeight:           0.60,
		LevelWeight:              0.25,
		ContextWeight:            0.15,
		Algorithm:                "dbscan",
		MinClusterSize:           10,
		MinSamples:               5,
		Seed:                     42,
		Strategy:                 "level_first",
		MaxDepth:                 5,
		MinChildren:              3,
		MaxChildren:              20,
		CoverageThreshold:        0.95,
		CoherenceThreshold:       0.7,
		DistinctivenessThreshold: 0.5,
		MaxOrphanSkills:          100,
		ConfidenceThreshold:      0.7,
		MinSkillLength:           3,
		MaxSkillLength:           200,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.SemanticWeight+c.LevelWeight+c.ContextWeight < 0 {
		return fmt.Errorf("config error: fusion weights must not be negative")
	}

	if c.MinSkillLength > 0 && c.MaxSkillLength > 0 && c.MinSkillLength > c.MaxSkillLength {
		return fmt.Errorf("config error: 'min_skill_length' exceeds 'max_skill_length'")
	}

	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Algorithm == "" {
		result.Algorithm = defaults.Algorithm
	}
	if result.Strategy == "" {
		result.Strategy = defaults.Strategy
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Numeric fields: use default if zero
	if result.SemanticWeight == 0 {
		result.SemanticWeight = defaults.SemanticWeight
	}
	if result.LevelWeight == 0 {
		result.LevelWeight = defaults.LevelWeight
	}
	if result.ContextWeight == 0 {
		result.ContextWeight = defaults.ContextWeight
	}
	if result.MinClusterSize == 0 {
		result.MinClusterSize = defaults.MinClusterSize
	}
	if result.MinSamples == 0 {
		result.MinSamples = defaults.MinSamples
	}
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}
	if result.MaxDepth == 0 {
		result.MaxDepth = defaults.MaxDepth
	}
	if result.MinChildren == 0 {
		result.MinChildren = defaults.MinChildren
	}
	if result.MaxChildren == 0 {
		result.MaxChildren = defaults.MaxChildren
	}
	if result.CoverageThreshold == 0 {
		result.CoverageThreshold = defaults.CoverageThreshold
	}
	if result.CoherenceThreshold == 0 {
		result.CoherenceThreshold = defaults.CoherenceThreshold
	}
	if result.DistinctivenessThreshold == 0 {
		result.DistinctivenessThreshold = defaults.DistinctivenessThreshold
	}
	if result.MaxOrphanSkills == 0 {
		result.MaxOrphanSkills = defaults.MaxOrphanSkills
	}
	if result.ConfidenceThreshold == 0 {
		result.ConfidenceThreshold = defaults.ConfidenceThreshold
	}
	if result.MinSkillLength == 0 {
		result.MinSkillLength = defaults.MinSkillLength
	}
	if result.MaxSkillLength == 0 {
		result.MaxSkillLength = defaults.MaxSkillLength
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
