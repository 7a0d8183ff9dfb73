package types

// Metric keys used in ValidationResult.Metrics.
const (
	MetricCoverage        = "coverage"
	MetricCoherence       = "avg_coherence"
	MetricDistinctiveness = "avg_distinctiveness"
	MetricOrphanSkills    = "orphan_skills"
	MetricBalance         = "balance_score"
	MetricMaxDepth        = "max_depth"
)

// ValidationResult is the verdict of the taxonomy validator. Errors make the
// taxonomy invalid; warnings flag configured-threshold misses and structural
// oddities that do not block downstream use.
type ValidationResult struct {
	IsValid  bool               `json:"is_valid"`
	Errors   []string           `json:"errors,omitempty"`
	Warnings []string           `json:"warnings,omitempty"`
	Metrics  map[string]float64 `json:"metrics"`
}

// AddError records a blocking issue and marks the result invalid.
func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.IsValid = false
}

// AddWarning records a non-blocking issue.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
