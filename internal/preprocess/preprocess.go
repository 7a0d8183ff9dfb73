package preprocess

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// Options controls filtering during preprocessing.
type Options struct {
	ConfidenceThreshold float64 // records below this confidence are dropped
	MinNameLength       int
	MaxNameLength       int
}

// DefaultOptions returns the standard preprocessing thresholds.
func DefaultOptions() Options {
	return Options{
		ConfidenceThreshold: 0.7,
		MinNameLength:       3,
		MaxNameLength:       200,
	}
}

// Report summarizes what preprocessing kept and dropped.
type Report struct {
	Input         int `json:"input"`
	LowConfidence int `json:"low_confidence"`
	NameLength    int `json:"name_length"`
	Duplicates    int `json:"duplicates"`
	Output        int `json:"output"`
}

// Run normalizes raw records into canonical skills. Records failing the
// confidence or name-length filters are dropped; exact duplicates (same id,
// or same name and level) are dropped keeping the first occurrence. A record
// whose level or context cannot be resolved is a hard failure.
func Run(records []types.SkillRecord, opts Options) ([]types.Skill, *Report, error) {
	report := &Report{Input: len(records)}

	skills := make([]types.Skill, 0, len(records))
	seenIDs := make(map[string]bool)
	seenNameLevel := make(map[string]bool)

	for i, record := range records {
		name := cleanName(record.Name)
		if len(name) < opts.MinNameLength || len(name) > opts.MaxNameLength {
			report.NameLength++
			continue
		}
		if record.Confidence < opts.ConfidenceThreshold {
			report.LowConfidence++
			continue
		}

		level, err := normalizeLevel(record.Level)
		if err != nil {
			return nil, nil, &ContractError{Index: i, RecordID: record.ID, Field: "level", Message: err.Error()}
		}
		if level < types.MinLevel || level > types.MaxLevel {
			return nil, nil, &ContractError{
				Index:    i,
				RecordID: record.ID,
				Field:    "level",
				Message:  fmt.Sprintf("level %d outside range [%d, %d]", level, types.MinLevel, types.MaxLevel),
			}
		}

		context, err := normalizeContext(record.Context)
		if err != nil {
			return nil, nil, &ContractError{Index: i, RecordID: record.ID, Field: "context", Message: err.Error()}
		}

		if len(record.Embedding) == 0 {
			return nil, nil, &ContractError{Index: i, RecordID: record.ID, Field: "embedding", Message: "embedding is missing"}
		}

		id := record.ID
		if id == "" {
			id = uuid.NewString()
		}

		skill := types.Skill{
			ID:          id,
			Name:        name,
			Description: record.Description,
			Level:       level,
			Context:     context,
			Category:    normalizeCategory(record.Category),
			Keywords:    normalizeKeywords(record.Keywords),
			Confidence:  record.Confidence,
			Embedding:   record.Embedding,
		}

		nameLevelKey := fmt.Sprintf("%s|%d", skill.Name, skill.Level)
		if seenIDs[skill.ID] || seenNameLevel[nameLevelKey] {
			report.Duplicates++
			continue
		}
		seenIDs[skill.ID] = true
		seenNameLevel[nameLevelKey] = true

		skills = append(skills, skill)
	}

	report.Output = len(skills)
	return skills, report, nil
}
