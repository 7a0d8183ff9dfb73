// Package types provides type definitions for structured data used throughout the skill-taxonomy system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Level bounds for the proficiency scale.
const (
	MinLevel = 1
	MaxLevel = 7
)

// Context classifies how a skill is applied.
type Context string

// Known context values. Hybrid means the skill is applied both
// practically and theoretically.
const (
	ContextPractical   Context = "practical"
	ContextTheoretical Context = "theoretical"
	ContextHybrid      Context = "hybrid"
)

// NumContexts is the size of the closed context set.
const NumContexts = 3

// Valid reports whether c is one of the known context values.
func (c Context) Valid() bool {
	switch c {
	case ContextPractical, ContextTheoretical, ContextHybrid:
		return true
	}
	return false
}

// SkillRecord is a raw input row before normalization. Level and Keywords are
// loosely typed because upstream extractors emit both numeric and word forms;
// preprocessing resolves them into the canonical Skill schema.
type SkillRecord struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Level       any       `json:"level,omitempty"`    // number or proficiency word ("beginner" ... "strategic")
	Context     string    `json:"context,omitempty"`  // practical | theoretical | hybrid
	Category    string    `json:"category,omitempty"` // free-form; mapped to the closed category set
	Keywords    any       `json:"keywords,omitempty"` // list of strings or comma-separated string
	Confidence  float64   `json:"confidence,omitempty"`
	Embedding   []float64 `json:"embedding"`
}

// Skill is the canonical, fully normalized skill. After preprocessing every
// field is strictly typed; downstream stages never re-probe level or context.
type Skill struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Level       int       `json:"level" validate:"required,gte=1,lte=7"`
	Context     Context   `json:"context" validate:"required,oneof=practical theoretical hybrid"`
	Category    string    `json:"category,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	Confidence  float64   `json:"confidence" validate:"gte=0,lte=1"`
	Embedding   []float64 `json:"embedding" validate:"required,min=1"`
}

var skillValidator = validator.New()

// Validate checks the skill against the canonical schema constraints.
func (s *Skill) Validate() error {
	if err := skillValidator.Struct(s); err != nil {
		return fmt.Errorf("invalid skill %q: %w", s.ID, err)
	}
	return nil
}
