// Package fusion builds fused feature vectors from semantic embeddings,
// proficiency levels, and application contexts.
package fusion

import (
	"fmt"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// Slot counts for the structured feature blocks.
const (
	LevelSlots   = 7
	ContextSlots = 3
)

// Amplification factors applied after weight normalization. The structured
// blocks are tiny next to the semantic block, so they are boosted to keep
// level and context signal visible in euclidean distance.
const (
	levelAmplification   = 2.0
	contextAmplification = 1.5
)

// Weights holds the relative importance of the three feature blocks.
// They are normalized to sum to 1 before use.
type Weights struct {
	Semantic float64 `json:"semantic"`
	Level    float64 `json:"level"`
	Context  float64 `json:"context"`
}

// DefaultWeights returns the standard 60/25/15 blend.
func DefaultWeights() Weights {
	return Weights{Semantic: 0.60, Level: 0.25, Context: 0.15}
}

// normalized returns weights scaled so they sum to 1.
func (w Weights) normalized() (Weights, error) {
	total := w.Semantic + w.Level + w.Context
	if total <= 0 {
		return Weights{}, fmt.Errorf("fusion weights must sum to a positive value, got %v", total)
	}
	return Weights{
		Semantic: w.Semantic / total,
		Level:    w.Level / total,
		Context:  w.Context / total,
	}, nil
}

// FusedDim returns the length of a fused vector for the given embedding size.
func FusedDim(semanticDim int) int {
	return semanticDim + LevelSlots + ContextSlots
}

// LevelVector encodes a level as a 7-slot triangular proximity kernel:
// 1.0 at the skill's own level, 0.5 one level away, 0.25 two levels away.
func LevelVector(level int) []float64 {
	vec := make([]float64, LevelSlots)
	for slot := 1; slot <= LevelSlots; slot++ {
		switch distance(level, slot) {
		case 0:
			vec[slot-1] = 1.0
		case 1:
			vec[slot-1] = 0.5
		case 2:
			vec[slot-1] = 0.25
		}
	}
	return vec
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// ContextVector encodes a context over the slots [practical, theoretical,
// hybrid]. Hybrid skills carry half weight on both pure contexts.
func ContextVector(ctx types.Context) []float64 {
	switch ctx {
	case types.ContextPractical:
		return []float64{1.0, 0, 0}
	case types.ContextTheoretical:
		return []float64{0, 1.0, 0}
	case types.ContextHybrid:
		return []float64{0.5, 0.5, 1.0}
	}
	return make([]float64, ContextSlots)
}

// Fuse concatenates the weighted semantic, level, and context blocks for each
// skill. Levels must sit in [1, 7] and contexts must be canonical; anything
// else is an error rather than a silently degraded encoding. All embeddings
// must share one dimension. The result has
// FusedDim(semanticDim) columns; blocks are concatenated, never summed, so
// each factor keeps its own subspace.
func Fuse(skills []types.Skill, weights Weights) ([][]float64, error) {
	if len(skills) == 0 {
		return nil, nil
	}

	w, err := weights.normalized()
	if err != nil {
		return nil, err
	}

	semanticDim := len(skills[0].Embedding)
	fused := make([][]float64, len(skills))

	for i, skill := range skills {
		if skill.Level < types.MinLevel || skill.Level > types.MaxLevel {
			return nil, fmt.Errorf("skill %q has level %d outside range [%d, %d]",
				skill.ID, skill.Level, types.MinLevel, types.MaxLevel)
		}
		if !skill.Context.Valid() {
			return nil, fmt.Errorf("skill %q has unknown context %q", skill.ID, skill.Context)
		}
		if len(skill.Embedding) != semanticDim {
			return nil, fmt.Errorf("skill %q has embedding dimension %d, want %d",
				skill.ID, len(skill.Embedding), semanticDim)
		}

		vec := make([]float64, 0, FusedDim(semanticDim))
		for _, v := range skill.Embedding {
			vec = append(vec, v*w.Semantic)
		}
		for _, v := range LevelVector(skill.Level) {
			vec = append(vec, v*w.Level*levelAmplification)
		}
		for _, v := range ContextVector(skill.Context) {
			vec = append(vec, v*w.Context*contextAmplification)
		}
		fused[i] = vec
	}

	return fused, nil
}
