package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

func record(id, name string, level any, context string) types.SkillRecord {
	return types.SkillRecord{
		ID:         id,
		Name:       name,
		Level:      level,
		Context:    context,
		Confidence: 0.9,
		Embedding:  []float64{0.1, 0.2, 0.3},
	}
}

func TestRun_NumericAndWordLevels(t *testing.T) {
	records := []types.SkillRecord{
		record("s1", "Go Programming", 4, "practical"),
		record("s2", "System Design", "advanced", "hybrid"),
		record("s3", "Team Mentoring", "strategic", "practical"),
		record("s4", "SQL Basics", float64(2), "theoretical"),
	}

	skills, report, err := Run(records, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, skills, 4)

	assert.Equal(t, 4, skills[0].Level)
	assert.Equal(t, 4, skills[1].Level)
	assert.Equal(t, 7, skills[2].Level)
	assert.Equal(t, 2, skills[3].Level)
	assert.Equal(t, 4, report.Output)
}

func TestRun_LevelWordMap(t *testing.T) {
	words := map[string]int{
		"beginner":     1,
		"novice":       1,
		"basic":        2,
		"elementary":   2,
		"intermediate": 3,
		"competent":    3,
		"advanced":     4,
		"proficient":   4,
		"expert":       5,
		"master":       6,
		"strategic":    7,
	}

	for word, want := range words {
		level, err := normalizeLevel(word)
		require.NoError(t, err, "word %q", word)
		assert.Equal(t, want, level, "word %q", word)
	}
}

func TestRun_MissingLevelIsHardFailure(t *testing.T) {
	records := []types.SkillRecord{
		{ID: "s1", Name: "Go Programming", Context: "practical", Confidence: 0.9, Embedding: []float64{0.1}},
	}

	_, _, err := Run(records, DefaultOptions())
	require.Error(t, err)

	var contractErr *ContractError
	require.ErrorAs(t, err, &contractErr)
	assert.Equal(t, "level", contractErr.Field)
	assert.Equal(t, "s1", contractErr.RecordID)
}

func TestRun_OutOfRangeLevelIsHardFailure(t *testing.T) {
	records := []types.SkillRecord{record("s1", "Go Programming", 9, "practical")}

	_, _, err := Run(records, DefaultOptions())
	var contractErr *ContractError
	require.ErrorAs(t, err, &contractErr)
	assert.Equal(t, "level", contractErr.Field)
}

func TestRun_UnknownContextIsHardFailure(t *testing.T) {
	records := []types.SkillRecord{record("s1", "Go Programming", 4, "applied")}

	_, _, err := Run(records, DefaultOptions())
	var contractErr *ContractError
	require.ErrorAs(t, err, &contractErr)
	assert.Equal(t, "context", contractErr.Field)
}

func TestRun_CategorySynonyms(t *testing.T) {
	cases := map[string]string{
		"Tech":            "technical",
		"technology":      "technical",
		"IT":              "technical",
		"engineering":     "technical",
		"soft":            "interpersonal",
		"Leadership":      "interpersonal",
		"management":      "interpersonal",
		"analytical":      "cognitive",
		"problem_solving": "cognitive",
		"domain":          "domain_knowledge",
		"Business":        "domain_knowledge",
		"finance":         "finance", // unknown labels pass through lowercased
	}

	for input, want := range cases {
		assert.Equal(t, want, normalizeCategory(input), "category %q", input)
	}
}

func TestRun_ConfidenceFilter(t *testing.T) {
	low := record("s1", "Go Programming", 4, "practical")
	low.Confidence = 0.4
	high := record("s2", "System Design", 5, "practical")

	skills, report, err := Run([]types.SkillRecord{low, high}, DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, skills, 1)
	assert.Equal(t, "s2", skills[0].ID)
	assert.Equal(t, 1, report.LowConfidence)
}

func TestRun_Deduplication(t *testing.T) {
	records := []types.SkillRecord{
		record("s1", "Go Programming", 4, "practical"),
		record("s1", "Different Name", 5, "practical"),   // duplicate id
		record("s3", "Go Programming", 4, "theoretical"), // duplicate name+level
		record("s4", "Go Programming", 5, "practical"),   // same name, different level: kept
	}

	skills, report, err := Run(records, DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, skills, 2)
	assert.Equal(t, 2, report.Duplicates)
}

func TestRun_NameCleaningAndLengthFilter(t *testing.T) {
	messy := record("s1", "  Go    Programming  ", 4, "practical")
	tooShort := record("s2", "Go", 4, "practical")

	skills, report, err := Run([]types.SkillRecord{messy, tooShort}, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, skills, 1)
	assert.Equal(t, "Go Programming", skills[0].Name)
	assert.Equal(t, 1, report.NameLength)
}

func TestRun_KeywordParsing(t *testing.T) {
	withList := record("s1", "Go Programming", 4, "practical")
	withList.Keywords = []any{"Backend", " concurrency "}
	withString := record("s2", "System Design", 5, "practical")
	withString.Keywords = "architecture, Scalability,"

	skills, _, err := Run([]types.SkillRecord{withList, withString}, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"backend", "concurrency"}, skills[0].Keywords)
	assert.Equal(t, []string{"architecture", "scalability"}, skills[1].Keywords)
}

func TestRun_GeneratesIDWhenMissing(t *testing.T) {
	rec := record("", "Go Programming", 4, "practical")

	skills, _, err := Run([]types.SkillRecord{rec}, DefaultOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, skills[0].ID)
}
