package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRecords = `[
	{
		"id": "s1",
		"name": "Go Programming",
		"level": 4,
		"context": "practical",
		"category": "technical",
		"keywords": ["backend"],
		"confidence": 0.9,
		"embedding": [0.1, 0.2, 0.3]
	}
]`

func TestResolveSchemaPath_FindsRepoSchema(t *testing.T) {
	// Tests run two levels below the repo root.
	path := ResolveSchemaPath(SkillRecordsSchema)
	require.NotEmpty(t, path)

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestResolveSchemaPath_MissingFile(t *testing.T) {
	assert.Empty(t, ResolveSchemaPath("schemas/no_such_schema.json"))
}

func TestValidateJSON_ValidRecords(t *testing.T) {
	schemaPath := ResolveSchemaPath(SkillRecordsSchema)
	require.NotEmpty(t, schemaPath)

	jsonPath := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(validRecords), 0644))

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_MissingRequiredField(t *testing.T) {
	schemaPath := ResolveSchemaPath(SkillRecordsSchema)
	require.NotEmpty(t, schemaPath)

	jsonPath := filepath.Join(t.TempDir(), "records.json")
	missingLevel := `[{"name": "Go Programming", "context": "practical", "embedding": [0.1]}]`
	require.NoError(t, os.WriteFile(jsonPath, []byte(missingLevel), 0644))

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateJSON_WordLevelAccepted(t *testing.T) {
	schemaPath := ResolveSchemaPath(SkillRecordsSchema)
	require.NotEmpty(t, schemaPath)

	jsonPath := filepath.Join(t.TempDir(), "records.json")
	wordLevel := `[{"name": "System Design", "level": "advanced", "context": "hybrid", "embedding": [0.1]}]`
	require.NoError(t, os.WriteFile(jsonPath, []byte(wordLevel), 0644))

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_UnknownPropertyRejected(t *testing.T) {
	schemaPath := ResolveSchemaPath(SkillRecordsSchema)
	require.NotEmpty(t, schemaPath)

	jsonPath := filepath.Join(t.TempDir(), "records.json")
	extra := `[{"name": "Go Programming", "level": 4, "context": "practical", "embedding": [0.1], "rank": 1}]`
	require.NoError(t, os.WriteFile(jsonPath, []byte(extra), 0644))

	assert.Error(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_MissingFiles(t *testing.T) {
	schemaPath := ResolveSchemaPath(SkillRecordsSchema)
	require.NotEmpty(t, schemaPath)

	assert.Error(t, ValidateJSON(schemaPath, filepath.Join(t.TempDir(), "nope.json")))
	assert.Error(t, ValidateJSON(filepath.Join(t.TempDir(), "nope.schema.json"), schemaPath))
}

func TestValidateJSONString_InlineSchema(t *testing.T) {
	schema := `{"type": "array", "items": {"type": "object", "required": ["name"]}}`

	assert.NoError(t, ValidateJSONString(schema, `[{"name": "Go"}]`))
	assert.Error(t, ValidateJSONString(schema, `[{}]`))
}

func TestValidateJSONString_MalformedSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": `, `[]`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
