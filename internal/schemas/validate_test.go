package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["org_id", "persons"],
	"properties": {
		"org_id": {"type": "string", "minLength": 1},
		"persons": {"type": "array", "minItems": 1}
	}
}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_Valid(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", testSchema)
	jsonPath := writeTempFile(t, "doc.json", `{"org_id": "org-1", "persons": [{"role": "head_of_household"}]}`)

	err := ValidateJSON(schemaPath, jsonPath)
	assert.NoError(t, err)
}

func TestValidateJSON_MissingRequiredField(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", testSchema)
	jsonPath := writeTempFile(t, "doc.json", `{"org_id": "org-1"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
	assert.Contains(t, err.Error(), "persons")
}

func TestValidateJSON_WrongType(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", testSchema)
	jsonPath := writeTempFile(t, "doc.json", `{"org_id": 42, "persons": []}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	jsonPath := writeTempFile(t, "doc.json", `{}`)

	err := ValidateJSON("testdata/nonexistent_schema.json", jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", testSchema)

	err := ValidateJSON(schemaPath, "testdata/nonexistent_doc.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"org_id": "org-1", "persons": [{}]}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"persons": []}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
	for _, fe := range validationErr.Errors {
		assert.NotEmpty(t, fe.Field)
		assert.NotEmpty(t, fe.Message)
	}
}

func TestValidateJSONString_MalformedSchema(t *testing.T) {
	err := ValidateJSONString(`{ not json }`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestResolveSchemaPath(t *testing.T) {
	// The structured run schema ships at the repo root; resolution walks up
	// from the package directory.
	path := ResolveSchemaPath("schemas/structured_run.schema.json")
	require.NotEmpty(t, path)
	assert.True(t, filepath.IsAbs(path))

	assert.Empty(t, ResolveSchemaPath("schemas/does_not_exist.schema.json"))
}
