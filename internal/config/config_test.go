package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `{
		"org_id": "org-123",
		"default_hours": 30,
		"verbose": true,
		"database_url": "postgres://localhost/benefits"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "org-123", cfg.OrgID)
	assert.Equal(t, 30.0, cfg.DefaultHours)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "postgres://localhost/benefits", cfg.DatabaseURL)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{not json}`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_MutuallyExclusiveInputs(t *testing.T) {
	cfg := &Config{Input: "a.txt", Structured: "b.json"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_DefaultHoursRange(t *testing.T) {
	cfg := &Config{DefaultHours: 200}
	assert.Error(t, cfg.Validate())

	cfg = &Config{DefaultHours: 30}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingInputFile(t *testing.T) {
	cfg := &Config{Input: filepath.Join(t.TempDir(), "missing.txt")}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{OrgID: "org-set", Verbose: true}
	defaults := Config{OrgID: "org-default", DatabaseURL: "postgres://db", Port: "8080", DefaultHours: 35}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "org-set", merged.OrgID) // explicit value wins
	assert.Equal(t, "postgres://db", merged.DatabaseURL)
	assert.Equal(t, "8080", merged.Port)
	assert.Equal(t, 35.0, merged.DefaultHours)
	assert.True(t, merged.Verbose)
}

func TestMergeWithDefaults_FullTimeFallback(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{})
	assert.Equal(t, 40.0, merged.DefaultHours)
}
