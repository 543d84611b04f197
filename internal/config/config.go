// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Input      string `json:"input,omitempty"`      // Path to a narrative text file
	Structured string `json:"structured,omitempty"` // Path to a structured-input JSON file
	Schema     string `json:"schema,omitempty"`     // Path to the structured-input JSON Schema

	// Identity
	OrgID  string `json:"org_id,omitempty"`  // Organization UUID for persisted runs
	UserID string `json:"user_id,omitempty"` // User UUID for persisted runs

	// Policy
	FPLYear      int     `json:"fpl_year,omitempty"`      // Poverty guideline year
	DefaultHours float64 `json:"default_hours,omitempty"` // Weekly hours assumed for hourly income with no stated hours
	BatchWorkers int     `json:"batch_workers,omitempty"` // Concurrent screenings in batch mode

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed screening output
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        string `json:"port,omitempty"`         // HTTP listen port for serve mode
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
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Input != "" && c.Structured != "" {
		return fmt.Errorf("config error: 'input' and 'structured' are mutually exclusive")
	}

	if c.DefaultHours < 0 || c.DefaultHours > 168 {
		return fmt.Errorf("config error: 'default_hours' must be between 0 and 168")
	}
	if c.BatchWorkers < 0 {
		return fmt.Errorf("config error: 'batch_workers' must be non-negative")
	}

	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}
	if c.Structured != "" {
		if _, err := os.Stat(c.Structured); os.IsNotExist(err) {
			return fmt.Errorf("config error: structured input file not found: %s", c.Structured)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Structured == "" {
		result.Structured = defaults.Structured
	}
	if result.Schema == "" {
		result.Schema = defaults.Schema
	}
	if result.OrgID == "" {
		result.OrgID = defaults.OrgID
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == "" {
		result.Port = defaults.Port
	}

	// Int fields: use default if zero
	if result.FPLYear == 0 {
		result.FPLYear = defaults.FPLYear
	}
	if result.BatchWorkers == 0 {
		result.BatchWorkers = defaults.BatchWorkers
	}

	// Float fields
	if result.DefaultHours == 0 {
		if defaults.DefaultHours > 0 {
			result.DefaultHours = defaults.DefaultHours
		} else {
			result.DefaultHours = 40 // full-time assumption
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
