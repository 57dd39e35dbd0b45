// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags. Once loaded and merged, the configuration is read-only.
type Config struct {
	// Extraction
	JobURL string `json:"job_url,omitempty"` // URL to fetch the job posting from
	Mode   string `json:"mode,omitempty"`    // Fetch mode: auto, static, or rendered
	Out    string `json:"out,omitempty"`     // Output directory for extraction artifacts

	// Behavior
	APIKey              string `json:"api_key,omitempty"`               // Gemini API key for the analysis stage
	DatabaseURL         string `json:"database_url,omitempty"`          // PostgreSQL connection URL
	FetchTimeoutSeconds int    `json:"fetch_timeout_seconds,omitempty"` // Static fetch timeout
	CacheTTLHours       int    `json:"cache_ttl_hours,omitempty"`       // Page cache freshness window
	SkipCache           bool   `json:"skip_cache,omitempty"`            // Bypass the page cache
	Concurrency         int    `json:"concurrency,omitempty"`           // Batch mode worker count
	Verbose             bool   `json:"verbose,omitempty"`               // Print detailed debug information
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
	switch c.Mode {
	case "", "auto", "static", "rendered":
	default:
		return fmt.Errorf("config error: 'mode' must be one of auto, static, rendered (got %q)", c.Mode)
	}

	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'fetch_timeout_seconds' must be non-negative")
	}
	if c.CacheTTLHours < 0 {
		return fmt.Errorf("config error: 'cache_ttl_hours' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Mode == "" {
		result.Mode = defaults.Mode
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
	if result.CacheTTLHours == 0 {
		result.CacheTTLHours = defaults.CacheTTLHours
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
