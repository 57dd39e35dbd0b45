package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"job_url": "https://boards.greenhouse.io/acme/jobs/123",
		"mode": "static",
		"out": "./artifacts",
		"fetch_timeout_seconds": 30,
		"cache_ttl_hours": 24,
		"concurrency": 8,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/123", cfg.JobURL)
	assert.Equal(t, "static", cfg.Mode)
	assert.Equal(t, "./artifacts", cfg.Out)
	assert.Equal(t, 30, cfg.FetchTimeoutSeconds)
	assert.Equal(t, 24, cfg.CacheTTLHours)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeConfigFile(t, `{not json`)
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config", Config{}, false},
		{"valid mode", Config{Mode: "rendered"}, false},
		{"invalid mode", Config{Mode: "browser"}, true},
		{"negative timeout", Config{FetchTimeoutSeconds: -1}, true},
		{"negative ttl", Config{CacheTTLHours: -5}, true},
		{"negative concurrency", Config{Concurrency: -2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_MergeWithDefaults(t *testing.T) {
	cfg := Config{Mode: "static", Concurrency: 2}
	defaults := Config{
		JobURL:              "https://example.com/jobs/1",
		Mode:                "auto",
		FetchTimeoutSeconds: 20,
		Concurrency:         4,
		Verbose:             true,
	}

	merged := cfg.MergeWithDefaults(defaults)

	// Explicit values win.
	assert.Equal(t, "static", merged.Mode)
	assert.Equal(t, 2, merged.Concurrency)

	// Empty values are filled from defaults.
	assert.Equal(t, "https://example.com/jobs/1", merged.JobURL)
	assert.Equal(t, 20, merged.FetchTimeoutSeconds)

	// Bools are never merged.
	assert.False(t, merged.Verbose)
}
