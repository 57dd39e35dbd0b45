package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jd-extractor/internal/extract"
	"github.com/jonathan/jd-extractor/internal/fetch"
)

func sampleResult() *Result {
	return &Result{
		URL:         "https://boards.greenhouse.io/acme/jobs/123",
		ResolvedURL: "https://boards.greenhouse.io/acme/jobs/123",
		Platform:    fetch.PlatformGreenhouse,
		Source:      SourceStatic,
		Text:        "Senior Engineer\n\nResponsibilities: build and run systems.",
	}
}

func TestWriteOutput(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "nested", "out")
	result := sampleResult()

	require.NoError(t, WriteOutput(outDir, result))

	text, err := os.ReadFile(filepath.Join(outDir, "job_posting.cleaned.txt"))
	require.NoError(t, err)
	assert.Equal(t, result.Text, string(text))

	metaBytes, err := os.ReadFile(filepath.Join(outDir, "job_posting.meta.json"))
	require.NoError(t, err)

	var meta Metadata
	require.NoError(t, json.Unmarshal(metaBytes, &meta))
	assert.Equal(t, result.URL, meta.URL)
	assert.Equal(t, string(SourceStatic), meta.Source)
	assert.Equal(t, string(fetch.PlatformGreenhouse), meta.Platform)
	assert.NotEmpty(t, meta.Timestamp)

	wantHash := sha256.Sum256([]byte(result.Text))
	assert.Equal(t, hex.EncodeToString(wantHash[:]), meta.Hash)

	// No schema data, no schema file.
	_, err = os.Stat(filepath.Join(outDir, "job_posting.schema.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteOutput_SchemaFile(t *testing.T) {
	outDir := t.TempDir()
	result := sampleResult()
	result.Source = SourceStructured
	result.Schema = &extract.JobSchema{Title: "Senior Engineer", Description: "Build systems."}

	require.NoError(t, WriteOutput(outDir, result))

	schemaBytes, err := os.ReadFile(filepath.Join(outDir, "job_posting.schema.json"))
	require.NoError(t, err)

	var schema extract.JobSchema
	require.NoError(t, json.Unmarshal(schemaBytes, &schema))
	assert.Equal(t, "Senior Engineer", schema.Title)
}

func TestNewMetadata_CarriesError(t *testing.T) {
	result := sampleResult()
	result.Source = SourceNone
	result.Text = ""
	result.Error = "HTTP status 404"

	meta := NewMetadata(result)
	assert.Equal(t, "HTTP status 404", meta.Error)
	assert.Equal(t, string(SourceNone), meta.Source)
}
