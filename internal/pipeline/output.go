package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Metadata describes an extraction run for the artifact files.
type Metadata struct {
	URL         string `json:"url,omitempty"`
	ResolvedURL string `json:"resolved_url,omitempty"`
	Timestamp   string `json:"timestamp"` // RFC3339 format
	Hash        string `json:"hash"`      // SHA256 hex digest of the text
	Platform    string `json:"ats_type,omitempty"`
	Source      string `json:"source,omitempty"`
	Error       string `json:"error,omitempty"`
}

// NewMetadata builds the metadata record for a pipeline result.
func NewMetadata(result *Result) *Metadata {
	return &Metadata{
		URL:         result.URL,
		ResolvedURL: result.ResolvedURL,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Hash:        computeHash(result.Text),
		Platform:    string(result.Platform),
		Source:      string(result.Source),
		Error:       result.Error,
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}

// WriteOutput writes the extracted text and metadata to output files.
func WriteOutput(outDir string, result *Result) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	textPath := filepath.Join(outDir, "job_posting.cleaned.txt")
	if err := os.WriteFile(textPath, []byte(result.Text), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaJSON, err := NewMetadata(result).ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	metaPath := filepath.Join(outDir, "job_posting.meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	if result.Schema != nil {
		schemaJSON, err := json.MarshalIndent(result.Schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema data: %w", err)
		}
		schemaPath := filepath.Join(outDir, "job_posting.schema.json")
		if err := os.WriteFile(schemaPath, schemaJSON, 0644); err != nil {
			return fmt.Errorf("failed to write schema data file: %w", err)
		}
	}

	return nil
}
