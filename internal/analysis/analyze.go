// Package analysis turns extracted job description text into the fixed-shape
// record consumed by resume tooling. It sits downstream of the extraction
// pipeline and is opaque to it.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/jd-extractor/internal/llm"
	"github.com/jonathan/jd-extractor/internal/schemas"
)

// minAnalyzableLength is the minimum text length worth sending to the model.
const minAnalyzableLength = 50

// analysisSchemaPath locates the JSON Schema for validating model output.
const analysisSchemaPath = "schemas/jd_analysis.schema.json"

// Analysis is the fixed-shape analysis record.
type Analysis struct {
	Responsibilities  []string `json:"responsibilities"`
	RequiredSkills    []string `json:"required_skills"`
	ToolsTechnologies []string `json:"tools_technologies"`
	ATSKeywords       []string `json:"ats_keywords"`
	SeniorityLevel    string   `json:"seniority_level,omitempty"`
}

// Analyze extracts the structured analysis record from job description text.
func Analyze(ctx context.Context, text string, apiKey string) (*Analysis, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key required for analysis")
	}
	if len(strings.TrimSpace(text)) < minAnalyzableLength {
		return nil, fmt.Errorf("text too short to analyze (%d chars, need at least %d)",
			len(strings.TrimSpace(text)), minAnalyzableLength)
	}

	config := llm.DefaultConfig()
	client, err := llm.NewClient(ctx, config, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	prompt := llm.BuildExtractionPrompt(llm.JDAnalysisSchema(), text)

	jsonResp, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis: %w", err)
	}
	jsonResp = llm.CleanJSONBlock(jsonResp)

	if schemaPath := schemas.ResolveSchemaPath(analysisSchemaPath); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, []byte(jsonResp)); err != nil {
			return nil, fmt.Errorf("analysis output failed schema validation: %w", err)
		}
	}

	var result Analysis
	if err := json.Unmarshal([]byte(jsonResp), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis JSON: %w (content: %s)", err, jsonResp)
	}

	return &result, nil
}
