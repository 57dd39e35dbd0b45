// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "JDAnalysis")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// JDAnalysisSchema returns the extraction schema for job description
// analysis: the fixed-shape record consumed by resume tooling downstream of
// the extraction pipeline.
func JDAnalysisSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "JDAnalysis",
		Description: `You are an expert job posting analyst. COPY TEXT VERBATIM where possible - do not paraphrase or summarize.
Your task is to extract structured information from a job description for resume tailoring.
EXCLUDE: Application form fields, EEO statements, legal disclaimers, cookie notices.`,
		Fields: []SchemaField{
			{
				Name:        "responsibilities",
				Type:        "[\"string\"]",
				Description: "Job duties and day-to-day work - copy each responsibility verbatim",
				Required:    true,
			},
			{
				Name:        "required_skills",
				Type:        "[\"string\"]",
				Description: "Required skills and qualifications - copy each verbatim",
				Required:    true,
			},
			{
				Name:        "tools_technologies",
				Type:        "[\"string\"]",
				Description: "Specific tools, languages, frameworks, and platforms mentioned",
				Required:    true,
			},
			{
				Name:        "ats_keywords",
				Type:        "[\"string\"]",
				Description: "Keywords an applicant tracking system would scan for",
				Required:    true,
			},
			{
				Name:        "seniority_level",
				Type:        "\"string\"",
				Description: "Seniority level: junior, mid, senior, staff, principal, or lead",
				Required:    false,
			},
		},
	}
}
