package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	schema := ExtractionSchema{
		Description: "Extract the fields below.",
		Fields: []SchemaField{
			{Name: "title", Type: "string", Description: "posting title", Required: true},
			{Name: "tags", Type: "[]string"},
		},
	}

	prompt := BuildExtractionPrompt(schema, "Some job posting text")

	assert.True(t, strings.HasPrefix(prompt, "Extract the fields below."))
	assert.Contains(t, prompt, `"title": string (required) // posting title`)
	assert.Contains(t, prompt, `"tags": []string`)
	assert.Contains(t, prompt, "Return ONLY valid JSON")
	assert.Contains(t, prompt, "Some job posting text")
}

func TestJDAnalysisSchema(t *testing.T) {
	schema := JDAnalysisSchema()
	assert.Equal(t, "JDAnalysis", schema.Name)

	var names []string
	required := 0
	for _, f := range schema.Fields {
		names = append(names, f.Name)
		if f.Required {
			required++
		}
	}
	assert.Equal(t, []string{"responsibilities", "required_skills", "tools_technologies", "ats_keywords", "seniority_level"}, names)
	assert.Equal(t, 4, required)

	prompt := BuildExtractionPrompt(schema, "text")
	assert.Contains(t, prompt, "ats_keywords")
}
