package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jd-extractor/internal/schemas"
)

func TestSchemaFile_ValidJSONSchema(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(".", "jd_analysis.schema.json"))
	require.NoError(t, err, "should be able to read schema file")

	var schemaObj map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON")

	// Check for required JSON Schema fields
	assert.Contains(t, schemaObj, "$schema")
	assert.Contains(t, schemaObj, "type")
	assert.Contains(t, schemaObj, "properties")
	assert.Contains(t, schemaObj, "required")
}

func TestJDAnalysisSchema_AcceptsValidDocument(t *testing.T) {
	document := `{
		"responsibilities": ["Design services", "Operate infrastructure"],
		"required_skills": ["Go", "SQL"],
		"tools_technologies": ["PostgreSQL", "Kubernetes"],
		"ats_keywords": ["backend", "distributed systems"],
		"seniority_level": "senior"
	}`

	err := schemas.ValidateBytes("jd_analysis.schema.json", []byte(document))
	assert.NoError(t, err)
}

func TestJDAnalysisSchema_RejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{
			"missing required field",
			`{"responsibilities": [], "required_skills": [], "tools_technologies": []}`,
		},
		{
			"wrong item type",
			`{"responsibilities": [1, 2], "required_skills": [], "tools_technologies": [], "ats_keywords": []}`,
		},
		{
			"unexpected property",
			`{"responsibilities": [], "required_skills": [], "tools_technologies": [], "ats_keywords": [], "surprise": true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateBytes("jd_analysis.schema.json", []byte(tt.document))
			assert.Error(t, err)
		})
	}
}
