package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_JSONFieldNames(t *testing.T) {
	result := sampleResult()
	result.Error = "partial"

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, key := range []string{"url", "resolved_url", "ats_type", "source", "raw_text", "error"} {
		assert.Contains(t, fields, key)
	}
	// Absent schema data is omitted, not null.
	assert.NotContains(t, fields, "schema_data")
}
