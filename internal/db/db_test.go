package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractionType(t *testing.T) {
	e := Extraction{
		URL:         "https://boards.greenhouse.io/acme/jobs/123",
		ResolvedURL: "https://boards.greenhouse.io/acme/jobs/123",
		Platform:    "greenhouse",
		Source:      "static",
		Text:        "Senior Engineer...",
	}

	assert.Equal(t, "greenhouse", e.Platform)
	assert.Empty(t, e.Error)
	assert.Nil(t, e.SchemaJSON)
	assert.True(t, e.CreatedAt.IsZero())
}

func TestDefaultPageCacheTTL(t *testing.T) {
	assert.Equal(t, 7*24*time.Hour, DefaultPageCacheTTL)
}
