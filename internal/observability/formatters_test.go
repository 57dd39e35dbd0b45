package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jd-extractor/internal/analysis"
	"github.com/jonathan/jd-extractor/internal/extract"
	"github.com/jonathan/jd-extractor/internal/fetch"
	"github.com/jonathan/jd-extractor/internal/pipeline"
)

func TestPrintExtractionResult(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintExtractionResult(&pipeline.Result{
		URL:         "https://current.com/careers?gh_jid=123",
		ResolvedURL: "https://boards.greenhouse.io/current/jobs/123",
		Platform:    fetch.PlatformGreenhouse,
		Source:      pipeline.SourceStructured,
		Text:        "Posting text",
		Schema:      &extract.JobSchema{Title: "Engineer", Company: "Current"},
	})

	out := buf.String()
	assert.Contains(t, out, "EXTRACTION RESULT")
	assert.Contains(t, out, "greenhouse")
	assert.Contains(t, out, "structured")
	assert.Contains(t, out, "Engineer")
	assert.Contains(t, out, "Resolved:")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")
}

func TestPrintExtractionResult_NilSafe(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintExtractionResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintAnalysis_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	keywords := make([]string, 9)
	for i := range keywords {
		keywords[i] = "keyword"
	}

	printer.PrintAnalysis(&analysis.Analysis{
		Responsibilities: []string{"Run the platform"},
		ATSKeywords:      keywords,
		SeniorityLevel:   "staff",
	})

	out := buf.String()
	assert.Contains(t, out, "JOB DESCRIPTION ANALYSIS")
	assert.Contains(t, out, "staff")
	assert.Contains(t, out, "Run the platform")
	assert.Contains(t, out, "... and 4 more")
	// No more than maxItemsToShow bullets per list plus the one responsibility.
	assert.Equal(t, maxItemsToShow+1, strings.Count(out, "•"))
}
