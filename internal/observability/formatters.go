// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/jd-extractor/internal/analysis"
	"github.com/jonathan/jd-extractor/internal/pipeline"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtractionResult outputs a human-readable summary of a pipeline result.
func (p *Printer) PrintExtractionResult(result *pipeline.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("URL:       %s\n", result.URL))
	if result.ResolvedURL != result.URL {
		sb.WriteString(fmt.Sprintf("Resolved:  %s\n", result.ResolvedURL))
	}
	sb.WriteString(fmt.Sprintf("Platform:  %s\n", result.Platform))
	sb.WriteString(fmt.Sprintf("Source:    %s\n", result.Source))
	sb.WriteString(fmt.Sprintf("Text:      %d chars\n", len(result.Text)))

	if result.Schema != nil {
		if result.Schema.Title != "" {
			sb.WriteString(fmt.Sprintf("Title:     %s\n", result.Schema.Title))
		}
		if result.Schema.Company != "" {
			sb.WriteString(fmt.Sprintf("Company:   %s\n", result.Schema.Company))
		}
		if result.Schema.Location != "" {
			sb.WriteString(fmt.Sprintf("Location:  %s\n", result.Schema.Location))
		}
	}

	if result.Error != "" {
		sb.WriteString(fmt.Sprintf("Error:     %s\n", result.Error))
	}

	p.printBox("EXTRACTION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs a human-readable summary of the analysis record.
func (p *Printer) PrintAnalysis(record *analysis.Analysis) {
	if record == nil {
		return
	}

	var sb strings.Builder
	if record.SeniorityLevel != "" {
		sb.WriteString(fmt.Sprintf("Seniority: %s\n\n", record.SeniorityLevel))
	}

	writeList := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(label + ":\n")
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	writeList("Responsibilities", record.Responsibilities)
	writeList("Required Skills", record.RequiredSkills)
	writeList("Tools & Technologies", record.ToolsTechnologies)
	writeList("ATS Keywords", record.ATSKeywords)

	p.printBox("JOB DESCRIPTION ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}
