package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalizeText_Whitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"crlf normalized", "line one\r\nline two\r", "line one\nline two"},
		{"internal spaces collapsed", "Senior    Software     Engineer", "Senior Software Engineer"},
		{"blank runs collapsed", "a\n\n\n\n\nb", "a\n\nb"},
		{"surrounding whitespace trimmed", "\n\n  hello  \n\n", "hello"},
		{"indentation preserved", "Skills:\n  - Go\n  - SQL", "Skills:\n  - Go\n  - SQL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinalizeText(tt.input))
		})
	}
}

func TestFinalizeText_PunctuationOnlyLinesDropped(t *testing.T) {
	input := "About the role\n•\n---\n***\nWe build infrastructure."
	got := FinalizeText(input)
	assert.Equal(t, "About the role\nWe build infrastructure.", got)
}

func TestFinalizeText_LegalSectionCollapsed(t *testing.T) {
	input := strings.Join([]string{
		"Responsibilities",
		"Design and ship distributed systems.",
		"",
		"Equal Opportunity",
		"Acme is an equal opportunity employer and considers applicants",
		"without regard to race, color, or religion.",
		"",
		"Benefits",
		"Health insurance and a 401k match.",
	}, "\n")

	got := FinalizeText(input)

	// The legal paragraph and the heading that introduced it are gone.
	assert.NotContains(t, got, "equal opportunity employer")
	assert.NotContains(t, got, "Equal Opportunity")
	assert.NotContains(t, got, "without regard to race")

	// Content before and after the legal section survives.
	assert.Contains(t, got, "Design and ship distributed systems.")
	assert.Contains(t, got, "Benefits")
	assert.Contains(t, got, "Health insurance and a 401k match.")
}

func TestFinalizeText_LegalLineWithoutHeadingDropped(t *testing.T) {
	input := "Great job at Acme.\nPlease review our privacy policy before applying.\nApply now."
	got := FinalizeText(input)
	assert.NotContains(t, got, "privacy policy")
	assert.Contains(t, got, "Great job at Acme.")
}

func TestIsHeadingLike(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"short section title", "Responsibilities", true},
		{"title with colon", "What you'll do:", true},
		{"sentence", "We are looking for an engineer to join the team.", false},
		{"too long", strings.Repeat("word ", 20), false},
		{"empty", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isHeadingLike(tt.line))
		})
	}
}
