package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	longFiller := strings.Repeat("lorem ipsum dolor sit amet ", 50) // ~1350 chars, no keywords

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"short with keywords", "Responsibilities: build things. Requirements: Go.", false},
		{"long without keywords", longFiller, false},
		{"long with one keyword", longFiller + " responsibilities", true},
		{"keyword match is case-insensitive", longFiller + " RESPONSIBILITIES", true},
		{"whitespace padding does not count toward length", strings.Repeat(" ", 2000) + "responsibilities", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.text))
		})
	}
}

func TestIsValidStrict(t *testing.T) {
	filler := strings.Repeat("lorem ipsum dolor sit amet ", 25) // ~675 chars

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"long with one keyword fails", filler + " responsibilities", false},
		{"long with two keywords passes", filler + " responsibilities and qualifications", true},
		{"two keywords but too short", "responsibilities qualifications", false},
		{"repeated keyword counts once", filler + " apply apply apply", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidStrict(tt.text))
		})
	}
}

func TestIsValid_MonotonicInLength(t *testing.T) {
	// Appending more keyword-bearing prose never invalidates valid text.
	text := strings.Repeat("We value experience with distributed systems and strong skills. ", 20)
	require.True(t, IsValid(text))
	for i := 0; i < 5; i++ {
		text += "Further responsibilities include mentoring and code review. "
		assert.True(t, IsValid(text))
	}
}

func TestIsValid_ImpliesStrictLengthMonotonic(t *testing.T) {
	// Any text passing the standard check also carries enough length for the
	// strict floor; the strict check can still fail on keyword count.
	text := strings.Repeat("x ", 600) + "responsibilities"
	assert.True(t, IsValid(text))
	assert.GreaterOrEqual(t, len(strings.TrimSpace(text)), StrictMinLength)
}
