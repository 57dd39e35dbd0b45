// Package pipeline sequences platform detection, URL canonicalization, and
// the layered extraction cascade into a single content-resolution run.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/jonathan/jd-extractor/internal/extract"
	"github.com/jonathan/jd-extractor/internal/fetch"
)

// Mode selects which fetch strategies a run may use.
type Mode string

// Supported extraction modes.
const (
	// ModeAuto tries the static sequence first and escalates to rendering.
	ModeAuto Mode = "auto"
	// ModeStatic uses only the HTTP fetch path.
	ModeStatic Mode = "static"
	// ModeRendered uses only the headless browser path.
	ModeRendered Mode = "rendered"
)

// ParseMode validates a mode string. An empty string means ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.TrimSpace(s)) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeStatic:
		return ModeStatic, nil
	case ModeRendered:
		return ModeRendered, nil
	default:
		return "", fmt.Errorf("%w: %q (must be one of: auto, static, rendered)", ErrInvalidMode, s)
	}
}

// Source identifies which cascade stage produced the winning text.
type Source string

// Extraction sources.
const (
	// SourceStructured means a JSON-LD JobPosting record was used.
	SourceStructured Source = "structured"
	// SourceStatic means boilerplate-cleaned static HTML was used.
	SourceStatic Source = "static"
	// SourceRendered means the headless browser path was used.
	SourceRendered Source = "rendered"
	// SourceFallback means the readability-style fallback extractor was used.
	SourceFallback Source = "fallback-extractor"
	// SourceNone means no stage produced any text.
	SourceNone Source = "none"
)

// Request is the immutable input to one pipeline run.
type Request struct {
	URL  string `json:"url" validate:"required"`
	Mode string `json:"mode,omitempty" validate:"omitempty,oneof=auto static rendered"`
}

// Result is the pipeline's sole externally visible artifact.
//
// Invariants: Source is SourceNone if and only if Text is empty and Error is
// set; Schema is non-nil only when Source is SourceStructured; ResolvedURL
// differs from URL only when canonicalization actually rewrote the URL.
type Result struct {
	URL         string             `json:"url"`
	ResolvedURL string             `json:"resolved_url"`
	Platform    fetch.Platform     `json:"ats_type"`
	Source      Source             `json:"source"`
	Text        string             `json:"raw_text"`
	Schema      *extract.JobSchema `json:"schema_data,omitempty"`
	Error       string             `json:"error,omitempty"`
}
