// Package extract - text.go normalizes extracted text and drops residual
// legal boilerplate.
package extract

import (
	"regexp"
	"strings"
)

// legalPhrasePatterns identify legal-boilerplate paragraphs: EEO notices,
// cookie-policy statements, and terms-of-use references.
var legalPhrasePatterns = []string{
	"equal opportunity employer",
	"equal employment opportunity",
	"without regard to race",
	"e-verify",
	"cookie policy",
	"cookies policy",
	"use of cookies",
	"terms of use",
	"terms of service",
	"privacy policy",
	"privacy notice",
}

var (
	multiSpaceRe       = regexp.MustCompile(`\s+`)
	excessiveBlanksRe  = regexp.MustCompile(`\n\n\n+`)
	punctuationOnlyRe  = regexp.MustCompile(`^[\p{P}\p{S}•·◦▪‣–—\s]+$`)
	headingMaxLength   = 60
)

// FinalizeText post-processes extracted text: it drops legal-boilerplate
// sections, strips lines of bare punctuation or bullet glyphs, normalizes
// whitespace within lines, and collapses runs of blank lines.
func FinalizeText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	lines = dropLegalSections(lines)

	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = normalizeLine(line)
		if line != "" && punctuationOnlyRe.MatchString(line) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	result := strings.Join(cleaned, "\n")
	result = excessiveBlanksRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// dropLegalSections removes lines matching legal phrase patterns. When such a
// line sits under a short heading-like line, the whole section is collapsed:
// the heading and everything after it are dropped until the next heading-like
// line begins a new section.
func dropLegalSections(lines []string) []string {
	kept := make([]string, 0, len(lines))
	lastHeadingIdx := -1 // index into kept
	skipping := false

	for _, line := range lines {
		heading := isHeadingLike(line)

		if skipping {
			if heading && !containsLegalPhrase(line) {
				skipping = false
			} else {
				continue
			}
		}

		if containsLegalPhrase(line) {
			// Collapse back to the heading that introduced this section.
			if lastHeadingIdx >= 0 {
				kept = kept[:lastHeadingIdx]
				lastHeadingIdx = -1
			}
			skipping = true
			continue
		}

		if heading && strings.TrimSpace(line) != "" {
			lastHeadingIdx = len(kept)
		}
		kept = append(kept, line)
	}

	return kept
}

func containsLegalPhrase(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range legalPhrasePatterns {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// isHeadingLike reports whether a line reads like a section heading: short,
// non-empty, and without terminal sentence punctuation.
func isHeadingLike(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > headingMaxLength {
		return false
	}
	if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, ",") || strings.HasSuffix(trimmed, ";") {
		return false
	}
	return true
}

// normalizeLine trims trailing whitespace and collapses internal runs of
// spaces while preserving bullet markers and leading indentation.
func normalizeLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	indent := len(line) - len(trimmed)
	content := multiSpaceRe.ReplaceAllString(trimmed, " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}
