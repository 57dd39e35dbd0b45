// Package extract - validate.go decides whether candidate text plausibly is a
// real job description. This gate governs every fallthrough decision in the
// extraction cascade.
package extract

import "strings"

// MinContentLength is the minimum text length for the standard validity
// check. Shorter content usually means a script-rendered page whose real
// posting has not been reached yet.
const MinContentLength = 1000

// StrictMinLength is the length floor for the stricter check applied to
// fallback-extractor output, which is trusted less than structural cleaning.
const StrictMinLength = 500

// jdKeywords are phrases indicative of job-posting prose. Matching is
// case-insensitive; a single hit satisfies the standard check.
var jdKeywords = []string{
	"responsibilities",
	"requirements",
	"qualifications",
	"experience",
	"skills",
	"about the role",
	"what you'll do",
	"who you are",
	"job description",
	"duties",
	"benefits",
	"salary",
	"apply",
	"position",
}

// IsValid reports whether text meets the minimum content length and contains
// at least one job-description keyword. It distinguishes real postings from
// page chrome (navigation, footers, cookie banners).
func IsValid(text string) bool {
	if len(strings.TrimSpace(text)) < MinContentLength {
		return false
	}
	return countKeywords(text) >= 1
}

// IsValidStrict applies the stricter two-keyword check over a lower length
// floor, used for unstructured fallback-extractor output.
func IsValidStrict(text string) bool {
	if len(strings.TrimSpace(text)) < StrictMinLength {
		return false
	}
	return countKeywords(text) >= 2
}

// countKeywords returns the number of distinct job-description keywords
// present in the text.
func countKeywords(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, keyword := range jdKeywords {
		if strings.Contains(lower, keyword) {
			count++
		}
	}
	return count
}
