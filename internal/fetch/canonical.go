// Package fetch - canonical.go rewrites vendor embed URLs into direct job-page URLs.
package fetch

import (
	"fmt"
	"net/url"
	"strings"
)

// greenhouseBoardHost is the canonical host for direct Greenhouse job pages.
const greenhouseBoardHost = "boards.greenhouse.io"

// slugParams are query parameters that may carry the owning organization's
// board slug on Greenhouse embed URLs, in precedence order.
var slugParams = []string{"for", "board", "company"}

// CanonicalURL rewrites a vendor-specific embed or indirect URL into the
// direct, fetchable job-page URL when a rule exists for the platform.
// It returns the possibly rewritten URL and whether a rewrite happened.
// The transformation is pure: on any ambiguity the original URL is returned
// unchanged with false, never an error.
func CanonicalURL(urlStr string, platform Platform) (string, bool) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return urlStr, false
	}

	switch platform {
	case PlatformGreenhouse:
		return canonicalGreenhouseURL(parsed, urlStr)
	case PlatformLever:
		return stripTrailingSegment(parsed, urlStr, "apply")
	case PlatformSmartRecruiters:
		return stripTrailingSegment(parsed, urlStr, "apply")
	default:
		return urlStr, false
	}
}

// canonicalGreenhouseURL resolves the gh_jid embed indirection.
// Company pages embed Greenhouse postings as site.com/careers?gh_jid=123,
// where the real posting lives at boards.greenhouse.io/{slug}/jobs/123.
// The slug is recovered from embed query parameters or the URL path; when it
// cannot be recovered, the tokenized embed endpoint still resolves the job
// without a slug.
func canonicalGreenhouseURL(parsed *url.URL, original string) (string, bool) {
	query := parsed.Query()
	jobID := query.Get("gh_jid")
	if jobID == "" {
		jobID = query.Get("token")
	}
	if jobID == "" {
		// Already a direct Greenhouse URL (or a bare board page): nothing to do.
		return original, false
	}

	if strings.Contains(strings.ToLower(parsed.Hostname()), "greenhouse.io") &&
		strings.Contains(parsed.Path, "/jobs/") {
		// Direct job page that merely carries tracking parameters.
		return original, false
	}

	if slug := recoverBoardSlug(parsed); slug != "" {
		return fmt.Sprintf("https://%s/%s/jobs/%s", greenhouseBoardHost, slug, jobID), true
	}

	// Best-effort endpoint that works without the organization slug.
	rewritten := fmt.Sprintf("https://%s/embed/job_app?token=%s", greenhouseBoardHost, jobID)
	if rewritten == original {
		return original, false
	}
	return rewritten, true
}

// recoverBoardSlug attempts to find the Greenhouse board slug in the URL.
// Embed snippets pass it via query parameters; native board URLs carry it as
// the first path segment.
func recoverBoardSlug(parsed *url.URL) string {
	query := parsed.Query()
	for _, param := range slugParams {
		if slug := query.Get(param); slug != "" {
			return slug
		}
	}

	if strings.Contains(strings.ToLower(parsed.Hostname()), "greenhouse.io") {
		segments := splitPath(parsed.Path)
		if len(segments) > 0 && segments[0] != "embed" {
			return segments[0]
		}
	}

	return ""
}

// stripTrailingSegment removes an extraneous final path segment (such as the
// "apply" page suffix) to reach the canonical posting page.
func stripTrailingSegment(parsed *url.URL, original string, segment string) (string, bool) {
	segments := splitPath(parsed.Path)
	if len(segments) < 2 || segments[len(segments)-1] != segment {
		return original, false
	}

	rewritten := *parsed
	rewritten.Path = "/" + strings.Join(segments[:len(segments)-1], "/")
	return rewritten.String(), true
}

// splitPath returns the non-empty segments of a URL path.
func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
