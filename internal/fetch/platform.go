// Package fetch - platform.go provides ATS platform detection and platform-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformICIMS is the iCIMS ATS platform
	PlatformICIMS Platform = "icims"
	// PlatformTaleo is the Oracle Taleo ATS platform
	PlatformTaleo Platform = "taleo"
	// PlatformSmartRecruiters is the SmartRecruiters ATS platform
	PlatformSmartRecruiters Platform = "smartrecruiters"
	// PlatformGeneric is an unrecognized platform
	PlatformGeneric Platform = "generic"
)

// embedParamRule maps a vendor-specific query parameter to a platform.
// Embed parameters identify a vendor even on arbitrary company domains
// (e.g. current.com/careers?gh_jid=12345 is a Greenhouse embed), so they
// take priority over hostname matching.
type embedParamRule struct {
	param    string
	platform Platform
}

// hostPatternRule maps hostname substrings to a platform.
type hostPatternRule struct {
	patterns []string
	platform Platform
}

// Detection rules are evaluated in order, first match wins. New vendors are
// added as entries, not as new branches.
var (
	embedParamRules = []embedParamRule{
		{param: "gh_jid", platform: PlatformGreenhouse},
		{param: "gh_src", platform: PlatformGreenhouse},
		{param: "lever-source", platform: PlatformLever},
	}

	hostPatternRules = []hostPatternRule{
		{patterns: []string{"greenhouse.io", "grnh.se"}, platform: PlatformGreenhouse},
		{patterns: []string{"lever.co"}, platform: PlatformLever},
		{patterns: []string{"myworkdayjobs.com", "workday.com", "workdayjobs"}, platform: PlatformWorkday},
		{patterns: []string{"icims.com"}, platform: PlatformICIMS},
		{patterns: []string{"taleo.net", "taleo.com"}, platform: PlatformTaleo},
		{patterns: []string{"smartrecruiters.com"}, platform: PlatformSmartRecruiters},
	}
)

// DetectPlatform identifies the job board platform from a URL.
// It is a pure function: no network access, deterministic for a given URL.
// Detection order:
//  1. Vendor embed query parameters (catches third-party embeds on any domain)
//  2. Hostname substring patterns, in fixed vendor order
//  3. PlatformGeneric
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformGeneric
	}

	query := parsed.Query()
	for _, rule := range embedParamRules {
		if query.Has(rule.param) {
			return rule.platform
		}
	}

	host := strings.ToLower(parsed.Hostname())
	for _, rule := range hostPatternRules {
		for _, pattern := range rule.patterns {
			if strings.Contains(host, pattern) {
				return rule.platform
			}
		}
	}

	return PlatformGeneric
}

// PlatformContentSelector returns the primary content container selector for
// a platform, or "" when the platform has no known selector.
func PlatformContentSelector(platform Platform) string {
	switch platform {
	case PlatformGreenhouse:
		return "#content"
	case PlatformLever:
		return ".posting-page"
	case PlatformWorkday:
		return `div[data-automation-id="jobPostingDescription"]`
	case PlatformICIMS:
		return ".iCIMS_JobContent"
	case PlatformTaleo:
		return ".requisitionDescriptionText"
	case PlatformSmartRecruiters:
		return ".job-sections"
	default:
		return ""
	}
}

// PlatformContentSelectors returns content selectors to try for a platform,
// most specific first.
func PlatformContentSelectors(platform Platform) []string {
	var selectors []string
	if primary := PlatformContentSelector(platform); primary != "" {
		selectors = append(selectors, primary)
	}
	switch platform {
	case PlatformGreenhouse:
		selectors = append(selectors, ".job__description.body", ".job__description")
	case PlatformLever:
		selectors = append(selectors, ".posting-description", ".section-wrapper.page-full-width")
	case PlatformWorkday:
		selectors = append(selectors, "[data-automation-id='jobDescription']", ".gwt-HTML")
	}
	return append(selectors, JobPostingSelectors()...)
}

// PlatformUsesIframeEmbed reports whether postings for this platform are
// commonly embedded on company pages inside a third-party iframe, meaning the
// rendered path must look inside child frames before the main document.
func PlatformUsesIframeEmbed(platform Platform) bool {
	return platform == PlatformGreenhouse
}

// IframeURLPatterns returns URL substring patterns for locating an embedded
// posting iframe, tried in order. The list starts with vendor-specific
// patterns and ends with generic job-board patterns.
func IframeURLPatterns(platform Platform) []string {
	var patterns []string
	if platform == PlatformGreenhouse {
		patterns = append(patterns, "greenhouse", "grnh")
	}
	return append(patterns, "boards.", "jobs.")
}

// JobPostingSelectors returns generic selectors for job board pages.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-details",
		"#job-description",
		"#job-details",
		".job-content",
		"#job-content",
		".posting-content",
		"[data-testid='job-description']",
	}
}
