// Package extract - generic.go wraps a readability-style extractor as the
// last static strategy before falling back to headless rendering.
package extract

import (
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// GenericText runs a readability-style extraction over raw HTML and returns
// the largest contiguous readable passage, or "" on any failure. The source
// URL is used only for relative-link disambiguation inside the extractor.
// Internal failures are absorbed, never propagated.
func GenericText(htmlStr string, sourceURL string) (result string) {
	defer func() {
		// The extractor is treated as a black box; a panic inside it is a
		// total failure, reported as empty output.
		if r := recover(); r != nil {
			result = ""
		}
	}()

	var pageURL *url.URL
	if sourceURL != "" {
		if parsed, err := url.Parse(sourceURL); err == nil {
			pageURL = parsed
		}
	}

	article, err := readability.FromReader(strings.NewReader(htmlStr), pageURL)
	if err != nil {
		return ""
	}

	return FinalizeText(article.TextContent)
}
