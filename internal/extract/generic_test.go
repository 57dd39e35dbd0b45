package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenericText_ExtractsArticleBody(t *testing.T) {
	paragraphs := make([]string, 8)
	for i := range paragraphs {
		paragraphs[i] = "<p>" + strings.Repeat("We are hiring an engineer to design and run our data platform. ", 3) + "</p>"
	}
	html := fmt.Sprintf(`<html><head><title>Engineer at Acme</title></head><body>
<nav><a href="/">Home</a><a href="/jobs">Jobs</a></nav>
<article>%s</article>
<footer>Footer links</footer>
</body></html>`, strings.Join(paragraphs, "\n"))

	text := GenericText(html, "https://example.com/jobs/123")
	assert.Contains(t, text, "We are hiring an engineer")
}

func TestGenericText_FailureReturnsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		html   string
		urlStr string
	}{
		{"empty document", "", "https://example.com"},
		{"no readable content", "<html><body><nav>x</nav></body></html>", "https://example.com"},
		{"empty source URL", "<html><body></body></html>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must never panic or error; empty output signals failure.
			text := GenericText(tt.html, tt.urlStr)
			assert.Empty(t, strings.TrimSpace(text))
		})
	}
}
