package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jobHTML builds a page with typical chrome around a job description body.
func jobHTML(body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><script>var analytics = {};</script><style>.x{color:red}</style></head>
<body>
<nav>Home | Jobs | About</nav>
<div class="cookie-banner">We use cookies to improve your experience.</div>
<main>%s</main>
<div class="social-share">Share on LinkedIn</div>
<footer>Copyright 2026 Acme Corp</footer>
</body>
</html>`, body)
}

func TestCleanHTML_RemovesChrome(t *testing.T) {
	description := "<h1>Senior Engineer</h1><p>" + strings.Repeat("Build reliable systems. ", 15) + "</p>"
	text, err := CleanHTML(jobHTML(description))
	require.NoError(t, err)

	assert.Contains(t, text, "Senior Engineer")
	assert.Contains(t, text, "Build reliable systems.")

	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "We use cookies")
	assert.NotContains(t, text, "Share on LinkedIn")
	assert.NotContains(t, text, "Copyright 2026")
	assert.NotContains(t, text, "var analytics")
}

func TestCleanHTML_BoilerplateAttrMatching(t *testing.T) {
	tests := []struct {
		name    string
		attr    string
		removed bool
	}{
		{"exact token", "nav", true},
		{"hyphenated token", "cookie-consent", true},
		{"underscore token", "social_links", true},
		{"token inside words stays", "navigate-content", false},
		{"unrelated class stays", "job-description", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marker := "MARKER-" + tt.attr
			html := fmt.Sprintf(`<html><body><main><p>%s</p><div class=%q>%s</div></main></body></html>`,
				strings.Repeat("Job description content here. ", 10), tt.attr, marker)

			text, err := CleanHTML(html)
			require.NoError(t, err)
			if tt.removed {
				assert.NotContains(t, text, marker)
			} else {
				assert.Contains(t, text, marker)
			}
		})
	}
}

func TestCleanHTML_PrefersSemanticContainer(t *testing.T) {
	html := `<html><body>
<div class="wrapper">` + strings.Repeat("Wrapper filler text. ", 30) + `</div>
<main>` + strings.Repeat("The actual posting content lives here. ", 10) + `</main>
</body></html>`

	text, err := CleanHTML(html)
	require.NoError(t, err)
	assert.Contains(t, text, "The actual posting content")
	assert.NotContains(t, text, "Wrapper filler")
}

func TestCleanHTML_FallsBackToBodyWhenContainersTooShort(t *testing.T) {
	html := `<html><body>
<main>short</main>
<div>` + strings.Repeat("Body level description text. ", 20) + `</div>
</body></html>`

	text, err := CleanHTML(html)
	require.NoError(t, err)
	assert.Contains(t, text, "Body level description text.")
}

func TestCleanHTML_BlockBoundariesBecomeLines(t *testing.T) {
	html := `<html><body><main>
<h2>Requirements</h2>
<ul><li>Go</li><li>SQL</li></ul>
<p>` + strings.Repeat("More details on the position. ", 10) + `</p>
</main></body></html>`

	text, err := CleanHTML(html)
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Contains(t, lines, "Requirements")
	assert.Contains(t, lines, "Go")
	assert.Contains(t, lines, "SQL")
	// List items never run together.
	assert.NotContains(t, text, "GoSQL")
}

func TestCleanHTML_CommentsStripped(t *testing.T) {
	html := `<html><body><main><!-- hidden note --><p>` +
		strings.Repeat("Visible posting text. ", 15) + `</p></main></body></html>`

	text, err := CleanHTML(html)
	require.NoError(t, err)
	assert.NotContains(t, text, "hidden note")
	assert.Contains(t, text, "Visible posting text.")
}

func TestCleanHTML_EmptyInput(t *testing.T) {
	text, err := CleanHTML("")
	require.NoError(t, err)
	assert.Empty(t, text)
}
