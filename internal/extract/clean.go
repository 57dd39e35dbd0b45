// Package extract - clean.go strips non-content HTML and serializes the
// remainder to plain text with line breaks at block boundaries.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// nonContentTags are removed wholesale: scripts, chrome, and interactive
// form controls never contain posting prose.
const nonContentTags = "script, style, noscript, template, nav, footer, header, aside, form, button, input, select, textarea, label, iframe, svg"

// boilerplateAttrPattern matches class/id/ARIA-role values that mark
// navigation, consent, social, related-postings, newsletter, legal, and
// pagination widgets.
var boilerplateAttrPattern = regexp.MustCompile(`(?i)(^|[\s_-])(nav|navbar|navigation|menu|cookie|consent|gdpr|social|share|sharing|related|newsletter|subscribe|signup|legal|privacy|disclaimer|pagination|pager|searchbox|search-box|breadcrumb|sidebar|advert|ads|banner)([\s_-]|$)`)

// contentContainerSelectors are tried in priority order: semantic regions
// first, then class hints, then the document body.
var contentContainerSelectors = []string{
	"main",
	"article",
	"[role='main']",
	"[class*='job']",
	"[class*='content']",
	"[class*='description']",
}

// containerMinLength is the minimum text length for a candidate container to
// be preferred over the document body.
const containerMinLength = 200

// blockTags introduce line breaks in the serialized text.
var blockTags = map[string]bool{
	"address": true, "article": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figure": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "hr": true, "li": true, "main": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

// CleanHTML strips boilerplate from raw HTML and returns the cleaned plain
// text of the most specific content container available.
func CleanHTML(htmlStr string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	doc.Find(nonContentTags).Remove()

	doc.Find("[class], [id], [role]").Each(func(_ int, s *goquery.Selection) {
		if isBoilerplateElement(s) {
			s.Remove()
		}
	})

	for _, node := range doc.Nodes {
		removeComments(node)
	}

	container := selectContentContainer(doc)
	text := blockText(container)

	return FinalizeText(text), nil
}

// isBoilerplateElement reports whether an element's class, id, or role marks
// it as page chrome rather than content.
func isBoilerplateElement(s *goquery.Selection) bool {
	for _, attr := range []string{"class", "id", "role"} {
		if value, ok := s.Attr(attr); ok && boilerplateAttrPattern.MatchString(value) {
			return true
		}
	}
	return false
}

// selectContentContainer picks the most specific content region available,
// falling back to the document body.
func selectContentContainer(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentContainerSelectors {
		candidate := doc.Find(selector).First()
		if candidate.Length() > 0 && len(strings.TrimSpace(candidate.Text())) >= containerMinLength {
			return candidate
		}
	}
	return doc.Find("body")
}

// blockText serializes a selection to text, inserting line breaks at
// block-level element boundaries so list items and paragraphs survive as
// separate lines.
func blockText(s *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range s.Nodes {
		writeNodeText(&sb, node)
	}
	return sb.String()
}

func writeNodeText(sb *strings.Builder, node *html.Node) {
	switch node.Type {
	case html.TextNode:
		sb.WriteString(node.Data)
	case html.ElementNode:
		block := blockTags[node.Data]
		if block {
			sb.WriteString("\n")
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			writeNodeText(sb, child)
		}
		if block {
			sb.WriteString("\n")
		}
	case html.DocumentNode:
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			writeNodeText(sb, child)
		}
	}
}

// removeComments drops HTML comment nodes from the tree.
func removeComments(node *html.Node) {
	child := node.FirstChild
	for child != nil {
		next := child.NextSibling
		if child.Type == html.CommentNode {
			node.RemoveChild(child)
		} else {
			removeComments(child)
		}
		child = next
	}
}
