// Package fetch - browser.go provides headless browser rendering for pages
// that only materialize content after script execution.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/jd-extractor/internal/extract"
)

const (
	// BrowserNavTimeout bounds page navigation.
	BrowserNavTimeout = 30 * time.Second
	// containerWaitTimeout bounds the wait for each semantic container candidate.
	containerWaitTimeout = 15 * time.Second
	// candidateTimeout bounds each individual selector extraction.
	candidateTimeout = 3 * time.Second
	// hydrationDelay is applied unconditionally after the DOM settles so
	// client-side frameworks can finish populating content.
	hydrationDelay = 2 * time.Second
	// maxExtractionAttempts caps the extraction retry loop.
	maxExtractionAttempts = 3
	// retryDelay separates extraction attempts, giving iframes time to load.
	retryDelay = 1 * time.Second
	// RenderedContentThreshold is the length at which extraction stops early.
	RenderedContentThreshold = extract.MinContentLength
	// RenderedMinLength is the hard floor below which the rendered path
	// reports failure instead of returning near-empty text.
	RenderedMinLength = 200
	// frameTextMinLength filters out chrome-only child frames during the
	// all-frames fallback.
	frameTextMinLength = 100
)

// semanticContainers are the readiness and extraction candidates, most
// specific first. Network-idle is deliberately not used as a readiness
// signal: script-hydrated pages keep mutating the DOM after the network
// settles.
var semanticContainers = []string{"main", "article", "body"}

// BrowserOptions configures the rendered fetch behavior.
type BrowserOptions struct {
	NavTimeout time.Duration
	UserAgent  string
	Verbose    bool
}

// DefaultBrowserOptions returns sensible defaults for rendering.
func DefaultBrowserOptions() *BrowserOptions {
	return &BrowserOptions{
		NavTimeout: BrowserNavTimeout,
		UserAgent:  DefaultUserAgent,
	}
}

// Rendered drives a headless Chrome session to extract posting text from a
// script-hydrated page. Exactly one of the returned text and error message is
// meaningfully populated. The browser session is closed on every exit path.
// Requires Chrome/Chromium on the system; its absence is reported as a
// diagnosable error message, not a crash.
func Rendered(ctx context.Context, urlStr string, platform Platform, opts *BrowserOptions) (string, string) {
	if opts == nil {
		opts = DefaultBrowserOptions()
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.WindowSize(1280, 720),
			chromedp.UserAgent(opts.UserAgent),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	navCtx, cancelNav := context.WithTimeout(browserCtx, opts.NavTimeout)
	defer cancelNav()

	if err := chromedp.Run(navCtx, chromedp.Navigate(urlStr)); err != nil {
		if isMissingBrowserError(err) {
			return "", "headless browser engine not installed: install Chrome or Chromium to use rendered mode"
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Sprintf("page load timed out (%s)", opts.NavTimeout)
		}
		return "", fmt.Sprintf("navigation error: %v", err)
	}

	// Content-aware waiting: take the first semantic container that appears.
	// Even if none shows up, extraction proceeds; content may live in an iframe.
	for _, container := range semanticContainers {
		waitCtx, cancel := context.WithTimeout(browserCtx, containerWaitTimeout)
		err := chromedp.Run(waitCtx, chromedp.WaitReady(container, chromedp.ByQuery))
		cancel()
		if err == nil {
			if opts.Verbose {
				log.Printf("[BROWSER] container ready: %s", container)
			}
			break
		}
	}

	_ = chromedp.Run(browserCtx, chromedp.Sleep(hydrationDelay))

	best := ""
	for attempt := 0; attempt < maxExtractionAttempts; attempt++ {
		best = runExtractionAttempt(browserCtx, platform, best, opts.Verbose)
		if trimmedLen(best) >= RenderedContentThreshold {
			break
		}
		if attempt < maxExtractionAttempts-1 {
			_ = chromedp.Run(browserCtx, chromedp.Sleep(retryDelay))
		}
	}

	cleaned := extract.FinalizeText(best)
	if len(cleaned) < RenderedMinLength {
		return "", fmt.Sprintf(
			"page content did not stabilize: only %d characters extracted after %d attempts",
			len(cleaned), maxExtractionAttempts)
	}

	return cleaned, ""
}

// runExtractionAttempt tries each extraction strategy in order and returns
// the longest candidate text seen so far.
func runExtractionAttempt(browserCtx context.Context, platform Platform, best string, verbose bool) string {
	// Embedded postings must be checked before main-page selectors: the main
	// document of an embed host page is mostly chrome.
	if PlatformUsesIframeEmbed(platform) {
		if text := extractFromEmbedFrame(browserCtx, platform); trimmedLen(text) > trimmedLen(best) {
			best = text
			if verbose {
				log.Printf("[BROWSER] iframe extraction: %d chars", trimmedLen(best))
			}
		}
		if trimmedLen(best) >= RenderedContentThreshold {
			return best
		}
	}

	if selector := PlatformContentSelector(platform); selector != "" {
		if text := containerText(browserCtx, selector); trimmedLen(text) > trimmedLen(best) {
			best = text
		}
		if trimmedLen(best) >= RenderedContentThreshold {
			return best
		}
	}

	for _, container := range semanticContainers {
		if text := containerText(browserCtx, container); trimmedLen(text) > trimmedLen(best) {
			best = text
		}
		if trimmedLen(best) >= RenderedContentThreshold {
			return best
		}
	}

	if trimmedLen(best) < RenderedMinLength {
		if text := allFramesText(browserCtx); trimmedLen(text) > trimmedLen(best) {
			best = text
		}
	}

	return best
}

// containerText extracts visible text from the first element matching the
// selector, or "" if the element is absent or extraction times out.
func containerText(browserCtx context.Context, selector string) string {
	ctx, cancel := context.WithTimeout(browserCtx, candidateTimeout)
	defer cancel()

	var text string
	if err := chromedp.Run(ctx, chromedp.Text(selector, &text, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
		return ""
	}
	return text
}

// extractFromEmbedFrame locates the first child frame whose URL matches the
// platform's embed patterns, enters it, and extracts from its primary content
// container, falling back to the frame's body.
func extractFromEmbedFrame(browserCtx context.Context, platform Platform) string {
	targets, err := chromedp.Targets(browserCtx)
	if err != nil {
		return ""
	}

	patterns := IframeURLPatterns(platform)
	for _, t := range targets {
		if t.Type != "iframe" || !matchesAny(strings.ToLower(t.URL), patterns) {
			continue
		}

		frameCtx, cancel := chromedp.NewContext(browserCtx, chromedp.WithTargetID(t.TargetID))

		text := containerText(frameCtx, PlatformContentSelector(platform))
		if trimmedLen(text) < RenderedMinLength {
			text = containerText(frameCtx, "body")
		}
		cancel()

		if trimmedLen(text) >= RenderedMinLength {
			return text
		}
	}

	return ""
}

// allFramesText concatenates visible body text from the main document and
// every child frame. Absolute last resort.
func allFramesText(browserCtx context.Context) string {
	var parts []string
	if text := containerText(browserCtx, "body"); strings.TrimSpace(text) != "" {
		parts = append(parts, text)
	}

	targets, err := chromedp.Targets(browserCtx)
	if err == nil {
		for _, t := range targets {
			if t.Type != "iframe" {
				continue
			}
			frameCtx, cancel := chromedp.NewContext(browserCtx, chromedp.WithTargetID(t.TargetID))
			text := containerText(frameCtx, "body")
			cancel()
			if trimmedLen(text) > frameTextMinLength {
				parts = append(parts, text)
			}
		}
	}

	return strings.Join(parts, "\n\n")
}

// isMissingBrowserError reports whether the failure is an absent Chrome
// installation rather than a page-level problem.
func isMissingBrowserError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "executable file not found") ||
		strings.Contains(msg, "exec:") && strings.Contains(msg, "chrome")
}

func matchesAny(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(s, pattern) {
			return true
		}
	}
	return false
}

func trimmedLen(s string) int {
	return len(strings.TrimSpace(s))
}
