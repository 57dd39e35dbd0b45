package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/jd-extractor/internal/extract"
	"github.com/jonathan/jd-extractor/internal/fetch"
)

var (
	// ErrEmptyURL is returned when the requested URL is blank.
	ErrEmptyURL = errors.New("URL cannot be empty")
	// ErrInvalidMode is returned when the mode is outside the enumerated set.
	ErrInvalidMode = errors.New("invalid mode")
)

// Orchestrator runs the extraction cascade. It holds only read-only
// configuration; concurrent runs are independent and share no mutable state.
type Orchestrator struct {
	fetchOpts   *fetch.Options
	browserOpts *fetch.BrowserOptions
	verbose     bool

	// Strategy functions, overridable in tests.
	staticFetch func(ctx context.Context, urlStr string) *fetch.Outcome
	rendered    func(ctx context.Context, urlStr string, platform fetch.Platform) (string, string)
}

// Config configures an Orchestrator. Zero values use defaults.
type Config struct {
	FetchOptions   *fetch.Options
	BrowserOptions *fetch.BrowserOptions
	Verbose        bool

	// StaticFetch overrides the static fetch strategy, e.g. to route through
	// a cache-backed fetcher.
	StaticFetch func(ctx context.Context, urlStr string) *fetch.Outcome
}

// New creates an Orchestrator.
func New(cfg *Config) *Orchestrator {
	if cfg == nil {
		cfg = &Config{}
	}
	fetchOpts := cfg.FetchOptions
	if fetchOpts == nil {
		fetchOpts = fetch.DefaultOptions()
	}
	browserOpts := cfg.BrowserOptions
	if browserOpts == nil {
		browserOpts = fetch.DefaultBrowserOptions()
	}
	browserOpts.Verbose = browserOpts.Verbose || cfg.Verbose

	o := &Orchestrator{
		fetchOpts:   fetchOpts,
		browserOpts: browserOpts,
		verbose:     cfg.Verbose,
	}
	o.staticFetch = cfg.StaticFetch
	if o.staticFetch == nil {
		o.staticFetch = func(ctx context.Context, urlStr string) *fetch.Outcome {
			return fetch.Static(ctx, urlStr, o.fetchOpts)
		}
	}
	o.rendered = func(ctx context.Context, urlStr string, platform fetch.Platform) (string, string) {
		return fetch.Rendered(ctx, urlStr, platform, o.browserOpts)
	}
	return o
}

// Extract resolves job posting text from a URL. It returns an error only for
// caller-contract violations (blank URL, unknown mode); every network or
// content failure is reported inside the Result.
func (o *Orchestrator) Extract(ctx context.Context, urlStr string, modeStr string) (*Result, error) {
	urlStr = strings.TrimSpace(urlStr)
	if urlStr == "" {
		return nil, ErrEmptyURL
	}
	mode, err := ParseMode(modeStr)
	if err != nil {
		return nil, err
	}

	platform := fetch.DetectPlatform(urlStr)
	resolvedURL, rewritten := fetch.CanonicalURL(urlStr, platform)
	if o.verbose {
		log.Printf("[VERBOSE] URL: %s", urlStr)
		log.Printf("[VERBOSE] Detected platform: %s", platform)
		if rewritten {
			log.Printf("[VERBOSE] Canonical URL: %s", resolvedURL)
		}
	}

	result := &Result{
		URL:         urlStr,
		ResolvedURL: resolvedURL,
		Platform:    platform,
		Source:      SourceNone,
	}

	switch mode {
	case ModeStatic:
		o.runStatic(ctx, result, rewritten)
	case ModeRendered:
		o.runRendered(ctx, result)
	default:
		o.runAuto(ctx, result, rewritten)
	}

	return result, nil
}

// staticAttempt holds the intermediate candidates of one static sequence.
type staticAttempt struct {
	fetchErr string // non-empty when the fetch itself failed
	schema   *extract.JobSchema
	cleaned  string // boilerplate-cleaned text
	generic  string // readability fallback text
}

// bestCandidate returns the longest non-empty candidate and its source.
func (a *staticAttempt) bestCandidate() (string, Source) {
	if len(a.generic) > len(a.cleaned) {
		return a.generic, SourceFallback
	}
	if a.cleaned != "" {
		return a.cleaned, SourceStatic
	}
	return "", SourceNone
}

// runStaticSequence performs the static fetch and the three static extraction
// stages: structured data, boilerplate cleaning, readability fallback.
// When the canonical URL was a rewrite and its fetch failed, the original URL
// is retried once.
func (o *Orchestrator) runStaticSequence(ctx context.Context, result *Result, rewritten bool) *staticAttempt {
	attempt := &staticAttempt{}

	outcome := o.staticFetch(ctx, result.ResolvedURL)
	if !outcome.Succeeded && rewritten {
		if o.verbose {
			log.Printf("[VERBOSE] Canonical fetch failed (%s), retrying original URL", outcome.Err)
		}
		retry := o.staticFetch(ctx, result.URL)
		if retry.Succeeded {
			outcome = retry
			result.ResolvedURL = result.URL
		}
	}

	if !outcome.Succeeded {
		attempt.fetchErr = outcome.Err
		return attempt
	}
	if o.verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes (status %d)", len(outcome.HTML), outcome.StatusCode)
	}

	attempt.schema = extract.ParseJobSchema(outcome.HTML)
	if attempt.schema != nil {
		return attempt
	}

	if cleaned, err := extract.CleanHTML(outcome.HTML); err == nil {
		attempt.cleaned = cleaned
	}
	if extract.IsValid(attempt.cleaned) {
		return attempt
	}

	attempt.generic = extract.GenericText(outcome.HTML, outcome.FinalURL)
	return attempt
}

// runStatic implements mode "static": the static sequence only, returning the
// best available result.
func (o *Orchestrator) runStatic(ctx context.Context, result *Result, rewritten bool) {
	attempt := o.runStaticSequence(ctx, result, rewritten)

	if attempt.fetchErr != "" {
		result.Error = attempt.fetchErr
		return
	}

	if attempt.schema != nil {
		result.Source = SourceStructured
		result.Schema = attempt.schema
		result.Text = attempt.schema.Text()
		return
	}

	if extract.IsValid(attempt.cleaned) {
		result.Source = SourceStatic
		result.Text = attempt.cleaned
		return
	}

	if extract.IsValidStrict(attempt.generic) {
		result.Source = SourceFallback
		result.Text = attempt.generic
		return
	}

	text, source := attempt.bestCandidate()
	if text == "" {
		result.Error = "no content extracted from static HTML"
		return
	}
	result.Source = source
	result.Text = text
	result.Error = "content may be incomplete (short or missing job description keywords); try rendered mode"
}

// runRendered implements mode "rendered": the headless browser path only.
func (o *Orchestrator) runRendered(ctx context.Context, result *Result) {
	text, errMsg := o.rendered(ctx, result.ResolvedURL, result.Platform)
	if text == "" {
		result.Error = errMsg
		return
	}
	result.Source = SourceRendered
	result.Text = text
}

// runAuto implements mode "auto": the static sequence first, escalating to
// the browser only when no static stage passes validation. The pipeline never
// returns an outright failure if any stage produced non-empty text.
func (o *Orchestrator) runAuto(ctx context.Context, result *Result, rewritten bool) {
	attempt := o.runStaticSequence(ctx, result, rewritten)

	if attempt.schema != nil {
		result.Source = SourceStructured
		result.Schema = attempt.schema
		result.Text = attempt.schema.Text()
		return
	}
	if extract.IsValid(attempt.cleaned) {
		result.Source = SourceStatic
		result.Text = attempt.cleaned
		return
	}
	if extract.IsValidStrict(attempt.generic) {
		result.Source = SourceFallback
		result.Text = attempt.generic
		return
	}

	staticErr := attempt.fetchErr
	if staticErr == "" {
		staticErr = "content too short or missing job description keywords"
	}
	if o.verbose {
		log.Printf("[VERBOSE] Static path insufficient (%s), falling back to rendering", staticErr)
	}

	renderedText, renderedErr := o.rendered(ctx, result.ResolvedURL, result.Platform)
	if renderedText != "" {
		result.Source = SourceRendered
		result.Text = renderedText
		return
	}

	// Both paths failed validation: return the longest non-empty candidate
	// with an error summarizing both failures.
	text, source := attempt.bestCandidate()
	if text != "" {
		result.Source = source
		result.Text = text
		result.Error = fmt.Sprintf("content may be incomplete. Static: %s. Rendered: %s", staticErr, renderedErr)
		return
	}

	result.Error = fmt.Sprintf("failed to extract content. Static: %s. Rendered: %s", staticErr, renderedErr)
}
