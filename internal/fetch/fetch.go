// Package fetch provides URL fetching for job posting pages: platform
// detection, URL canonicalization, a static HTTP fetcher, and a headless
// browser fetcher for script-hydrated pages.
package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// DefaultTimeout is the HTTP request timeout for static fetches.
const DefaultTimeout = 20 * time.Second

// DefaultUserAgent mimics a real browser to reduce bot-blocking by ATS hosts.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxRedirects caps redirect chains before the fetch is classified as
// ErrKindTooManyRedirects.
const maxRedirects = 10

// ErrorKind classifies a fetch failure.
type ErrorKind string

// Fetch failure classifications.
const (
	ErrKindTimeout          ErrorKind = "timeout"
	ErrKindTLS              ErrorKind = "tls"
	ErrKindConnection       ErrorKind = "connection"
	ErrKindTooManyRedirects ErrorKind = "too_many_redirects"
	ErrKindHTTPStatus       ErrorKind = "http_status"
	ErrKindOther            ErrorKind = "other"
)

// Outcome holds the result of one raw fetch attempt. It is consumed within a
// single pipeline run and never persisted.
type Outcome struct {
	Succeeded  bool
	HTML       string
	StatusCode int
	FinalURL   string
	ErrKind    ErrorKind
	Err        string
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the static fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.5",
		},
	}
}

// Static performs a single HTTP GET with browser-like headers and returns an
// Outcome describing either the fetched HTML or a classified failure.
// Redirects are followed up to maxRedirects. Mis-declared character encodings
// are corrected before returning text. Static never retries; retry and
// fallback policy belongs to the orchestrator.
func Static(ctx context.Context, urlStr string, opts *Options) *Outcome {
	if opts == nil {
		opts = DefaultOptions()
	}

	outcome := &Outcome{FinalURL: urlStr}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		outcome.ErrKind = ErrKindOther
		outcome.Err = "invalid URL"
		return outcome
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		outcome.ErrKind = ErrKindOther
		outcome.Err = fmt.Sprintf("failed to create request: %v", err)
		return outcome
	}

	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		outcome.ErrKind, outcome.Err = classifyTransportError(err)
		return outcome
	}
	defer func() { _ = resp.Body.Close() }()

	outcome.StatusCode = resp.StatusCode
	if resp.Request != nil && resp.Request.URL != nil {
		outcome.FinalURL = resp.Request.URL.String()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome.ErrKind = ErrKindHTTPStatus
		outcome.Err = fmt.Sprintf("HTTP status %d", resp.StatusCode)
		return outcome
	}

	// Decode with the declared (or sniffed) charset so pages that lie about
	// their encoding still come back as valid UTF-8.
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		reader = resp.Body
	}

	bodyBytes, err := io.ReadAll(reader)
	if err != nil {
		outcome.ErrKind = ErrKindOther
		outcome.Err = fmt.Sprintf("failed to read response body: %v", err)
		return outcome
	}

	outcome.Succeeded = true
	outcome.HTML = string(bodyBytes)
	return outcome
}

// classifyTransportError sorts a transport-level failure into the fetch error
// taxonomy: timeout, TLS, connection/DNS, redirect cap, or other.
func classifyTransportError(err error) (ErrorKind, string) {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrKindTimeout, "request timed out"
	}

	var certErr *tls.CertificateVerificationError
	var unknownAuthErr x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &unknownAuthErr) || errors.As(err, &hostnameErr) {
		return ErrKindTLS, fmt.Sprintf("TLS certificate error: %v", err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrKindConnection, fmt.Sprintf("could not resolve host: %v", dnsErr)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrKindConnection, fmt.Sprintf("could not connect: %v", opErr)
	}

	if strings.Contains(err.Error(), "stopped after") && strings.Contains(err.Error(), "redirects") {
		return ErrKindTooManyRedirects, fmt.Sprintf("too many redirects (limit %d)", maxRedirects)
	}

	return ErrKindOther, fmt.Sprintf("request failed: %v", err)
}
