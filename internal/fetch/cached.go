// Package fetch - cached.go wraps static fetching with database-backed caching.
package fetch

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/jd-extractor/internal/db"
)

// CachedFetcher wraps static URL fetching with a Postgres-backed page cache,
// so repeated extractions of the same posting skip the network.
type CachedFetcher struct {
	db        *db.DB
	options   *Options
	cacheTTL  time.Duration
	skipCache bool
	verbose   bool
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
	Verbose   bool
}

// NewCachedFetcher creates a new cached fetcher.
func NewCachedFetcher(database *db.DB, config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = &CachedFetcherConfig{}
	}
	opts := config.Options
	if opts == nil {
		opts = DefaultOptions()
	}
	ttl := config.CacheTTL
	if ttl == 0 {
		ttl = db.DefaultPageCacheTTL
	}
	return &CachedFetcher{
		db:        database,
		options:   opts,
		cacheTTL:  ttl,
		skipCache: config.SkipCache,
		verbose:   config.Verbose,
	}
}

// Static fetches a URL, consulting the page cache first. Only successful
// fetches are cached; failures always hit the network on the next attempt.
// Cache storage errors are logged and ignored: caching is an optimization,
// never a reason to fail a fetch.
func (f *CachedFetcher) Static(ctx context.Context, urlStr string) *Outcome {
	if !f.skipCache {
		if page, err := f.db.GetCachedPage(ctx, urlStr); err == nil && page != nil {
			if f.verbose {
				log.Printf("[CACHE] hit for %s (fetched %s)", urlStr, page.FetchedAt.Format(time.RFC3339))
			}
			return &Outcome{
				Succeeded:  true,
				HTML:       page.HTML,
				StatusCode: page.StatusCode,
				FinalURL:   page.FinalURL,
			}
		}
	}

	outcome := Static(ctx, urlStr, f.options)
	if outcome.Succeeded {
		if err := f.db.SaveCachedPage(ctx, urlStr, outcome.HTML, outcome.StatusCode, outcome.FinalURL, f.cacheTTL); err != nil {
			log.Printf("[CACHE] failed to store %s: %v", urlStr, err)
		}
	}
	return outcome
}
