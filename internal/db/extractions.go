package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefaultPageCacheTTL is how long cached static fetches stay fresh.
const DefaultPageCacheTTL = 7 * 24 * time.Hour

// SaveExtraction stores a pipeline result and returns its ID.
func (db *DB) SaveExtraction(ctx context.Context, e *Extraction) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO extractions (url, resolved_url, platform, source, raw_text, schema_data, error_message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		e.URL, e.ResolvedURL, e.Platform, e.Source, e.Text, e.SchemaJSON, e.Error,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save extraction: %w", err)
	}
	return id, nil
}

// GetExtractionByID retrieves a stored extraction, or nil when absent.
func (db *DB) GetExtractionByID(ctx context.Context, id uuid.UUID) (*Extraction, error) {
	var e Extraction
	err := db.pool.QueryRow(ctx,
		`SELECT id, url, resolved_url, platform, source, raw_text, schema_data, error_message, created_at
		 FROM extractions WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.URL, &e.ResolvedURL, &e.Platform, &e.Source, &e.Text, &e.SchemaJSON, &e.Error, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get extraction: %w", err)
	}
	return &e, nil
}

// GetLatestExtractionByURL retrieves the most recent extraction for a URL, or
// nil when the URL has never been extracted.
func (db *DB) GetLatestExtractionByURL(ctx context.Context, url string) (*Extraction, error) {
	var e Extraction
	err := db.pool.QueryRow(ctx,
		`SELECT id, url, resolved_url, platform, source, raw_text, schema_data, error_message, created_at
		 FROM extractions WHERE url = $1
		 ORDER BY created_at DESC LIMIT 1`,
		url,
	).Scan(&e.ID, &e.URL, &e.ResolvedURL, &e.Platform, &e.Source, &e.Text, &e.SchemaJSON, &e.Error, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get extraction: %w", err)
	}
	return &e, nil
}

// GetCachedPage returns a fresh cached page for a URL, or nil when the cache
// misses or the entry has expired.
func (db *DB) GetCachedPage(ctx context.Context, url string) (*CachedPage, error) {
	var p CachedPage
	err := db.pool.QueryRow(ctx,
		`SELECT id, url, html, status_code, final_url, fetched_at, expires_at
		 FROM page_cache WHERE url = $1 AND expires_at > NOW()`,
		url,
	).Scan(&p.ID, &p.URL, &p.HTML, &p.StatusCode, &p.FinalURL, &p.FetchedAt, &p.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached page: %w", err)
	}
	return &p, nil
}

// SaveCachedPage upserts a raw fetch into the page cache with the given TTL.
func (db *DB) SaveCachedPage(ctx context.Context, url, html string, statusCode int, finalURL string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultPageCacheTTL
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO page_cache (url, html, status_code, final_url, fetched_at, expires_at)
		 VALUES ($1, $2, $3, $4, NOW(), NOW() + $5)
		 ON CONFLICT (url) DO UPDATE
		 SET html = $2, status_code = $3, final_url = $4, fetched_at = NOW(), expires_at = NOW() + $5`,
		url, html, statusCode, finalURL, ttl,
	)
	if err != nil {
		return fmt.Errorf("failed to save cached page: %w", err)
	}
	return nil
}
