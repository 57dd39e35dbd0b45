package db

import (
	"time"

	"github.com/google/uuid"
)

// Extraction is a persisted pipeline result.
type Extraction struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	ResolvedURL string    `json:"resolved_url"`
	Platform    string    `json:"ats_type"`
	Source      string    `json:"source"`
	Text        string    `json:"raw_text"`
	SchemaJSON  []byte    `json:"schema_data,omitempty"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CachedPage is a raw static-fetch result held in the page cache.
type CachedPage struct {
	ID         uuid.UUID `json:"id"`
	URL        string    `json:"url"`
	HTML       string    `json:"html"`
	StatusCode int       `json:"status_code"`
	FinalURL   string    `json:"final_url"`
	FetchedAt  time.Time `json:"fetched_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}
