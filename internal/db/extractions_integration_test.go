//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// getTestDB connects to the database named by TEST_DATABASE_URL, skipping the
// test when the variable is unset.
func getTestDB(t *testing.T) *DB {
	t.Helper()
	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	db, err := Connect(context.Background(), databaseURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	return db
}

func TestIntegration_Extraction_SaveAndGet(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	url := "https://boards.greenhouse.io/testcorp/jobs/" + uuid.New().String()
	record := &Extraction{
		URL:         url,
		ResolvedURL: url,
		Platform:    "greenhouse",
		Source:      "static",
		Text:        "Senior Software Engineer at Test Corp. Responsibilities include testing.",
		SchemaJSON:  []byte(`{"title": "Senior Software Engineer"}`),
	}

	id, err := db.SaveExtraction(ctx, record)
	if err != nil {
		t.Fatalf("SaveExtraction failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("SaveExtraction returned nil ID")
	}

	t.Run("get by id", func(t *testing.T) {
		got, err := db.GetExtractionByID(ctx, id)
		if err != nil {
			t.Fatalf("GetExtractionByID failed: %v", err)
		}
		if got == nil {
			t.Fatal("expected a record, got nil")
		}
		if got.URL != url || got.Source != "static" {
			t.Errorf("got URL=%q Source=%q", got.URL, got.Source)
		}
		if got.CreatedAt.IsZero() {
			t.Error("CreatedAt should be set by the database")
		}
	})

	t.Run("get latest by url", func(t *testing.T) {
		got, err := db.GetLatestExtractionByURL(ctx, url)
		if err != nil {
			t.Fatalf("GetLatestExtractionByURL failed: %v", err)
		}
		if got == nil || got.ID != id {
			t.Fatalf("expected record %s, got %+v", id, got)
		}
	})

	t.Run("miss returns nil", func(t *testing.T) {
		got, err := db.GetExtractionByID(ctx, uuid.New())
		if err != nil {
			t.Fatalf("GetExtractionByID failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil for unknown ID, got %+v", got)
		}
	})
}

func TestIntegration_PageCache_RoundTrip(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	url := "https://example.com/jobs/" + uuid.New().String()
	html := "<html><body>cached posting</body></html>"

	if err := db.SaveCachedPage(ctx, url, html, 200, url, time.Hour); err != nil {
		t.Fatalf("SaveCachedPage failed: %v", err)
	}

	page, err := db.GetCachedPage(ctx, url)
	if err != nil {
		t.Fatalf("GetCachedPage failed: %v", err)
	}
	if page == nil || page.HTML != html || page.StatusCode != 200 {
		t.Fatalf("unexpected cache entry: %+v", page)
	}

	t.Run("upsert replaces", func(t *testing.T) {
		if err := db.SaveCachedPage(ctx, url, "<html>v2</html>", 200, url, time.Hour); err != nil {
			t.Fatalf("SaveCachedPage upsert failed: %v", err)
		}
		page, err := db.GetCachedPage(ctx, url)
		if err != nil {
			t.Fatalf("GetCachedPage failed: %v", err)
		}
		if page == nil || page.HTML != "<html>v2</html>" {
			t.Fatalf("upsert did not replace: %+v", page)
		}
	})

	t.Run("unknown url misses", func(t *testing.T) {
		page, err := db.GetCachedPage(ctx, url+"-never-stored")
		if err != nil {
			t.Fatalf("GetCachedPage failed: %v", err)
		}
		if page != nil {
			t.Errorf("unknown URL should miss, got %+v", page)
		}
	})
}
