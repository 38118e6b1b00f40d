package firecrawl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["url"] != "https://payer.example/policy" {
			t.Errorf("unexpected url: %v", body["url"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]string{"markdown": "# Policy"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", zerolog.Nop())
	result, err := c.Scrape(context.Background(), "https://payer.example/policy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Markdown != "# Policy" {
		t.Errorf("unexpected markdown: %q", result.Markdown)
	}
}

func TestScrape_FailureSurfacesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "url is blocked",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", zerolog.Nop())
	_, err := c.Scrape(context.Background(), "https://blocked.example")
	if err == nil || !strings.Contains(err.Error(), "url is blocked") {
		t.Errorf("expected upstream error, got %v", err)
	}
}
