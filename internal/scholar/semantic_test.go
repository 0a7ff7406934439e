// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func newSemanticBackend(serverURL string) *SemanticScholarBackend {
	return &SemanticScholarBackend{
		Client:    &http.Client{Timeout: 5 * time.Second},
		BaseURL:   serverURL,
		UserAgent: "test/0.1",
	}
}

func TestSemanticSearchNormalizesPapers(t *testing.T) {
	var gotFields, gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFields = r.URL.Query().Get("fields")
		gotLimit = r.URL.Query().Get("limit")
		fmt.Fprint(w, `{
			"total": 3,
			"data": [
				{
					"paperId": "p1",
					"title": "Open Access Paper",
					"abstract": "First abstract.",
					"year": 2022,
					"authors": [{"authorId": "a1", "name": "Alice"}],
					"openAccessPdf": {"url": "https://host.example/p1.pdf", "status": "GOLD"}
				},
				{
					"paperId": "p2",
					"title": "ArXiv Fallback Paper",
					"year": 2021,
					"authors": [{"authorId": "a2", "name": "Bob"}],
					"externalIds": {"ArXiv": "2301.07041"}
				},
				{
					"paperId": "p3",
					"title": "No PDF Paper",
					"authors": []
				}
			]
		}`)
	}))
	defer server.Close()

	records, err := newSemanticBackend(server.URL).Search(context.Background(), "agents", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotFields != semanticFields {
		t.Errorf("fields = %q, want %q", gotFields, semanticFields)
	}
	if gotLimit != "3" {
		t.Errorf("limit = %q, want \"3\"", gotLimit)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	if records[0].PDFURL != "https://host.example/p1.pdf" {
		t.Errorf("records[0].PDFURL = %q, want explicit open-access link", records[0].PDFURL)
	}
	if records[1].PDFURL != "https://arxiv.org/pdf/2301.07041" {
		t.Errorf("records[1].PDFURL = %q, want arXiv-derived link", records[1].PDFURL)
	}
	if records[2].PDFURL != "" {
		t.Errorf("records[2].PDFURL = %q, want absent", records[2].PDFURL)
	}
	if records[0].Year != "2022" {
		t.Errorf("records[0].Year = %q, want \"2022\"", records[0].Year)
	}
	for i, r := range records {
		if r.Source != types.ProviderSemanticScholar {
			t.Errorf("records[%d].Source = %q", i, r.Source)
		}
	}
}

func TestSemanticSearchRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	// The rate-limit translation is limit-independent: always exactly one
	// error element.
	for _, limit := range []int{1, 5, 50} {
		records, err := newSemanticBackend(server.URL).Search(context.Background(), "q", limit)
		if err != nil {
			t.Fatalf("Search(limit=%d) error = %v, want rate-limit record", limit, err)
		}
		if len(records) != 1 {
			t.Fatalf("Search(limit=%d) returned %d records, want 1", limit, len(records))
		}
		if records[0].Err != rateLimitMessage {
			t.Errorf("Err = %q, want %q", records[0].Err, rateLimitMessage)
		}
	}
}

func TestSemanticSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newSemanticBackend(server.URL).Search(context.Background(), "q", 1)
	if err == nil || !strings.Contains(err.Error(), "HTTP 403") {
		t.Errorf("Search() error = %v, want HTTP 403 error", err)
	}
}

func TestSemanticSearchSendsAPIKey(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		fmt.Fprint(w, `{"data": []}`)
	}))
	defer server.Close()

	b := newSemanticBackend(server.URL)
	b.APIKey = "sekrit"
	records, err := b.Search(context.Background(), "q", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotKey != "sekrit" {
		t.Errorf("x-api-key = %q, want \"sekrit\"", gotKey)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0 (empty result set is not an error)", len(records))
	}
}
