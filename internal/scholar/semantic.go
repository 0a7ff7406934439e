// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	neturl "net/url"
	"strconv"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// semanticFields is the fixed field list requested from the paper graph.
const semanticFields = "title,abstract,year,authors,openAccessPdf,externalIds"

// rateLimitMessage is the human-readable result for an HTTP 429. It is
// returned as a record, not an error: the caller sees exactly one
// rate-limit element regardless of the requested limit.
const rateLimitMessage = "Semantic Scholar Error: rate limited (HTTP 429) - slow down or configure an API key"

// SemanticScholarBackend queries the Semantic Scholar paper graph
// through the API proxy.
type SemanticScholarBackend struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
	APIKey    string
}

// Name returns the backend's provider label.
func (b *SemanticScholarBackend) Name() types.Provider { return types.ProviderSemanticScholar }

// Search issues the graph query and normalizes each paper into a Record.
func (b *SemanticScholarBackend) Search(ctx context.Context, query string, limit int) ([]types.Record, error) {
	params := neturl.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(limit)},
		"fields": {semanticFields},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.UserAgent)
	if b.APIKey != "" {
		req.Header.Set("x-api-key", b.APIKey)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return []types.Record{{
			Source: types.ProviderSemanticScholar,
			Err:    rateLimitMessage,
		}}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	records := make([]types.Record, 0, len(sr.Data))
	for _, paper := range sr.Data {
		records = append(records, normalizePaper(paper))
	}
	return records, nil
}

// normalizePaper reduces one graph paper to the uniform record shape.
func normalizePaper(paper semanticPaper) types.Record {
	r := types.Record{
		Source:   types.ProviderSemanticScholar,
		Title:    paper.Title,
		Abstract: collapseWhitespace(paper.Abstract),
		PDFURL:   semanticPDFURL(paper),
	}

	for _, a := range paper.Authors {
		if a.Name != "" {
			r.Authors = append(r.Authors, a.Name)
		}
	}

	if paper.Year > 0 {
		r.Year = strconv.Itoa(paper.Year)
	}

	return r
}

// semanticPDFURL picks the PDF link by preference: the explicit
// open-access URL, else the arXiv external ID reshaped into a canonical
// PDF URL, else absent.
func semanticPDFURL(paper semanticPaper) string {
	if paper.OpenAccessPDF != nil && paper.OpenAccessPDF.URL != "" {
		return paper.OpenAccessPDF.URL
	}
	if paper.ExternalIDs.ArXiv != "" {
		return "https://arxiv.org/pdf/" + paper.ExternalIDs.ArXiv
	}
	return ""
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID       string              `json:"paperId"`
	Title         string              `json:"title"`
	Abstract      string              `json:"abstract"`
	Year          int                 `json:"year"`
	Authors       []semanticAuthor    `json:"authors"`
	OpenAccessPDF *semanticOpenAccess `json:"openAccessPdf"`
	ExternalIDs   semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticOpenAccess struct {
	URL    string `json:"url"`
	Status string `json:"status"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}
