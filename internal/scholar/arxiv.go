// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"runtime"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// abstractDisplayLimit caps the abstract length in normalized records,
// in runes, with "..." appended when truncated.
const abstractDisplayLimit = 150

// parseSem bounds concurrent XML feed decodes so CPU-bound parsing of
// large feeds cannot starve other in-flight requests.
var parseSem = semaphore.NewWeighted(int64(runtime.NumCPU()))

// ArxivBackend queries the arXiv Atom feed through the API proxy.
type ArxivBackend struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
}

// Name returns the backend's provider label.
func (b *ArxivBackend) Name() types.Provider { return types.ProviderArxiv }

// Search issues the feed query and normalizes each entry into a Record.
func (b *ArxivBackend) Search(ctx context.Context, query string, limit int) ([]types.Record, error) {
	params := neturl.Values{
		"search_query": {"all:" + query},
		"start":        {"0"},
		"max_results":  {fmt.Sprintf("%d", limit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.UserAgent)

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading arXiv response: %w", err)
	}

	feed, err := decodeFeed(ctx, body)
	if err != nil {
		return nil, err
	}

	records := make([]types.Record, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		records = append(records, normalizeEntry(entry))
	}
	return records, nil
}

// decodeFeed unmarshals the Atom feed under the parse semaphore.
func decodeFeed(ctx context.Context, body []byte) (*arxivFeed, error) {
	if err := parseSem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for parser slot: %w", err)
	}
	defer parseSem.Release(1)

	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}
	return &feed, nil
}

// normalizeEntry reduces one feed entry to the uniform record shape.
func normalizeEntry(entry arxivEntry) types.Record {
	r := types.Record{
		Source:   types.ProviderArxiv,
		Title:    strings.TrimSpace(strings.ReplaceAll(entry.Title, "\n", "")),
		Abstract: collapseWhitespace(entry.Summary),
		PDFURL:   arxivPDFURL(entry.ID),
	}

	for _, a := range entry.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			r.Authors = append(r.Authors, name)
		}
	}

	// Published is RFC3339; the year is its first four characters.
	if len(entry.Published) >= 4 {
		r.Year = entry.Published[:4]
	}

	return r
}

// collapseWhitespace folds embedded newlines into spaces and truncates
// to the display limit.
func collapseWhitespace(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > abstractDisplayLimit {
		return string(runes[:abstractDisplayLimit]) + "..."
	}
	return s
}

// arxivPDFURL derives the PDF URL from an entry's abstract-page URL by
// rewriting the "/abs/" path segment to "/pdf/". The rewrite is applied
// to the URL path only: a naive substring replacement misfires on any
// URL containing "abs" outside the path segment.
func arxivPDFURL(absURL string) string {
	u, err := neturl.Parse(absURL)
	if err != nil {
		return ""
	}
	if !strings.Contains(u.Path, "/abs/") {
		return ""
	}
	u.Path = strings.Replace(u.Path, "/abs/", "/pdf/", 1)
	return u.String()
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}
