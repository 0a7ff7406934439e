// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar queries academic APIs through a configured proxy and
// normalizes their heterogeneous responses into one record shape.
//
// The Search boundary never returns a Go error: transport, parse, and
// rate-limit failures all surface as a single-element record slice whose
// first element carries a provider-prefixed Err. An empty slice means the
// query matched nothing.
package scholar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// ErrNoProxyBase is returned by New when the mandatory proxy base URL is
// missing. This is a configuration error, distinct from network failures.
var ErrNoProxyBase = errors.New("scholar: proxy base URL is not configured")

// Backend searches a single academic API.
type Backend interface {
	Name() types.Provider
	Search(ctx context.Context, query string, limit int) ([]types.Record, error)
}

// Service fronts both academic backends behind one search boundary.
type Service struct {
	cfg      types.ScholarConfig
	backends map[string]Backend
}

// New builds a Service from cfg. It fails fast with ErrNoProxyBase when
// the proxy base URL is absent, before any network activity.
func New(cfg types.ScholarConfig) (*Service, error) {
	if strings.TrimSpace(cfg.ProxyBaseURL) == "" {
		return nil, ErrNoProxyBase
	}
	cfg.ProxyBaseURL = strings.TrimRight(cfg.ProxyBaseURL, "/")

	client := &http.Client{Timeout: cfg.Timeout}
	s := &Service{
		cfg: cfg,
		backends: map[string]Backend{
			"arxiv": &ArxivBackend{
				Client:    client,
				BaseURL:   cfg.ProxyBaseURL + "/arxiv/api/query",
				UserAgent: cfg.UserAgent,
			},
			"semantic_scholar": &SemanticScholarBackend{
				Client:    client,
				BaseURL:   cfg.ProxyBaseURL + "/s2/graph/v1/paper/search",
				UserAgent: cfg.UserAgent,
				APIKey:    cfg.SemanticScholarAPIKey,
			},
		},
	}
	return s, nil
}

// Providers lists the configured backend keys.
func (s *Service) Providers() []string {
	return []string{"arxiv", "semantic_scholar"}
}

// Search queries one backend and converts any failure into an error
// record. Callers check the first element's Err field; they never see a
// raised error from this boundary.
func (s *Service) Search(ctx context.Context, provider, query string, limit int) []types.Record {
	if limit <= 0 {
		limit = s.cfg.MaxResults
	}

	b, ok := s.backends[provider]
	if !ok {
		return errorRecord("", fmt.Errorf("unknown provider %q", provider))
	}

	records, err := b.Search(ctx, query, limit)
	if err != nil {
		return errorRecord(b.Name(), err)
	}
	return records
}

// SearchAll queries every backend concurrently and concatenates the
// per-backend results. A failing backend contributes its error record
// without suppressing the other backend's results.
func (s *Service) SearchAll(ctx context.Context, query string, limit int) []types.Record {
	providers := s.Providers()
	results := make([][]types.Record, len(providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		i, p := i, p
		g.Go(func() error {
			results[i] = s.Search(gctx, p, query, limit)
			return nil
		})
	}
	g.Wait()

	var all []types.Record
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

// errorRecord wraps err as the single-element failure result.
func errorRecord(p types.Provider, err error) []types.Record {
	label := string(p)
	if label == "" {
		label = "Search"
	}
	return []types.Record{{
		Source: p,
		Err:    fmt.Sprintf("%s Error: %v", label, err),
	}}
}
