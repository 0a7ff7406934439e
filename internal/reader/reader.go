// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reader turns arbitrary URLs into clean markdown-flavored text.
//
// HTML pages are rendered through an isolated headless browser so
// client-side scripts run before extraction; PDFs are fetched directly
// and scanned for text. The public boundary never raises: every failure
// comes back as a descriptive string prefixed with "Error".
package reader

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// ErrNoContent marks a render that succeeded but yielded nothing worth
// returning. The boundary converts it to noContentMessage; internal
// callers can test for it with errors.Is.
var ErrNoContent = errors.New("no extractable main content")

// noContentMessage is returned when rendering worked but the extractor
// found no main content. It must be non-empty and contain "Error" so
// callers can detect failure without parsing free text.
const noContentMessage = "Error: no extractable main content - likely an image-only or heavily protected page"

// Reader composes the headless renderer and the content extractor
// behind a single URL-in, text-out contract.
type Reader struct {
	cfg types.ReaderConfig
}

// New returns a Reader with cfg's timeout and identification string.
func New(cfg types.ReaderConfig) *Reader {
	return &Reader{cfg: cfg}
}

// ReadToText fetches url and returns clean structured text, or a
// descriptive error string. It never returns an empty string and never
// raises past this boundary.
func (r *Reader) ReadToText(ctx context.Context, url string) string {
	text, err := r.read(ctx, url)
	if err != nil {
		if errors.Is(err, ErrNoContent) {
			return noContentMessage
		}
		return fmt.Sprintf("Error fetching URL: %v", err)
	}
	return text
}

// read does the actual work and returns typed errors; ReadToText owns
// the string conversion.
func (r *Reader) read(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	// A plain fetch first: it settles the PDF-vs-HTML branch without
	// paying for a browser, and PDFs never need one.
	fetched, fetchErr := httputil.Fetch(ctx, url, r.cfg.UserAgent, r.cfg.Timeout)
	if fetchErr == nil && isPDF(fetched.Body, fetched.ContentType, fetched.FinalURL) {
		text := pdfToText(fetched.Body)
		if text == "" {
			return "", ErrNoContent
		}
		return text, nil
	}

	// Not a PDF (or the plain fetch was blocked): render it. The
	// browser often succeeds where the bare client was rejected.
	markup, err := renderPage(ctx, url, r.cfg.UserAgent, r.cfg.Timeout)
	if err != nil {
		if fetchErr != nil {
			return "", fmt.Errorf("%v (plain fetch also failed: %v)", err, fetchErr)
		}
		return "", err
	}

	text, err := extractMarkdown(markup)
	if err != nil {
		return "", fmt.Errorf("extracting content: %w", err)
	}
	if text == "" {
		return "", ErrNoContent
	}
	return text, nil
}
