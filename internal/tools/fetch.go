// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/internal/docstore"
)

// PageReader renders a URL to readable text. Implemented by
// reader.Reader; failures come back as "Error ..." display strings,
// never as raised errors.
type PageReader interface {
	ReadToText(ctx context.Context, url string) string
}

// pageMeta is the frontmatter written at the top of captured pages.
type pageMeta struct {
	URL       string `yaml:"url"`
	FetchedAt string `yaml:"fetched_at"`
}

// FetchURLTool renders a web page or PDF to readable text, optionally
// capturing the result into the document store.
type FetchURLTool struct {
	Reader PageReader
	Store  *docstore.Store

	locks *nameLocks
	now   func() time.Time
}

func NewFetchURLTool(r PageReader, store *docstore.Store, locks *nameLocks) *FetchURLTool {
	return &FetchURLTool{Reader: r, Store: store, locks: locks, now: time.Now}
}

func (t *FetchURLTool) Name() string { return "fetch_url" }

func (t *FetchURLTool) Description() string {
	return "Fetch a URL and return its main content as markdown text. Handles " +
		"JavaScript-rendered pages and PDF links. Optionally saves the content " +
		"as a named document for later review."
}

func (t *FetchURLTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "The URL to fetch.",
			},
			"document_name": map[string]any{
				"type":        "string",
				"description": "Optional document name to save the fetched content under.",
			},
		},
		"required": []string{"url"},
	}
}

func (t *FetchURLTool) Execute(ctx context.Context, args map[string]any) *ToolResult {
	url, err := stringArg(args, "url")
	if err != nil {
		return &ToolResult{Err: err}
	}
	name, err := optionalString(args, "document_name")
	if err != nil {
		return &ToolResult{Err: err}
	}

	text := t.Reader.ReadToText(ctx, url)
	if name == "" || strings.HasPrefix(text, "Error") {
		return &ToolResult{Content: text}
	}

	doc, err := withFrontmatter(text, pageMeta{
		URL:       url,
		FetchedAt: t.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return &ToolResult{Err: err}
	}

	lock := t.locks.get(name)
	lock.Lock()
	defer lock.Unlock()

	if _, err := t.Store.Create(name, doc); err != nil {
		if !errors.Is(err, docstore.ErrExists) {
			return &ToolResult{Err: fmt.Errorf("saving %q: %w", name, err)}
		}
		if err := t.Store.Write(name, doc, false); err != nil {
			return &ToolResult{Err: fmt.Errorf("saving %q: %w", name, err)}
		}
	}

	return &ToolResult{Content: fmt.Sprintf("Saved fetched content to document %q.\n\n%s", name, text)}
}

func withFrontmatter(body string, meta pageMeta) (string, error) {
	encoded, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("encoding page metadata: %w", err)
	}
	return "---\n" + string(encoded) + "---\n\n" + body, nil
}
