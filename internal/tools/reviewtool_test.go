// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pdiddy/research-assistant/internal/docstore"
	"github.com/pdiddy/research-assistant/internal/review"
)

// readThenAnswer reads the document once, then answers with its text.
type readThenAnswer struct{}

func (readThenAnswer) Decide(_ context.Context, s *review.Session, _ []review.ToolSpec) (review.Decision, error) {
	if len(s.Transcript) == 0 {
		return review.Decision{Call: &review.ToolCall{
			Name:      "read_document",
			Arguments: map[string]any{"document_name": s.DocumentName},
		}}, nil
	}
	return review.Decision{Answer: "document says: " + s.Transcript[0].Result}, nil
}

func TestReviewDocumentToolRunsLoop(t *testing.T) {
	store, err := docstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	if _, err := store.Create("draft.md", "the claim holds"); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	inner := NewRegistry(zerolog.Nop())
	inner.Register(&ReadDocumentTool{Store: store})

	tool := &ReviewDocumentTool{Gen: readThenAnswer{}, Inner: inner, MaxSteps: 6, Log: zerolog.Nop()}
	res := tool.Execute(context.Background(), map[string]any{
		"document_name": "draft.md",
		"question":      "what does it claim?",
	})
	if res.Err != nil {
		t.Fatalf("Execute error: %v", res.Err)
	}
	if res.Content != "document says: the claim holds" {
		t.Errorf("Content = %q", res.Content)
	}
}

func TestReviewDocumentToolRequiresArgs(t *testing.T) {
	tool := &ReviewDocumentTool{Gen: readThenAnswer{}, Inner: NewRegistry(zerolog.Nop()), MaxSteps: 6, Log: zerolog.Nop()}
	if res := tool.Execute(context.Background(), map[string]any{"question": "q"}); res.Err == nil {
		t.Error("expected error without document_name")
	}
	if res := tool.Execute(context.Background(), map[string]any{"document_name": "d"}); res.Err == nil {
		t.Error("expected error without question")
	}
}

type captureNotifier struct {
	path string
	err  error
}

func (n *captureNotifier) SendFile(_ context.Context, path string) error {
	n.path = path
	return n.err
}

func TestSendFileTool(t *testing.T) {
	store, err := docstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	if _, err := store.Create("report.md", "content"); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	notifier := &captureNotifier{}
	tool := &SendFileTool{Store: store, Notifier: notifier}

	res := tool.Execute(context.Background(), map[string]any{"file_path": "report.md"})
	if res.Err != nil {
		t.Fatalf("Execute error: %v", res.Err)
	}
	if !strings.HasSuffix(notifier.path, "report.md") {
		t.Errorf("notifier got path %q", notifier.path)
	}

	res = tool.Execute(context.Background(), map[string]any{"file_path": "missing.md"})
	if !errors.Is(res.Err, docstore.ErrNotFound) {
		t.Errorf("missing file error = %v", res.Err)
	}

	res = tool.Execute(context.Background(), map[string]any{"file_path": "../outside"})
	if res.Err == nil {
		t.Error("expected error for traversal path")
	}

	bare := &SendFileTool{Store: store}
	if res := bare.Execute(context.Background(), map[string]any{"file_path": "report.md"}); res.Err == nil {
		t.Error("expected error without a configured notifier")
	}
}
