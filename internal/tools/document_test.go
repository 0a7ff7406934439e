// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pdiddy/research-assistant/internal/docstore"
)

type fakeConverter struct {
	markdown string
	name     string
	path     string
}

func (c *fakeConverter) Convert(markdown, name string) (string, error) {
	c.markdown = markdown
	c.name = name
	return c.path, nil
}

func newDocRegistry(t *testing.T) (*Registry, *fakeConverter) {
	t.Helper()
	store, err := docstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	conv := &fakeConverter{path: filepath.Join(store.Root(), "out.docx")}
	r := NewRegistry(zerolog.Nop())
	r.Register(NewProcessDocumentTool(store, conv, newNameLocks()))
	return r, conv
}

func invoke(r *Registry, args map[string]any) string {
	return r.Invoke(context.Background(), "process_document", args)
}

func TestProcessDocumentLifecycle(t *testing.T) {
	r, _ := newDocRegistry(t)

	out := invoke(r, map[string]any{"process_type": "create", "document_name": "notes.md", "document_content": "# Title"})
	if !strings.Contains(out, "notes.md") || strings.HasPrefix(out, "Error") {
		t.Fatalf("create = %q", out)
	}

	if out := invoke(r, map[string]any{"process_type": "read", "document_name": "notes.md"}); out != "# Title" {
		t.Errorf("read = %q", out)
	}

	invoke(r, map[string]any{"process_type": "append", "document_name": "notes.md", "document_content": "\nmore"})
	if out := invoke(r, map[string]any{"process_type": "read", "document_name": "notes.md"}); out != "# Title\nmore" {
		t.Errorf("read after append = %q", out)
	}

	invoke(r, map[string]any{"process_type": "cover", "document_name": "notes.md", "document_content": "fresh"})
	if out := invoke(r, map[string]any{"process_type": "read", "document_name": "notes.md"}); out != "fresh" {
		t.Errorf("read after cover = %q", out)
	}

	if out := invoke(r, map[string]any{"process_type": "list"}); out != "Documents:\n- notes.md" {
		t.Errorf("list = %q", out)
	}

	invoke(r, map[string]any{"process_type": "delete", "document_name": "notes.md"})
	if out := invoke(r, map[string]any{"process_type": "read", "document_name": "notes.md"}); !strings.HasPrefix(out, "Error") {
		t.Errorf("read after delete = %q, want error string", out)
	}
	if out := invoke(r, map[string]any{"process_type": "list"}); out != "No documents stored." {
		t.Errorf("list after delete = %q", out)
	}
}

func TestProcessDocumentWordCreateRoutesToConverter(t *testing.T) {
	r, conv := newDocRegistry(t)

	out := invoke(r, map[string]any{
		"process_type":     "create",
		"document_type":    "word",
		"document_name":    "report",
		"document_content": "# Report\n\nBody.",
	})
	if strings.HasPrefix(out, "Error") {
		t.Fatalf("word create = %q", out)
	}
	if !strings.Contains(out, "out.docx") {
		t.Errorf("word create = %q, want converted path", out)
	}
	if conv.name != "report" || conv.markdown != "# Report\n\nBody." {
		t.Errorf("converter got name=%q markdown=%q", conv.name, conv.markdown)
	}
}

func TestProcessDocumentWordRejectsNonCreate(t *testing.T) {
	r, _ := newDocRegistry(t)
	out := invoke(r, map[string]any{"process_type": "append", "document_type": "word", "document_name": "x", "document_content": "y"})
	if !strings.HasPrefix(out, "Error") {
		t.Errorf("word append = %q, want error string", out)
	}
}

func TestProcessDocumentValidation(t *testing.T) {
	r, _ := newDocRegistry(t)

	if out := invoke(r, map[string]any{}); !strings.HasPrefix(out, "Error") {
		t.Errorf("missing process_type = %q", out)
	}
	if out := invoke(r, map[string]any{"process_type": "read"}); !strings.HasPrefix(out, "Error") {
		t.Errorf("missing document_name = %q", out)
	}
	if out := invoke(r, map[string]any{"process_type": "shred", "document_name": "x"}); !strings.HasPrefix(out, "Error") {
		t.Errorf("unknown process_type = %q", out)
	}
	if out := invoke(r, map[string]any{"process_type": "read", "document_name": "../escape"}); !strings.HasPrefix(out, "Error") {
		t.Errorf("traversal name = %q", out)
	}
}

func TestReadDocumentTool(t *testing.T) {
	store, err := docstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	if _, err := store.Create("paper.md", "abstract text"); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	tool := &ReadDocumentTool{Store: store}
	res := tool.Execute(context.Background(), map[string]any{"document_name": "paper.md"})
	if res.Err != nil {
		t.Fatalf("Execute error: %v", res.Err)
	}
	if res.Content != "abstract text" {
		t.Errorf("Content = %q", res.Content)
	}

	res = tool.Execute(context.Background(), map[string]any{"document_name": "missing.md"})
	if res.Err == nil {
		t.Error("expected error for missing document")
	}
}
