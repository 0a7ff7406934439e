// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/research-assistant/internal/convert"
	"github.com/pdiddy/research-assistant/internal/docstore"
)

// ProcessDocumentTool manages named documents in the store: create,
// read, append, overwrite, delete and list. Markdown content with
// document_type "word" is rendered to a .docx artifact instead of a
// text file.
type ProcessDocumentTool struct {
	Store   *docstore.Store
	Convert convert.Converter

	locks *nameLocks
}

func NewProcessDocumentTool(store *docstore.Store, conv convert.Converter, locks *nameLocks) *ProcessDocumentTool {
	return &ProcessDocumentTool{Store: store, Convert: conv, locks: locks}
}

func (t *ProcessDocumentTool) Name() string { return "process_document" }

func (t *ProcessDocumentTool) Description() string {
	return "Create, read, append to, overwrite, delete or list stored documents. " +
		"process_type must be one of: create, read, append, cover, delete, list. " +
		"append and cover are the two write modes; cover replaces the document " +
		"content entirely. Set document_type to \"word\" with process_type create " +
		"to render markdown content into a Word (.docx) file."
}

func (t *ProcessDocumentTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"process_type": map[string]any{
				"type":        "string",
				"description": "Operation to perform.",
				"enum":        []string{"create", "read", "append", "cover", "delete", "list"},
			},
			"document_name": map[string]any{
				"type":        "string",
				"description": "Document name. Required for everything except list.",
			},
			"document_content": map[string]any{
				"type":        "string",
				"description": "Content for create, append and cover.",
			},
			"document_type": map[string]any{
				"type":        "string",
				"description": "Document format: markdown (default) or word.",
				"enum":        []string{"markdown", "word"},
			},
		},
		"required": []string{"process_type"},
	}
}

func (t *ProcessDocumentTool) Execute(ctx context.Context, args map[string]any) *ToolResult {
	processType, err := stringArg(args, "process_type")
	if err != nil {
		return &ToolResult{Err: err}
	}
	if processType == "list" {
		return t.list()
	}

	name, err := stringArg(args, "document_name")
	if err != nil {
		return &ToolResult{Err: err}
	}
	content, err := optionalString(args, "document_content")
	if err != nil {
		return &ToolResult{Err: err}
	}
	docType, err := optionalString(args, "document_type")
	if err != nil {
		return &ToolResult{Err: err}
	}
	if docType == "" {
		docType = "markdown"
	}
	if docType == "word" && processType != "create" {
		return &ToolResult{Err: fmt.Errorf("word documents support create only, got process_type %q", processType)}
	}

	lock := t.locks.get(name)
	lock.Lock()
	defer lock.Unlock()

	switch processType {
	case "create":
		if docType == "word" {
			path, err := t.Convert.Convert(content, name)
			if err != nil {
				return &ToolResult{Err: fmt.Errorf("converting %q to Word: %w", name, err)}
			}
			return &ToolResult{Content: fmt.Sprintf("Created Word document at %s", path)}
		}
		if _, err := t.Store.Create(name, content); err != nil {
			return &ToolResult{Err: fmt.Errorf("creating %q: %w", name, err)}
		}
		return &ToolResult{Content: fmt.Sprintf("Created document %q", name)}
	case "read":
		text, err := t.Store.Read(name)
		if err != nil {
			return &ToolResult{Err: fmt.Errorf("reading %q: %w", name, err)}
		}
		return &ToolResult{Content: text}
	case "append", "cover":
		if err := t.Store.Write(name, content, processType == "append"); err != nil {
			return &ToolResult{Err: fmt.Errorf("writing %q: %w", name, err)}
		}
		if processType == "append" {
			return &ToolResult{Content: fmt.Sprintf("Appended to document %q", name)}
		}
		return &ToolResult{Content: fmt.Sprintf("Replaced content of document %q", name)}
	case "delete":
		if err := t.Store.Delete(name); err != nil {
			return &ToolResult{Err: fmt.Errorf("deleting %q: %w", name, err)}
		}
		return &ToolResult{Content: fmt.Sprintf("Deleted document %q", name)}
	default:
		return &ToolResult{Err: fmt.Errorf("unknown process_type %q", processType)}
	}
}

func (t *ProcessDocumentTool) list() *ToolResult {
	names, err := t.Store.List()
	if err != nil {
		return &ToolResult{Err: fmt.Errorf("listing documents: %w", err)}
	}
	if len(names) == 0 {
		return &ToolResult{Content: "No documents stored."}
	}
	var b strings.Builder
	b.WriteString("Documents:\n")
	for _, name := range names {
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return &ToolResult{Content: strings.TrimRight(b.String(), "\n")}
}

// ReadDocumentTool is the read-only document access offered to the
// review loop's generation capability.
type ReadDocumentTool struct {
	Store *docstore.Store
}

func (t *ReadDocumentTool) Name() string { return "read_document" }

func (t *ReadDocumentTool) Description() string {
	return "Read the full content of a stored document by name."
}

func (t *ReadDocumentTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_name": map[string]any{
				"type":        "string",
				"description": "Name of the document to read.",
			},
		},
		"required": []string{"document_name"},
	}
}

func (t *ReadDocumentTool) Execute(_ context.Context, args map[string]any) *ToolResult {
	name, err := stringArg(args, "document_name")
	if err != nil {
		return &ToolResult{Err: err}
	}
	text, err := t.Store.Read(name)
	if err != nil {
		return &ToolResult{Err: fmt.Errorf("reading %q: %w", name, err)}
	}
	return &ToolResult{Content: text}
}
