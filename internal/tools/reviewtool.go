// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/research-assistant/internal/review"
)

// ReviewDocumentTool answers a question about a stored document by
// running the bounded review loop. The loop's generation capability
// sees a restricted tool set: read-only document access plus academic
// search.
type ReviewDocumentTool struct {
	Gen      review.Generator
	Inner    *Registry
	MaxSteps int
	Log      zerolog.Logger
}

func (t *ReviewDocumentTool) Name() string { return "review_document" }

func (t *ReviewDocumentTool) Description() string {
	return "Review a stored document and answer a question about it, consulting " +
		"academic sources where relevant."
}

func (t *ReviewDocumentTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_name": map[string]any{
				"type":        "string",
				"description": "Name of the stored document to review.",
			},
			"question": map[string]any{
				"type":        "string",
				"description": "The question to answer about the document.",
			},
		},
		"required": []string{"document_name", "question"},
	}
}

func (t *ReviewDocumentTool) Execute(ctx context.Context, args map[string]any) *ToolResult {
	name, err := stringArg(args, "document_name")
	if err != nil {
		return &ToolResult{Err: err}
	}
	question, err := stringArg(args, "question")
	if err != nil {
		return &ToolResult{Err: err}
	}

	loop := &review.Loop{Gen: t.Gen, Tools: t.Inner, Log: t.Log}
	out, err := loop.Run(ctx, question, name, t.MaxSteps)
	if err != nil {
		return &ToolResult{Err: fmt.Errorf("reviewing %q: %w", name, err)}
	}
	return &ToolResult{Content: out.Render()}
}
