// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"

	"github.com/pdiddy/research-assistant/internal/scholar"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// AcademicSearchTool queries the configured paper providers and
// renders matches as numbered record blocks.
type AcademicSearchTool struct {
	Scholar    *scholar.Service
	MaxResults int
}

func (t *AcademicSearchTool) Name() string { return "academic_search" }

func (t *AcademicSearchTool) Description() string {
	return "Search academic paper databases (arXiv and Semantic Scholar) for papers " +
		"matching the given keywords. Returns title, authors, year, abstract and PDF " +
		"link for each match."
}

func (t *AcademicSearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"keywords": map[string]any{
				"type":        "string",
				"description": "Keywords or a question to search papers for.",
			},
			"source": map[string]any{
				"type":        "string",
				"description": "Paper source: arxiv, semantic_scholar, or all. Defaults to arxiv.",
				"enum":        []string{"arxiv", "semantic_scholar", "all"},
			},
			"max_results": map[string]any{
				"type":        "integer",
				"description": "Maximum number of papers to return.",
			},
		},
		"required": []string{"keywords"},
	}
}

func (t *AcademicSearchTool) Execute(ctx context.Context, args map[string]any) *ToolResult {
	keywords, err := stringArg(args, "keywords")
	if err != nil {
		return &ToolResult{Err: err}
	}
	source, err := optionalString(args, "source")
	if err != nil {
		return &ToolResult{Err: err}
	}
	if source == "" {
		source = "arxiv"
	}
	limit, err := intArg(args, "max_results", t.MaxResults)
	if err != nil {
		return &ToolResult{Err: err}
	}

	var records []types.Record
	if source == "all" {
		records = t.Scholar.SearchAll(ctx, keywords, limit)
	} else {
		records = t.Scholar.Search(ctx, source, keywords, limit)
	}
	return &ToolResult{Content: types.FormatRecords(records)}
}
