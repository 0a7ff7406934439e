// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/research-assistant/internal/docstore"
)

// Notifier delivers a file to the host's messaging channel. The core
// only resolves and validates the path; delivery is entirely the
// host's concern.
type Notifier interface {
	SendFile(ctx context.Context, path string) error
}

// SendFileTool hands a stored file to the configured Notifier.
type SendFileTool struct {
	Store    *docstore.Store
	Notifier Notifier
}

func (t *SendFileTool) Name() string { return "send_file" }

func (t *SendFileTool) Description() string {
	return "Send a stored file (for example a generated .docx document) to the user " +
		"over the active messaging channel."
}

func (t *SendFileTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"file_path": map[string]any{
				"type":        "string",
				"description": "Name of the stored file to send.",
			},
		},
		"required": []string{"file_path"},
	}
}

func (t *SendFileTool) Execute(ctx context.Context, args map[string]any) *ToolResult {
	name, err := stringArg(args, "file_path")
	if err != nil {
		return &ToolResult{Err: err}
	}

	path, err := t.Store.Resolve(name)
	if err != nil {
		return &ToolResult{Err: fmt.Errorf("resolving %q: %w", name, err)}
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &ToolResult{Err: fmt.Errorf("sending %q: %w", name, docstore.ErrNotFound)}
		}
		return &ToolResult{Err: fmt.Errorf("sending %q: %w", name, err)}
	}

	if t.Notifier == nil {
		return &ToolResult{Err: fmt.Errorf("no delivery channel configured")}
	}
	if err := t.Notifier.SendFile(ctx, path); err != nil {
		return &ToolResult{Err: fmt.Errorf("sending %q: %w", name, err)}
	}
	return &ToolResult{Content: fmt.Sprintf("Sent file %q", name)}
}
