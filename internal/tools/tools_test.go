// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type fakeTool struct {
	name   string
	result *ToolResult
}

func (t *fakeTool) Name() string               { return t.name }
func (t *fakeTool) Description() string        { return "fake" }
func (t *fakeTool) Parameters() map[string]any { return map[string]any{"type": "object"} }
func (t *fakeTool) Execute(context.Context, map[string]any) *ToolResult {
	return t.result
}

func TestInvokeUnknownTool(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	out := r.Invoke(context.Background(), "nope", nil)
	if out != "Error: unknown tool: nope" {
		t.Errorf("Invoke = %q", out)
	}
}

func TestInvokeConvertsErrorsToDisplayStrings(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	r.Register(&fakeTool{name: "boom", result: &ToolResult{Err: errors.New("disk on fire")}})

	out := r.Invoke(context.Background(), "boom", nil)
	if out != "Error: disk on fire" {
		t.Errorf("Invoke = %q", out)
	}
}

func TestInvokePassesContentThrough(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	r.Register(&fakeTool{name: "ok", result: &ToolResult{Content: "all good"}})

	if out := r.Invoke(context.Background(), "ok", nil); out != "all good" {
		t.Errorf("Invoke = %q", out)
	}
}

func TestSubsetRestrictsTools(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	r.Register(&fakeTool{name: "a", result: &ToolResult{Content: "a"}})
	r.Register(&fakeTool{name: "b", result: &ToolResult{Content: "b"}})

	sub := r.Subset("a", "missing")
	if got := sub.Names(); len(got) != 1 || got[0] != "a" {
		t.Errorf("Subset names = %v", got)
	}
	if out := sub.Invoke(context.Background(), "b", nil); !strings.HasPrefix(out, "Error: unknown tool") {
		t.Errorf("subset should not dispatch excluded tool, got %q", out)
	}
}

func TestSpecsMirrorRegisteredTools(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	r.Register(&fakeTool{name: "b", result: &ToolResult{}})
	r.Register(&fakeTool{name: "a", result: &ToolResult{}})

	specs := r.Specs()
	if len(specs) != 2 {
		t.Fatalf("len(specs) = %d", len(specs))
	}
	if specs[0].Name != "a" || specs[1].Name != "b" {
		t.Errorf("specs not in sorted order: %v, %v", specs[0].Name, specs[1].Name)
	}
	if specs[0].Parameters["type"] != "object" {
		t.Errorf("Parameters not carried through: %v", specs[0].Parameters)
	}
}

func TestArgHelpers(t *testing.T) {
	args := map[string]any{
		"s":     "  padded  ",
		"n":     float64(7),
		"empty": "",
		"wrong": 12,
	}

	if v, err := stringArg(args, "s"); err != nil || v != "padded" {
		t.Errorf("stringArg = %q, %v", v, err)
	}
	if _, err := stringArg(args, "empty"); err == nil {
		t.Error("stringArg should reject empty value")
	}
	if _, err := stringArg(args, "absent"); err == nil {
		t.Error("stringArg should reject missing key")
	}
	if _, err := optionalString(args, "wrong"); err == nil {
		t.Error("optionalString should reject non-string value")
	}
	if v, err := optionalString(args, "absent"); err != nil || v != "" {
		t.Errorf("optionalString absent = %q, %v", v, err)
	}
	if n, err := intArg(args, "n", 3); err != nil || n != 7 {
		t.Errorf("intArg = %d, %v", n, err)
	}
	if n, err := intArg(args, "absent", 3); err != nil || n != 3 {
		t.Errorf("intArg fallback = %d, %v", n, err)
	}
	if _, err := intArg(args, "s", 3); err == nil {
		t.Error("intArg should reject string value")
	}
}
