// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tools exposes the assistant's capabilities behind a uniform
// dispatch surface. Every tool failure is converted to a prefixed
// display string at this boundary; nothing below main ever surfaces a
// raw error to the caller of Invoke.
package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pdiddy/research-assistant/internal/review"
)

// ToolResult carries a tool's output. Exactly one of Content or Err is
// meaningful.
type ToolResult struct {
	Content string
	Err     error
}

// Tool is one invocable capability. Parameters returns a JSON-schema
// object describing the accepted arguments.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	Execute(ctx context.Context, args map[string]any) *ToolResult
}

// Registry holds the registered tools and dispatches calls by name.
type Registry struct {
	log   zerolog.Logger
	tools map[string]Tool
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{log: log, tools: map[string]Tool{}}
}

func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Subset returns a registry restricted to the named tools. Unknown
// names are skipped.
func (r *Registry) Subset(names ...string) *Registry {
	sub := NewRegistry(r.log)
	for _, name := range names {
		if t, ok := r.tools[name]; ok {
			sub.Register(t)
		}
	}
	return sub
}

// Specs describes the registered tools for the review loop's
// generation capability.
func (r *Registry) Specs() []review.ToolSpec {
	specs := make([]review.ToolSpec, 0, len(r.tools))
	for _, name := range r.Names() {
		t := r.tools[name]
		specs = append(specs, review.ToolSpec{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return specs
}

// Invoke runs the named tool and returns its display output. Failures,
// including unknown tool names, come back as "Error: ..." strings so
// callers never have to handle a raised error from this surface.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) string {
	t, ok := r.tools[name]
	if !ok {
		r.log.Warn().Str("tool", name).Msg("unknown tool invoked")
		return fmt.Sprintf("Error: unknown tool: %s", name)
	}

	result := t.Execute(ctx, args)
	if result.Err != nil {
		r.log.Warn().Str("tool", name).Err(result.Err).Msg("tool call failed")
		return "Error: " + result.Err.Error()
	}
	r.log.Debug().Str("tool", name).Msg("tool call succeeded")
	return result.Content
}

// stringArg extracts a required non-empty string argument.
func stringArg(args map[string]any, key string) (string, error) {
	v, err := optionalString(args, key)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	return v, nil
}

// optionalString extracts a string argument, returning "" when absent.
func optionalString(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", key)
	}
	return strings.TrimSpace(s), nil
}

// intArg extracts an integer argument, tolerating the float64 form JSON
// decoding produces. Returns fallback when absent.
func intArg(args map[string]any, key string, fallback int) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("argument %q must be a number", key)
	}
}

// nameLocks serializes operations per document name, upholding the
// single-writer-per-name discipline above the store.
type nameLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newNameLocks() *nameLocks {
	return &nameLocks{locks: map[string]*sync.Mutex{}}
}

func (n *nameLocks) get(name string) *sync.Mutex {
	n.mu.Lock()
	defer n.mu.Unlock()
	l, ok := n.locks[name]
	if !ok {
		l = &sync.Mutex{}
		n.locks[name] = l
	}
	return l
}
