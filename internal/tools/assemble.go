// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"github.com/rs/zerolog"

	"github.com/pdiddy/research-assistant/internal/convert"
	"github.com/pdiddy/research-assistant/internal/docstore"
	"github.com/pdiddy/research-assistant/internal/review"
	"github.com/pdiddy/research-assistant/internal/scholar"
)

// Deps are the wired components a full tool registry needs.
type Deps struct {
	Scholar    *scholar.Service
	Reader     PageReader
	Store      *docstore.Store
	Convert    convert.Converter
	Gen        review.Generator
	Notifier   Notifier
	MaxResults int
	MaxSteps   int
	Log        zerolog.Logger
}

// BuildRegistry assembles the assistant's tool set. The review tool
// gets its own restricted registry: read-only document access plus
// academic search, nothing that mutates the store.
func BuildRegistry(d Deps) *Registry {
	locks := newNameLocks()
	search := &AcademicSearchTool{Scholar: d.Scholar, MaxResults: d.MaxResults}

	inner := NewRegistry(d.Log)
	inner.Register(search)
	inner.Register(&ReadDocumentTool{Store: d.Store})

	r := NewRegistry(d.Log)
	r.Register(search)
	r.Register(NewFetchURLTool(d.Reader, d.Store, locks))
	r.Register(NewProcessDocumentTool(d.Store, d.Convert, locks))
	r.Register(&ReviewDocumentTool{Gen: d.Gen, Inner: inner, MaxSteps: d.MaxSteps, Log: d.Log})
	r.Register(&SendFileTool{Store: d.Store, Notifier: d.Notifier})
	return r
}
