// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/pdiddy/research-assistant/internal/convert"
	"github.com/pdiddy/research-assistant/internal/docstore"
	"github.com/pdiddy/research-assistant/internal/reader"
	"github.com/pdiddy/research-assistant/internal/review"
	"github.com/pdiddy/research-assistant/internal/scholar"
	"github.com/pdiddy/research-assistant/internal/tools"
)

// buildRegistry wires every component from config and assembles the
// full tool registry.
func buildRegistry(notifier tools.Notifier) (*tools.Registry, error) {
	cfg := loadConfig()

	svc, err := scholar.New(cfg.Scholar)
	if err != nil {
		return nil, err
	}
	store, err := docstore.New(cfg.Store.DocsDir)
	if err != nil {
		return nil, err
	}

	return tools.BuildRegistry(tools.Deps{
		Scholar:    svc,
		Reader:     reader.New(cfg.Reader),
		Store:      store,
		Convert:    convert.NewDocxConverter(store.Root()),
		Gen:        review.NewAnthropicGenerator(cfg.Review),
		Notifier:   notifier,
		MaxResults: cfg.Scholar.MaxResults,
		MaxSteps:   cfg.Review.MaxSteps,
		Log:        logger,
	}), nil
}
