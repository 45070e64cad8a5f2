// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

// Package search resolves a query against the recipe sources in a fixed
// priority order: the primary store, then the in-memory feed, then the
// external API. The first non-empty result set wins outright; results
// from different sources are never merged.
package search

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
)

// PrimarySearcher matches stored recipes by title prefix.
type PrimarySearcher interface {
	Search(ctx context.Context, term string) []forkfuldb.Recipe
}

// ExternalSearcher is the provider-side substring search.
type ExternalSearcher interface {
	Search(ctx context.Context, term string) []forkfuldb.Recipe
}

// NewDispatcher creates a dispatcher over the two searchable sources.
func NewDispatcher(primary PrimarySearcher, external ExternalSearcher) *Dispatcher {
	return &Dispatcher{primary: primary, external: external}
}

type Dispatcher struct {
	primary  PrimarySearcher
	external ExternalSearcher

	inFlight atomic.Int32
}

// Searching reports whether any search is currently in flight.
func (d *Dispatcher) Searching() bool {
	return d.inFlight.Load() > 0
}

// Search runs the fallback chain for term. feedItems are the caller's
// current in-memory feed items, consulted between the primary store and
// the external API. An empty or whitespace term returns nothing without
// touching any source.
func (d *Dispatcher) Search(ctx context.Context, term string, feedItems []forkfuldb.Recipe) []forkfuldb.Recipe {
	if strings.TrimSpace(term) == "" {
		return nil
	}
	d.inFlight.Add(1)
	defer d.inFlight.Add(-1)

	if results := d.primary.Search(ctx, term); len(results) > 0 {
		return results
	}
	if results := searchItems(feedItems, term); len(results) > 0 {
		return results
	}
	return d.external.Search(ctx, term)
}

// searchItems filters in-memory feed items by case-insensitive
// substring match on title. Items without a source tag get the local
// tag, marking them as served from feed state rather than a fresh
// fetch.
func searchItems(items []forkfuldb.Recipe, term string) []forkfuldb.Recipe {
	term = strings.ToLower(term)
	var results []forkfuldb.Recipe
	for _, r := range items {
		if !strings.Contains(strings.ToLower(r.Title), term) {
			continue
		}
		if r.Source == "" {
			r.Source = forkfuldb.RecipeSourceLocal
		}
		results = append(results, r)
	}
	return results
}
