// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

// Package catalog resolves recipe IDs that may belong to either source,
// such as the entries of a user's liked list.
package catalog

import (
	"context"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
)

// Primary is the batched primary-store lookup.
type Primary interface {
	RecipesByIDs(ctx context.Context, ids []string) []forkfuldb.Recipe
}

// External is the per-id external lookup.
type External interface {
	Lookup(ctx context.Context, id string) (forkfuldb.Recipe, bool)
}

// New creates a Catalog over the two sources.
func New(primary Primary, external External) *Catalog {
	return &Catalog{primary: primary, external: external}
}

type Catalog struct {
	primary  Primary
	external External
}

// RecipesByIDs resolves ids against the primary store first, then looks
// up each id the store did not have against the external source. IDs
// found in neither are silently dropped. Output order matches input
// order.
func (c *Catalog) RecipesByIDs(ctx context.Context, ids []string) []forkfuldb.Recipe {
	if len(ids) == 0 {
		return nil
	}

	found := make(map[string]forkfuldb.Recipe, len(ids))
	for _, r := range c.primary.RecipesByIDs(ctx, ids) {
		found[r.ID] = r
	}
	for _, id := range ids {
		if _, ok := found[id]; ok {
			continue
		}
		if r, ok := c.external.Lookup(ctx, id); ok {
			found[id] = r
		}
	}

	results := make([]forkfuldb.Recipe, 0, len(ids))
	for _, id := range ids {
		if r, ok := found[id]; ok {
			results = append(results, r)
		}
	}
	return results
}
