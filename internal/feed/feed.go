// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

// Package feed owns the merged recipe feed for a user session. It pulls
// from the primary store until that source is exhausted and then from
// the external API, de-duplicating records as they are appended.
package feed

import (
	"context"
	"sync"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
)

// Filter selects the server-side ordering of the primary source.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterNewest    Filter = "newest"
	FilterMostLiked Filter = "most-liked"
	FilterTopRated  Filter = "top-rated"
)

// Valid reports whether f is a known filter value.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterNewest, FilterMostLiked, FilterTopRated:
		return true
	}
	return false
}

// Cursor is an opaque pagination token owned by the primary source. A
// nil cursor means the start of the collection.
type Cursor any

// Page is one page of primary-source results.
type Page struct {
	Recipes []forkfuldb.Recipe
	Cursor  Cursor
}

// PrimarySource is the gateway to the primary recipe store. Fetch
// failures are absorbed by the gateway and surface as an empty page.
type PrimarySource interface {
	FetchPage(ctx context.Context, filter Filter, pageSize int, cursor Cursor) Page
}

// ExternalSource is the gateway to the external recipe API. It has no
// stable pagination; every batch is an independent random sample and
// may repeat records across calls. Failures surface as a short or
// empty batch.
type ExternalSource interface {
	RandomBatch(ctx context.Context, count int) []forkfuldb.Recipe
}

// Patch is an out-of-band counter update for a single primary recipe,
// pushed by the live document feed. Nil fields are left untouched.
type Patch struct {
	RecipeID     string
	Likes        *int64
	CommentCount *int64
	AvgRating    *float64
}

// State is a point-in-time snapshot of the feed for rendering.
type State struct {
	Items            []forkfuldb.Recipe `json:"items"`
	Filter           Filter             `json:"filter"`
	Loading          bool               `json:"loading"`
	LoadingMore      bool               `json:"loadingMore"`
	PrimaryExhausted bool               `json:"primaryExhausted"`
}

// Feed is the aggregated recipe feed for one user session. All methods
// are safe for concurrent use.
type Feed struct {
	primary  PrimarySource
	external ExternalSource
	pageSize int

	mu           sync.Mutex
	items        []forkfuldb.Recipe
	cursor       Cursor
	filter       Filter
	loading      bool
	loadingMore  bool
	primaryDone  bool
	externalDone bool
	// generation is bumped on every reset so results of fetches that
	// were in flight across a refresh or filter change are dropped
	// instead of being appended to the replaced state.
	generation uint64
}

// New creates an empty feed over the two sources.
func New(primary PrimarySource, external ExternalSource, pageSize int) *Feed {
	return &Feed{
		primary:  primary,
		external: external,
		pageSize: pageSize,
		filter:   FilterAll,
	}
}

// Load performs the initial load under the active filter. Only the
// primary source is consulted; the external source is a fallback for
// pagination, never the first page.
func (f *Feed) Load(ctx context.Context) {
	f.mu.Lock()
	f.loading = true
	filter := f.filter
	gen := f.generation
	f.mu.Unlock()

	page := f.primary.FetchPage(ctx, filter, f.pageSize, nil)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.generation != gen {
		return
	}
	f.items = page.Recipes
	f.cursor = page.Cursor
	f.primaryDone = len(page.Recipes) < f.pageSize
	f.loading = false
}

// Refresh discards all feed state and re-runs the initial load under
// the current filter.
func (f *Feed) Refresh(ctx context.Context) {
	f.reset(f.Filter())
	f.Load(ctx)
}

// SetFilter switches the active filter, discarding items and cursor,
// and loads the first page under the new ordering.
func (f *Feed) SetFilter(ctx context.Context, filter Filter) {
	f.reset(filter)
	f.Load(ctx)
}

func (f *Feed) reset(filter Filter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil
	f.cursor = nil
	f.primaryDone = false
	f.externalDone = false
	f.filter = filter
	f.generation++
}

// LoadMore appends the next page to the feed. A call arriving while
// another load is in flight is dropped, not queued. Exhaustion of the
// primary source is detected by page size: a page shorter than the
// requested size ends the primary phase, so a final page of exactly
// pageSize records costs one extra, possibly empty, fetch.
func (f *Feed) LoadMore(ctx context.Context) {
	f.mu.Lock()
	if f.loadingMore {
		f.mu.Unlock()
		return
	}
	f.loadingMore = true
	gen := f.generation
	filter := f.filter
	cursor := f.cursor
	primaryDone := f.primaryDone
	externalDone := f.externalDone
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.loadingMore = false
		f.mu.Unlock()
	}()

	if !primaryDone {
		page := f.primary.FetchPage(ctx, filter, f.pageSize, cursor)

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.generation != gen {
			return
		}
		f.items = append(f.items, page.Recipes...)
		f.cursor = page.Cursor
		f.primaryDone = len(page.Recipes) < f.pageSize
		return
	}

	if externalDone {
		return
	}
	batch := f.external.RandomBatch(ctx, f.pageSize)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.generation != gen {
		return
	}
	f.items = append(f.items, f.dedupeLocked(batch)...)
}

// dedupeLocked filters an incoming external batch against ids already
// in the feed and against duplicates within the batch itself, keeping
// the first occurrence of each id. f.mu must be held.
func (f *Feed) dedupeLocked(batch []forkfuldb.Recipe) []forkfuldb.Recipe {
	seen := make(map[string]struct{}, len(f.items)+len(batch))
	for _, r := range f.items {
		seen[r.ID] = struct{}{}
	}
	unique := make([]forkfuldb.Recipe, 0, len(batch))
	for _, r := range batch {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}

// Items returns a copy of the current feed items in display order.
func (f *Feed) Items() []forkfuldb.Recipe {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]forkfuldb.Recipe, len(f.items))
	copy(items, f.items)
	return items
}

// Filter returns the active filter.
func (f *Feed) Filter() Filter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter
}

// Snapshot returns the feed state for rendering.
func (f *Feed) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]forkfuldb.Recipe, len(f.items))
	copy(items, f.items)
	return State{
		Items:            items,
		Filter:           f.filter,
		Loading:          f.loading,
		LoadingMore:      f.loadingMore,
		PrimaryExhausted: f.primaryDone,
	}
}

// AdjustLikes applies a signed delta to the likes counter of the
// matching primary-source item. External items carry no counters, so a
// miss or an external match is a no-op.
func (f *Feed) AdjustLikes(recipeID string, delta int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == recipeID && f.items[i].Source == forkfuldb.RecipeSourcePrimary {
			f.items[i].Likes += delta
		}
	}
}

// Apply overwrites counters on the matching item from an out-of-band
// document update. List order and all other fields are untouched.
func (f *Feed) Apply(p Patch) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID != p.RecipeID || f.items[i].Source != forkfuldb.RecipeSourcePrimary {
			continue
		}
		if p.Likes != nil {
			f.items[i].Likes = *p.Likes
		}
		if p.CommentCount != nil {
			f.items[i].CommentCount = *p.CommentCount
		}
		if p.AvgRating != nil {
			f.items[i].AvgRating = *p.AvgRating
		}
	}
}
