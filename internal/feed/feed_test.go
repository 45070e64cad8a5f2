// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package feed

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func rec(id string, source forkfuldb.RecipeSource) forkfuldb.Recipe {
	return forkfuldb.Recipe{ID: id, Source: source, Title: "recipe " + id}
}

type primaryCall struct {
	filter Filter
	cursor Cursor
}

// stubPrimary serves queued pages in order and records every call.
type stubPrimary struct {
	mu    sync.Mutex
	pages []Page
	calls []primaryCall
}

func (s *stubPrimary) FetchPage(_ context.Context, filter Filter, _ int, cursor Cursor) Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, primaryCall{filter: filter, cursor: cursor})
	if len(s.pages) == 0 {
		return Page{Cursor: cursor}
	}
	page := s.pages[0]
	s.pages = s.pages[1:]
	return page
}

func (s *stubPrimary) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// stubExternal serves queued random batches in order.
type stubExternal struct {
	mu      sync.Mutex
	batches [][]forkfuldb.Recipe
	calls   int
}

func (s *stubExternal) RandomBatch(_ context.Context, _ int) []forkfuldb.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.batches) == 0 {
		return nil
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch
}

func (s *stubExternal) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func requireNoDuplicates(t *testing.T, items []forkfuldb.Recipe) {
	t.Helper()
	type key struct {
		id     string
		source forkfuldb.RecipeSource
	}
	seen := map[key]struct{}{}
	for _, r := range items {
		k := key{id: r.ID, source: r.Source}
		_, ok := seen[k]
		require.False(t, ok, "duplicate item %v", k)
		seen[k] = struct{}{}
	}
}

func TestLoad_OnlyPrimary(t *testing.T) {
	t.Parallel()

	primary := &stubPrimary{pages: []Page{
		{Recipes: []forkfuldb.Recipe{rec("p1", forkfuldb.RecipeSourcePrimary)}},
	}}
	external := &stubExternal{}
	f := New(primary, external, 2)

	f.Load(context.Background())

	require.Equal(t, 1, primary.callCount())
	require.Zero(t, external.callCount())
	require.Len(t, f.Items(), 1)
	// Short first page already exhausts the primary source.
	require.True(t, f.Snapshot().PrimaryExhausted)
}

func TestLoadMore_ExhaustionTransition(t *testing.T) {
	t.Parallel()

	primary := &stubPrimary{pages: []Page{
		{Recipes: []forkfuldb.Recipe{rec("p1", forkfuldb.RecipeSourcePrimary), rec("p2", forkfuldb.RecipeSourcePrimary)}, Cursor: "c1"},
		{Recipes: []forkfuldb.Recipe{rec("p3", forkfuldb.RecipeSourcePrimary)}, Cursor: "c2"},
	}}
	external := &stubExternal{batches: [][]forkfuldb.Recipe{
		{rec("e1", forkfuldb.RecipeSourceExternal)},
	}}
	f := New(primary, external, 2)

	f.Load(context.Background())
	require.False(t, f.Snapshot().PrimaryExhausted)
	require.Zero(t, external.callCount())

	// Second page is short, so the primary source is exhausted only
	// after this call.
	f.LoadMore(context.Background())
	require.True(t, f.Snapshot().PrimaryExhausted)
	require.Zero(t, external.callCount())
	require.Equal(t, 2, primary.callCount())
	// The page cursor is threaded through unchanged.
	require.Equal(t, Cursor("c1"), primary.calls[1].cursor)

	// Only now does pagination fall through to the external source.
	f.LoadMore(context.Background())
	require.Equal(t, 2, primary.callCount())
	require.Equal(t, 1, external.callCount())
	require.Equal(t, []string{"p1", "p2", "p3", "e1"}, itemIDs(f.Items()))
}

func itemIDs(items []forkfuldb.Recipe) []string {
	ids := make([]string, len(items))
	for i, r := range items {
		ids[i] = r.ID
	}
	return ids
}

func TestLoadMore_DeduplicatesExternal(t *testing.T) {
	t.Parallel()

	primary := &stubPrimary{pages: []Page{
		{Recipes: []forkfuldb.Recipe{rec("p1", forkfuldb.RecipeSourcePrimary)}},
	}}
	external := &stubExternal{batches: [][]forkfuldb.Recipe{
		// Batch repeats an existing feed id and contains an internal
		// duplicate.
		{rec("e1", forkfuldb.RecipeSourceExternal), rec("p1", forkfuldb.RecipeSourceExternal), rec("e1", forkfuldb.RecipeSourceExternal)},
		// Next call repeats a previously merged external id.
		{rec("e1", forkfuldb.RecipeSourceExternal), rec("e2", forkfuldb.RecipeSourceExternal)},
	}}
	f := New(primary, external, 2)

	f.Load(context.Background())
	f.LoadMore(context.Background())
	f.LoadMore(context.Background())

	require.Equal(t, []string{"p1", "e1", "e2"}, itemIDs(f.Items()))
	requireNoDuplicates(t, f.Items())
}

func TestLoadMore_ExternalNeverExhausts(t *testing.T) {
	t.Parallel()

	primary := &stubPrimary{}
	external := &stubExternal{}
	f := New(primary, external, 2)

	f.Load(context.Background())
	for range 5 {
		f.LoadMore(context.Background())
	}
	// Empty random batches do not stop the external phase.
	require.Equal(t, 5, external.callCount())
}

func TestSetFilter_ReplacesState(t *testing.T) {
	t.Parallel()

	primary := &stubPrimary{pages: []Page{
		{Recipes: []forkfuldb.Recipe{rec("p1", forkfuldb.RecipeSourcePrimary), rec("p2", forkfuldb.RecipeSourcePrimary)}, Cursor: "c1"},
		{Recipes: []forkfuldb.Recipe{
			{ID: "p9", Source: forkfuldb.RecipeSourcePrimary, Likes: 10},
			{ID: "p8", Source: forkfuldb.RecipeSourcePrimary, Likes: 3},
		}, Cursor: "c2"},
	}}
	f := New(primary, &stubExternal{}, 2)

	f.Load(context.Background())
	f.SetFilter(context.Background(), FilterMostLiked)

	require.Equal(t, FilterMostLiked, f.Filter())
	// The first page under the new filter starts from the beginning.
	require.Equal(t, FilterMostLiked, primary.calls[1].filter)
	require.Nil(t, primary.calls[1].cursor)
	require.Equal(t, []string{"p9", "p8"}, itemIDs(f.Items()))

	likes := f.Items()
	require.GreaterOrEqual(t, likes[0].Likes, likes[1].Likes)
}

func TestLoadMore_SingleFlight(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	primary := &blockingPrimary{started: started, release: release}
	f := New(primary, &stubExternal{}, 2)

	go f.LoadMore(context.Background())
	<-started

	// A load-more arriving while one is in flight is dropped.
	f.LoadMore(context.Background())
	close(release)

	require.Eventually(t, func() bool { return !f.Snapshot().LoadingMore }, waitFor, tick)
	require.Equal(t, 1, primary.callCount())
}

func TestRefresh_DropsLateResults(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	primary := &blockingPrimary{started: started, release: release}
	f := New(primary, &stubExternal{}, 2)

	done := make(chan struct{})
	go func() {
		f.LoadMore(context.Background())
		close(done)
	}()
	<-started

	// The reset replaces feed state while the page fetch is still in
	// flight; the late result must not be appended.
	f.reset(f.Filter())
	close(release)
	<-done

	require.Empty(t, f.Items())
}

func TestApply_PatchesCountersInPlace(t *testing.T) {
	t.Parallel()

	primary := &stubPrimary{pages: []Page{
		{Recipes: []forkfuldb.Recipe{
			rec("p1", forkfuldb.RecipeSourcePrimary),
			rec("x", forkfuldb.RecipeSourcePrimary),
			rec("x", forkfuldb.RecipeSourceExternal),
		}},
	}}
	f := New(primary, &stubExternal{}, 3)
	f.Load(context.Background())

	likes := int64(7)
	rating := 4.5
	f.Apply(Patch{RecipeID: "x", Likes: &likes, AvgRating: &rating})

	items := f.Items()
	require.Equal(t, []string{"p1", "x", "x"}, itemIDs(items))
	require.Zero(t, items[0].Likes)
	require.Equal(t, int64(7), items[1].Likes)
	require.Equal(t, 4.5, items[1].AvgRating)
	// External records carry no counters and are never patched.
	require.Zero(t, items[2].Likes)
}

func TestAdjustLikes_PrimaryOnly(t *testing.T) {
	t.Parallel()

	primary := &stubPrimary{pages: []Page{
		{Recipes: []forkfuldb.Recipe{
			rec("p1", forkfuldb.RecipeSourcePrimary),
			rec("e1", forkfuldb.RecipeSourceExternal),
		}},
	}}
	f := New(primary, &stubExternal{}, 2)
	f.Load(context.Background())

	f.AdjustLikes("p1", 1)
	f.AdjustLikes("e1", 1)

	items := f.Items()
	require.Equal(t, int64(1), items[0].Likes)
	require.Zero(t, items[1].Likes)
}

// blockingPrimary blocks each fetch until released, signalling starts.
type blockingPrimary struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
}

func (b *blockingPrimary) FetchPage(_ context.Context, _ Filter, _ int, cursor Cursor) Page {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	b.started <- struct{}{}
	<-b.release
	return Page{Recipes: []forkfuldb.Recipe{rec("late", forkfuldb.RecipeSourcePrimary)}, Cursor: cursor}
}

func (b *blockingPrimary) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}
