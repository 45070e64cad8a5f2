// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
)

type stubSearcher struct {
	results []forkfuldb.Recipe
	calls   int
}

func (s *stubSearcher) Search(_ context.Context, _ string) []forkfuldb.Recipe {
	s.calls++
	return s.results
}

func rec(id, title string, source forkfuldb.RecipeSource) forkfuldb.Recipe {
	return forkfuldb.Recipe{ID: id, Title: title, Source: source}
}

func TestSearch_PrimaryWins(t *testing.T) {
	t.Parallel()

	primary := &stubSearcher{results: []forkfuldb.Recipe{rec("p1", "Chicken Curry", forkfuldb.RecipeSourcePrimary)}}
	external := &stubSearcher{results: []forkfuldb.Recipe{rec("e1", "Chicken Soup", forkfuldb.RecipeSourceExternal)}}
	d := NewDispatcher(primary, external)

	feedItems := []forkfuldb.Recipe{rec("f1", "Chicken Pie", forkfuldb.RecipeSourcePrimary)}
	results := d.Search(context.Background(), "Chicken", feedItems)

	require.Equal(t, []forkfuldb.Recipe{rec("p1", "Chicken Curry", forkfuldb.RecipeSourcePrimary)}, results)
	// Lower-priority sources are not consulted once a source matches.
	require.Zero(t, external.calls)
}

func TestSearch_FallsBackToFeedItems(t *testing.T) {
	t.Parallel()

	primary := &stubSearcher{}
	external := &stubSearcher{results: []forkfuldb.Recipe{rec("e1", "Stew", forkfuldb.RecipeSourceExternal)}}
	d := NewDispatcher(primary, external)

	feedItems := []forkfuldb.Recipe{
		rec("f1", "Beef Stew", forkfuldb.RecipeSourcePrimary),
		rec("f2", "Pancakes", forkfuldb.RecipeSourcePrimary),
	}
	results := d.Search(context.Background(), "stew", feedItems)

	require.Len(t, results, 1)
	require.Equal(t, "f1", results[0].ID)
	require.Zero(t, external.calls)
}

func TestSearch_FeedMatchIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(&stubSearcher{}, &stubSearcher{})

	feedItems := []forkfuldb.Recipe{rec("f1", "Tiramisu", forkfuldb.RecipeSourcePrimary)}
	results := d.Search(context.Background(), "TIRA", feedItems)

	require.Len(t, results, 1)
	require.Equal(t, "f1", results[0].ID)
}

func TestSearch_UntaggedFeedItemsGetLocalSource(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(&stubSearcher{}, &stubSearcher{})

	feedItems := []forkfuldb.Recipe{
		{ID: "f1", Title: "Ramen"},
		rec("f2", "Ramen Bowl", forkfuldb.RecipeSourceExternal),
	}
	results := d.Search(context.Background(), "ramen", feedItems)

	require.Len(t, results, 2)
	require.Equal(t, forkfuldb.RecipeSourceLocal, results[0].Source)
	// Already-tagged items keep their source.
	require.Equal(t, forkfuldb.RecipeSourceExternal, results[1].Source)
}

func TestSearch_FallsBackToExternal(t *testing.T) {
	t.Parallel()

	primary := &stubSearcher{}
	external := &stubSearcher{results: []forkfuldb.Recipe{rec("e1", "Paella", forkfuldb.RecipeSourceExternal)}}
	d := NewDispatcher(primary, external)

	results := d.Search(context.Background(), "paella", nil)

	require.Equal(t, 1, primary.calls)
	require.Equal(t, 1, external.calls)
	require.Equal(t, "e1", results[0].ID)
}

func TestSearch_AllSourcesEmpty(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(&stubSearcher{}, &stubSearcher{})
	require.Empty(t, d.Search(context.Background(), "nothing", nil))
}

func TestSearch_BlankTermSkipsSources(t *testing.T) {
	t.Parallel()

	primary := &stubSearcher{results: []forkfuldb.Recipe{rec("p1", "Anything", forkfuldb.RecipeSourcePrimary)}}
	external := &stubSearcher{}
	d := NewDispatcher(primary, external)

	require.Empty(t, d.Search(context.Background(), "   ", nil))
	require.Zero(t, primary.calls)
	require.Zero(t, external.calls)
}
