// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package mealdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
)

func TestLookup_CompactsIngredients(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/lookup.php", r.URL.Path)
		require.Equal(t, "52772", r.URL.Query().Get("i"))
		_, _ = w.Write([]byte(`{"meals":[{
			"idMeal":"52772",
			"strMeal":"Teriyaki Chicken Casserole",
			"strMealThumb":"https://example.test/meal.jpg",
			"strInstructions":"Preheat oven.",
			"strIngredient1":"Chicken","strMeasure1":"200g",
			"strIngredient2":"Salt","strMeasure2":"",
			"strIngredient3":"","strMeasure3":"1 tsp",
			"strIngredient4":null,"strMeasure4":null
		}]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, srv.Client())
	recipe, ok := c.Lookup(context.Background(), "52772")
	require.True(t, ok)

	require.Equal(t, "52772", recipe.ID)
	require.Equal(t, forkfuldb.RecipeSourceExternal, recipe.Source)
	require.Equal(t, "Teriyaki Chicken Casserole", recipe.Title)
	require.Equal(t, "Preheat oven.", recipe.Steps)
	require.Equal(t, "TheMealDB", recipe.Username)
	require.Equal(t, time.Unix(0, 0).UTC(), recipe.CreatedAt)
	// Slot 3 is dropped: an empty ingredient name loses its measure.
	require.Equal(t, []forkfuldb.RecipeIngredient{
		{Item: "Chicken", Serving: "200g"},
		{Item: "Salt", Serving: ""},
	}, recipe.Ingredients)
}

func TestLookup_MissingMeal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, srv.Client())
	_, ok := c.Lookup(context.Background(), "999")
	require.False(t, ok)
}

func TestLookup_PartialRecordKept(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"meals":[{"strIngredient1":"Rice"}]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, srv.Client())
	recipe, ok := c.Lookup(context.Background(), "1")
	require.True(t, ok)
	// A record without id or title is still returned with those fields
	// empty.
	require.Empty(t, recipe.ID)
	require.Empty(t, recipe.Title)
	require.Equal(t, []forkfuldb.RecipeIngredient{{Item: "Rice", Serving: ""}}, recipe.Ingredients)
}

func TestSearch_NoMatches(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search.php", r.URL.Path)
		require.Equal(t, "xyzzy", r.URL.Query().Get("s"))
		_, _ = w.Write([]byte(`{"meals":null}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, srv.Client())
	require.Empty(t, c.Search(context.Background(), "xyzzy"))
}

func TestSearch_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, srv.Client())
	// Failures degrade to an empty result, never an error.
	require.Empty(t, c.Search(context.Background(), "chicken"))
}

func TestRandomBatch(t *testing.T) {
	t.Parallel()

	var n atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/random.php", r.URL.Path)
		// The same meal can be returned on every call; de-duplication
		// is the caller's concern.
		_ = n.Add(1)
		_, _ = w.Write([]byte(`{"meals":[{"idMeal":"1","strMeal":"Stew"}]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, srv.Client())
	batch := c.RandomBatch(context.Background(), 3)
	require.Len(t, batch, 3)
	require.Equal(t, int64(3), n.Load())
	for _, r := range batch {
		require.Equal(t, "1", r.ID)
		require.Equal(t, forkfuldb.RecipeSourceExternal, r.Source)
	}
}

func TestRandomBatch_SkipsFailedFetches(t *testing.T) {
	t.Parallel()

	var n atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if n.Add(1)%2 == 0 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"meals":[{"idMeal":"7","strMeal":"Soup"}]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, srv.Client())
	batch := c.RandomBatch(context.Background(), 4)
	require.Len(t, batch, 2)
}
