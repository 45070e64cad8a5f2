// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

// Package mealdb is a client for TheMealDB public recipe API. The API
// exposes no stable pagination; random.php returns one random meal per
// call and may repeat meals across calls.
//
// Read failures are logged and degrade to empty results so a partial
// feed is shown instead of an error.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
)

// DefaultBaseURL is the public TheMealDB API endpoint.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// Attribution constants for external recipes; the provider is not a
// real user.
const (
	providerName    = "TheMealDB"
	providerPicture = "https://www.themealdb.com/images/logo-small.png"
)

// Up to 20 numbered ingredient/measure field pairs per meal record.
const maxIngredientSlots = 20

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// RandomBatch fetches count independently random recipes in parallel.
// Individual failed fetches are skipped, so the batch may be short. The
// same meal can appear more than once; de-duplication is the caller's
// concern.
func (c *Client) RandomBatch(ctx context.Context, count int) []forkfuldb.Recipe {
	results := make([]*forkfuldb.Recipe, count)
	var g errgroup.Group
	for i := range count {
		g.Go(func() error {
			meals, err := c.meals(ctx, "/random.php")
			if err != nil {
				slog.WarnContext(ctx, "mealdb: fetching random meal", "error", err)
				return nil
			}
			if len(meals) > 0 {
				r := mapMeal(meals[0])
				results[i] = &r
			}
			return nil
		})
	}
	_ = g.Wait()

	recipes := make([]forkfuldb.Recipe, 0, count)
	for _, r := range results {
		if r != nil {
			recipes = append(recipes, *r)
		}
	}
	return recipes
}

// Search queries the provider-side substring search on meal names.
func (c *Client) Search(ctx context.Context, term string) []forkfuldb.Recipe {
	meals, err := c.meals(ctx, "/search.php?s="+url.QueryEscape(term))
	if err != nil {
		slog.WarnContext(ctx, "mealdb: searching meals", "term", term, "error", err)
		return nil
	}
	recipes := make([]forkfuldb.Recipe, len(meals))
	for i, m := range meals {
		recipes[i] = mapMeal(m)
	}
	return recipes
}

// Lookup fetches a single meal by its provider ID. The second return is
// false if the meal does not exist or the fetch failed.
func (c *Client) Lookup(ctx context.Context, id string) (forkfuldb.Recipe, bool) {
	meals, err := c.meals(ctx, "/lookup.php?i="+url.QueryEscape(id))
	if err != nil {
		slog.WarnContext(ctx, "mealdb: looking up meal", "id", id, "error", err)
		return forkfuldb.Recipe{}, false
	}
	if len(meals) == 0 {
		return forkfuldb.Recipe{}, false
	}
	return mapMeal(meals[0]), true
}

func (c *Client) meals(ctx context.Context, path string) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("mealdb: creating request: %w", err)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mealdb: sending request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mealdb: unexpected status %d", res.StatusCode)
	}

	// The API returns {"meals": null} rather than an empty list when
	// nothing matches.
	var body struct {
		Meals []map[string]any `json:"meals"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("mealdb: decoding response: %w", err)
	}
	return body.Meals, nil
}

// mapMeal normalizes a raw meal record into a Recipe. Records missing
// fields are kept with those fields zeroed; callers tolerate partial
// records from this source.
func mapMeal(meal map[string]any) forkfuldb.Recipe {
	var ingredients []forkfuldb.RecipeIngredient
	for i := 1; i <= maxIngredientSlots; i++ {
		item := strings.TrimSpace(str(meal, fmt.Sprintf("strIngredient%d", i)))
		if item == "" {
			continue
		}
		ingredients = append(ingredients, forkfuldb.RecipeIngredient{
			Item:    item,
			Serving: strings.TrimSpace(str(meal, fmt.Sprintf("strMeasure%d", i))),
		})
	}

	return forkfuldb.Recipe{
		ID:             str(meal, "idMeal"),
		Source:         forkfuldb.RecipeSourceExternal,
		Title:          str(meal, "strMeal"),
		ImageURL:       str(meal, "strMealThumb"),
		Ingredients:    ingredients,
		Steps:          str(meal, "strInstructions"),
		Username:       providerName,
		ProfilePicture: providerPicture,
		CreatedAt:      time.Unix(0, 0).UTC(),
	}
}

func str(meal map[string]any, key string) string {
	if v, ok := meal[key].(string); ok {
		return v
	}
	return ""
}
