// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package getrecipe

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
	"github.com/forkfulapp/forkful/internal/mealdb"
	"github.com/forkfulapp/forkful/internal/store"
)

func NewHandler(store *store.Store, meals *mealdb.Client) *Handler {
	return &Handler{
		store: store,
		meals: meals,
	}
}

type Handler struct {
	store *store.Store
	meals *mealdb.Client
}

// GetRecipe fetches a single recipe by ID. The source query parameter
// selects the origin; it defaults to the primary store.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var recipe forkfuldb.Recipe
	var ok bool
	if forkfuldb.RecipeSource(r.URL.Query().Get("source")) == forkfuldb.RecipeSourceExternal {
		recipe, ok = h.meals.Lookup(ctx, id)
	} else {
		recipe, ok = h.store.Recipe(ctx, id)
	}
	if !ok {
		http.Error(w, "recipe not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(recipe)
}
