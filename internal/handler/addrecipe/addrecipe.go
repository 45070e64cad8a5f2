// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package addrecipe

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/forkfulapp/forkful/internal/blob"
	"github.com/forkfulapp/forkful/internal/forkfuldb"
	"github.com/forkfulapp/forkful/internal/store"
)

func NewHandler(store *store.Store, blobs *blob.Store) *Handler {
	return &Handler{
		store: store,
		blobs: blobs,
	}
}

type Handler struct {
	store *store.Store
	blobs *blob.Store
}

type request struct {
	Title        string                       `json:"title"`
	Caption      string                       `json:"caption"`
	Ingredients  []forkfuldb.RecipeIngredient `json:"ingredients"`
	Steps        string                       `json:"steps"`
	ImageDataURL string                       `json:"imageDataUrl"`
}

type response struct {
	RecipeID string `json:"recipeId"`
}

// AddRecipe stores a user-submitted recipe. The image arrives as a
// data URL, already compressed by the client, and is written to the
// public bucket before the recipe document is created with zeroed
// counters.
func (h *Handler) AddRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := firebaseauth.TokenFromContext(ctx).UID

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		http.Error(w, "title required", http.StatusBadRequest)
		return
	}

	recipe := forkfuldb.Recipe{
		Title:       strings.TrimSpace(req.Title),
		Caption:     strings.TrimSpace(req.Caption),
		Ingredients: req.Ingredients,
		Steps:       strings.TrimSpace(req.Steps),
		UserID:      uid,
	}
	if req.ImageDataURL != "" {
		url, err := h.blobs.SaveImage(ctx, fmt.Sprintf("recipes/%d_%s", time.Now().UnixMilli(), uid), req.ImageDataURL)
		if err != nil {
			slog.ErrorContext(ctx, "addrecipe: saving image", "error", err)
			http.Error(w, "saving image failed", http.StatusInternalServerError)
			return
		}
		recipe.ImageURL = url
	}

	id, err := h.store.AddRecipe(ctx, recipe)
	if err != nil {
		slog.ErrorContext(ctx, "addrecipe: creating recipe", "error", err)
		http.Error(w, "creating recipe failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response{RecipeID: id})
}
