// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package myrecipes

import (
	"encoding/json"
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
	"github.com/forkfulapp/forkful/internal/store"
)

func NewHandler(store *store.Store) *Handler {
	return &Handler{
		store: store,
	}
}

type Handler struct {
	store *store.Store
}

type response struct {
	Recipes []forkfuldb.Recipe `json:"recipes"`
}

// MyRecipes returns the recipes authored by the requesting user.
func (h *Handler) MyRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recipes := h.store.UserRecipes(ctx, firebaseauth.TokenFromContext(ctx).UID)
	if recipes == nil {
		recipes = []forkfuldb.Recipe{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response{Recipes: recipes})
}
