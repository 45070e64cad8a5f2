// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package likedrecipes

import (
	"encoding/json"
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/forkfulapp/forkful/internal/catalog"
	"github.com/forkfulapp/forkful/internal/forkfuldb"
	"github.com/forkfulapp/forkful/internal/session"
)

func NewHandler(catalog *catalog.Catalog, sessions *session.Manager) *Handler {
	return &Handler{
		catalog:  catalog,
		sessions: sessions,
	}
}

type Handler struct {
	catalog  *catalog.Catalog
	sessions *session.Manager
}

type response struct {
	Recipes []forkfuldb.Recipe `json:"recipes"`
}

// LikedRecipes resolves the user's liked recipe IDs against both
// sources. IDs that no longer exist anywhere are dropped.
func (h *Handler) LikedRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.sessions.Session(ctx, firebaseauth.TokenFromContext(ctx).UID)
	recipes := h.catalog.RecipesByIDs(ctx, sess.Likes.LikedIDs())
	if recipes == nil {
		recipes = []forkfuldb.Recipe{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response{Recipes: recipes})
}
