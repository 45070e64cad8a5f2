// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package getcomments

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

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
	Comments []forkfuldb.Comment `json:"comments"`
}

// GetComments returns the comments on a recipe, newest first.
func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	comments := h.store.Comments(r.Context(), chi.URLParam(r, "id"))
	if comments == nil {
		comments = []forkfuldb.Comment{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response{Comments: comments})
}
