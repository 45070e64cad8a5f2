// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package addcomment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5"

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

type request struct {
	Comment string  `json:"comment"`
	Rating  float64 `json:"rating"`
}

// AddComment stores a comment with its rating and updates the recipe's
// comment counter and average rating. Other viewers observe the new
// counters through the live document feed.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Comment) == "" {
		http.Error(w, "comment required", http.StatusBadRequest)
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		http.Error(w, "rating must be between 0 and 5", http.StatusBadRequest)
		return
	}

	uid := firebaseauth.TokenFromContext(ctx).UID
	if err := h.store.AddComment(ctx, chi.URLParam(r, "id"), uid, strings.TrimSpace(req.Comment), req.Rating); err != nil {
		slog.ErrorContext(ctx, "addcomment: saving comment", "error", err)
		http.Error(w, "saving comment failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
