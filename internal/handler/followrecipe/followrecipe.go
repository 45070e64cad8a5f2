// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package followrecipe

import (
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5"

	"github.com/forkfulapp/forkful/internal/session"
)

func NewHandler(sessions *session.Manager) *Handler {
	return &Handler{
		sessions: sessions,
	}
}

type Handler struct {
	sessions *session.Manager
}

// Follow starts streaming live counter updates for the recipe into the
// user's feed state, typically while its detail screen is open.
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.sessions.Session(ctx, firebaseauth.TokenFromContext(ctx).UID)
	sess.FollowRecipe(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Unfollow stops the live updates for the recipe.
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.sessions.Session(ctx, firebaseauth.TokenFromContext(ctx).UID)
	sess.UnfollowRecipe(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
