// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package togglelike

import (
	"encoding/json"
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
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

type request struct {
	RecipeID string                 `json:"recipeId"`
	Source   forkfuldb.RecipeSource `json:"source"`
}

type response struct {
	Liked bool `json:"liked"`
}

// ToggleLike flips the liked state of a recipe for the requesting user.
// The response reflects the optimistic local state; backend
// confirmation happens in the background.
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.RecipeID == "" {
		http.Error(w, "recipeId required", http.StatusBadRequest)
		return
	}
	if req.Source == "" {
		req.Source = forkfuldb.RecipeSourcePrimary
	}
	if req.Source != forkfuldb.RecipeSourcePrimary && req.Source != forkfuldb.RecipeSourceExternal {
		http.Error(w, "unknown source", http.StatusBadRequest)
		return
	}

	sess := h.sessions.Session(ctx, firebaseauth.TokenFromContext(ctx).UID)
	sess.Coordinator.Toggle(ctx, req.RecipeID, req.Source)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response{Liked: sess.Likes.IsLiked(req.RecipeID)})
}
