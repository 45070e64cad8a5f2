// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package getprofile

import (
	"encoding/json"
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

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

// GetProfile returns the requesting user's profile document.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := h.store.User(ctx, firebaseauth.TokenFromContext(ctx).UID)
	if !ok {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
