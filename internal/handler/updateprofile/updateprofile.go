// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package updateprofile

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/forkfulapp/forkful/internal/blob"
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
	Username       string `json:"username"`
	PictureDataURL string `json:"pictureDataUrl"`
}

// UpdateProfile updates the requesting user's display name and profile
// picture. Empty fields are left untouched.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := firebaseauth.TokenFromContext(ctx).UID

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var updates []firestore.Update
	if username := strings.TrimSpace(req.Username); username != "" {
		updates = append(updates, firestore.Update{Path: "username", Value: username})
	}
	if req.PictureDataURL != "" {
		url, err := h.blobs.SaveImage(ctx, "profile-pictures/"+uid, req.PictureDataURL)
		if err != nil {
			slog.ErrorContext(ctx, "updateprofile: saving picture", "error", err)
			http.Error(w, "saving picture failed", http.StatusInternalServerError)
			return
		}
		updates = append(updates, firestore.Update{Path: "profilePicture", Value: url})
	}
	if len(updates) == 0 {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	if err := h.store.UpdateUser(ctx, uid, updates); err != nil {
		slog.ErrorContext(ctx, "updateprofile: updating user", "error", err)
		http.Error(w, "updating profile failed", http.StatusInternalServerError)
		return
	}

	user, _ := h.store.User(ctx, uid)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
