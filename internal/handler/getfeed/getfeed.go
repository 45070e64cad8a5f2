// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package getfeed

import (
	"encoding/json"
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/forkfulapp/forkful/internal/feed"
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

type response struct {
	feed.State
	LikedIDs []string `json:"likedIds"`
}

// GetFeed returns the current feed state and liked recipe IDs for the
// requesting user, creating the session on first use.
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.sessions.Session(ctx, firebaseauth.TokenFromContext(ctx).UID)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response{
		State:    sess.Feed.Snapshot(),
		LikedIDs: sess.Likes.LikedIDs(),
	})
}
