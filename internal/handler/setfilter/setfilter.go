// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package setfilter

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

type request struct {
	Filter feed.Filter `json:"filter"`
}

// SetFilter switches the active feed filter, discarding items and
// cursor, and returns the first page under the new ordering.
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Filter.Valid() {
		http.Error(w, "unknown filter", http.StatusBadRequest)
		return
	}

	sess := h.sessions.Session(ctx, firebaseauth.TokenFromContext(ctx).UID)
	sess.Feed.SetFilter(ctx, req.Filter)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sess.Feed.Snapshot())
}
