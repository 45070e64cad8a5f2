// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package loadmore

import (
	"encoding/json"
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

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

// LoadMore appends the next feed page and returns the new feed state. A
// request arriving while another page load is in flight returns the
// unchanged state.
func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.sessions.Session(ctx, firebaseauth.TokenFromContext(ctx).UID)
	sess.Feed.LoadMore(ctx)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sess.Feed.Snapshot())
}
