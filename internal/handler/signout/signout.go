// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package signout

import (
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

// SignOut discards the user's session state. Feed and likes are rebuilt
// on the next sign-in.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.sessions.Evict(firebaseauth.TokenFromContext(r.Context()).UID)
	w.WriteHeader(http.StatusNoContent)
}
