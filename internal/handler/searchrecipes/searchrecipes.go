// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package searchrecipes

import (
	"encoding/json"
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
	"github.com/forkfulapp/forkful/internal/search"
	"github.com/forkfulapp/forkful/internal/session"
)

func NewHandler(dispatcher *search.Dispatcher, sessions *session.Manager) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		sessions:   sessions,
	}
}

type Handler struct {
	dispatcher *search.Dispatcher
	sessions   *session.Manager
}

type response struct {
	Results []forkfuldb.Recipe `json:"results"`
}

// SearchRecipes resolves the q query parameter through the source
// fallback chain, consulting the user's in-memory feed between the
// primary store and the external API.
func (h *Handler) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.sessions.Session(ctx, firebaseauth.TokenFromContext(ctx).UID)
	results := h.dispatcher.Search(ctx, r.URL.Query().Get("q"), sess.Feed.Items())
	if results == nil {
		results = []forkfuldb.Recipe{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response{Results: results})
}
