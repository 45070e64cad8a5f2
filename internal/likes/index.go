// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

// Package likes tracks which recipes the current user has liked and
// coordinates optimistic like toggles with the backend.
package likes

import "sync"

// Index is the set of recipe IDs liked by one user, spanning both
// recipe sources. Membership is the single source of truth for the
// liked state shown in the UI and is updated before any backend
// confirmation.
type Index struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{ids: map[string]struct{}{}}
}

// Load replaces the set with the given IDs from a one-shot full fetch
// at session start.
func (ix *Index) Load(ids []string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		ix.ids[id] = struct{}{}
	}
}

// IsLiked reports whether the recipe is liked.
func (ix *Index) IsLiked(id string) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	_, ok := ix.ids[id]
	return ok
}

// LikedIDs returns the liked recipe IDs in unspecified order.
func (ix *Index) LikedIDs() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	ids := make([]string, 0, len(ix.ids))
	for id := range ix.ids {
		ids = append(ids, id)
	}
	return ids
}

// toggle flips membership of id and reports whether it was liked
// before the flip.
func (ix *Index) toggle(id string) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.ids[id]; ok {
		delete(ix.ids, id)
		return true
	}
	ix.ids[id] = struct{}{}
	return false
}
