// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

// Package session owns the per-user feed and likes state. A session is
// created on the first authenticated request for a user and discarded
// on sign-out; its services are injected into handlers rather than
// living as ambient globals.
package session

import (
	"context"
	"sync"

	"github.com/forkfulapp/forkful/internal/feed"
	"github.com/forkfulapp/forkful/internal/likes"
)

// LikesLoader is the one-shot fetch of a user's liked recipe IDs.
type LikesLoader interface {
	UserLikes(ctx context.Context, uid string) []string
}

// Patcher streams out-of-band counter updates for a recipe document.
type Patcher interface {
	RecipePatches(ctx context.Context, recipeID string) <-chan feed.Patch
}

// Session is the state owned by one signed-in user.
type Session struct {
	UID         string
	Feed        *feed.Feed
	Likes       *likes.Index
	Coordinator *likes.Coordinator

	patcher Patcher

	mu      sync.Mutex
	root    context.Context
	cancel  context.CancelFunc
	watches map[string]context.CancelFunc
}

// FollowRecipe starts merging live document updates for the recipe into
// feed state. Following an already-followed recipe is a no-op.
func (s *Session) FollowRecipe(recipeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watches[recipeID]; ok {
		return
	}
	ctx, cancel := context.WithCancel(s.root)
	s.watches[recipeID] = cancel
	patches := s.patcher.RecipePatches(ctx, recipeID)
	go func() {
		for p := range patches {
			s.Feed.Apply(p)
		}
	}()
}

// UnfollowRecipe stops the live updates for the recipe.
func (s *Session) UnfollowRecipe(recipeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.watches[recipeID]; ok {
		cancel()
		delete(s.watches, recipeID)
	}
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel()
	s.watches = map[string]context.CancelFunc{}
}

// Manager creates and tracks sessions by user ID.
type Manager struct {
	primary  feed.PrimarySource
	external feed.ExternalSource
	loader   LikesLoader
	backend  likes.Backend
	patcher  Patcher
	pageSize int

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager over the recipe sources and the
// likes backend.
func NewManager(primary feed.PrimarySource, external feed.ExternalSource, loader LikesLoader, backend likes.Backend, patcher Patcher, pageSize int) *Manager {
	return &Manager{
		primary:  primary,
		external: external,
		loader:   loader,
		backend:  backend,
		patcher:  patcher,
		pageSize: pageSize,
		sessions: map[string]*Session{},
	}
}

// Session returns the session for uid, creating it on first use. On
// creation the likes index is loaded and the feed performs its initial
// load, so the first request pays the session-start cost.
func (m *Manager) Session(ctx context.Context, uid string) *Session {
	m.mu.Lock()
	if s, ok := m.sessions[uid]; ok {
		m.mu.Unlock()
		return s
	}

	root, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f := feed.New(m.primary, m.external, m.pageSize)
	ix := likes.NewIndex()
	s := &Session{
		UID:         uid,
		Feed:        f,
		Likes:       ix,
		Coordinator: likes.NewCoordinator(uid, ix, f, m.backend),
		patcher:     m.patcher,
		root:        root,
		cancel:      cancel,
		watches:     map[string]context.CancelFunc{},
	}
	m.sessions[uid] = s
	m.mu.Unlock()

	s.Likes.Load(m.loader.UserLikes(ctx, uid))
	s.Feed.Load(ctx)
	return s
}

// Evict tears down the session for uid, stopping its watches. Feed and
// likes state are discarded.
func (m *Manager) Evict(uid string) {
	m.mu.Lock()
	s, ok := m.sessions[uid]
	delete(m.sessions, uid)
	m.mu.Unlock()
	if ok {
		s.close()
	}
}
