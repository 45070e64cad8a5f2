// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package likes

import (
	"context"
	"log/slog"

	"github.com/cenkalti/backoff/v5"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
)

// Backend persists like records and primary-recipe counter deltas.
type Backend interface {
	AddLike(ctx context.Context, uid, recipeID string, source forkfuldb.RecipeSource) error
	RemoveLike(ctx context.Context, uid, recipeID string, source forkfuldb.RecipeSource) error
}

// FeedCounters is the slice of feed state the coordinator mutates.
type FeedCounters interface {
	AdjustLikes(recipeID string, delta int64)
}

const persistTries = 3

// Coordinator applies optimistic like toggles to the index and feed
// state, then confirms them with the backend.
type Coordinator struct {
	uid     string
	index   *Index
	feed    FeedCounters
	backend Backend

	// done is signalled after each background persist settles. Nil
	// outside of tests.
	done chan struct{}
}

// NewCoordinator creates a coordinator for one user session.
func NewCoordinator(uid string, index *Index, feed FeedCounters, backend Backend) *Coordinator {
	return &Coordinator{
		uid:     uid,
		index:   index,
		feed:    feed,
		backend: backend,
	}
}

// Toggle flips the liked state of a recipe. Local state is mutated
// synchronously before any network call: membership in the index flips
// unconditionally, and for primary recipes the in-feed likes counter
// moves by one. The backend write happens in the background with a
// bounded retry; if it still fails the failure is logged and local
// state stands. The counter is eventually consistent with the backend,
// not transactionally linked to it.
func (c *Coordinator) Toggle(ctx context.Context, recipeID string, source forkfuldb.RecipeSource) {
	wasLiked := c.index.toggle(recipeID)
	if source == forkfuldb.RecipeSourcePrimary {
		if wasLiked {
			c.feed.AdjustLikes(recipeID, -1)
		} else {
			c.feed.AdjustLikes(recipeID, 1)
		}
	}

	// The persist must not be cancelled by the request that triggered
	// the toggle.
	ctx = context.WithoutCancel(ctx)
	go c.persist(ctx, recipeID, source, wasLiked)
}

func (c *Coordinator) persist(ctx context.Context, recipeID string, source forkfuldb.RecipeSource, wasLiked bool) {
	op := func() (struct{}, error) {
		if wasLiked {
			return struct{}{}, c.backend.RemoveLike(ctx, c.uid, recipeID, source)
		}
		return struct{}{}, c.backend.AddLike(ctx, c.uid, recipeID, source)
	}
	_, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(persistTries),
	)
	if err != nil {
		slog.ErrorContext(ctx, "likes: persisting toggle", "recipeId", recipeID, "liked", !wasLiked, "error", err)
	}
	if c.done != nil {
		c.done <- struct{}{}
	}
}
