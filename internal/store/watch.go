// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package store

import (
	"context"
	"log/slog"

	"github.com/forkfulapp/forkful/internal/feed"
	"github.com/forkfulapp/forkful/internal/forkfuldb"
)

// RecipePatches streams counter updates for a recipe document as they
// happen, for merging into in-memory feed state. The channel is closed
// when ctx is cancelled or the watch fails.
func (s *Store) RecipePatches(ctx context.Context, recipeID string) <-chan feed.Patch {
	patches := make(chan feed.Patch)
	go func() {
		defer close(patches)
		it := s.client.Collection("recipes").Doc(recipeID).Snapshots(ctx)
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() == nil {
					slog.WarnContext(ctx, "store: recipe watch ended", "recipeId", recipeID, "error", err)
				}
				return
			}
			if !snap.Exists() {
				continue
			}
			var recipe forkfuldb.Recipe
			if err := snap.DataTo(&recipe); err != nil {
				slog.WarnContext(ctx, "store: unmarshalling watched recipe", "recipeId", recipeID, "error", err)
				continue
			}
			patch := feed.Patch{
				RecipeID:     recipeID,
				Likes:        &recipe.Likes,
				CommentCount: &recipe.CommentCount,
				AvgRating:    &recipe.AvgRating,
			}
			select {
			case patches <- patch:
			case <-ctx.Done():
				return
			}
		}
	}()
	return patches
}
