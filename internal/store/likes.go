// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
)

// UserLikes returns the IDs of all recipes the user has liked, spanning
// both sources. A failed fetch degrades to an empty list so the session
// starts with nothing liked rather than blocking.
func (s *Store) UserLikes(ctx context.Context, uid string) []string {
	var ids []string
	iter := s.likes(uid).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			slog.ErrorContext(ctx, "store: fetching user likes", "uid", uid, "error", err)
			return nil
		}
		ids = append(ids, doc.Ref.ID)
	}
	return ids
}

// AddLike writes the per-user like record and, for primary recipes,
// atomically increments the recipe's stored likes counter so other
// viewers observe it.
func (s *Store) AddLike(ctx context.Context, uid, recipeID string, source forkfuldb.RecipeSource) error {
	like := forkfuldb.RecipeLike{}
	if source == forkfuldb.RecipeSourceExternal {
		like.Source = source
	}
	if _, err := s.likes(uid).Doc(recipeID).Set(ctx, like); err != nil {
		return fmt.Errorf("store: saving like: %w", err)
	}
	if source == forkfuldb.RecipeSourcePrimary {
		if err := s.incrementLikes(ctx, recipeID, 1); err != nil {
			return err
		}
	}
	return nil
}

// RemoveLike deletes the per-user like record and, for primary recipes,
// atomically decrements the recipe's stored likes counter.
func (s *Store) RemoveLike(ctx context.Context, uid, recipeID string, source forkfuldb.RecipeSource) error {
	if _, err := s.likes(uid).Doc(recipeID).Delete(ctx); err != nil {
		return fmt.Errorf("store: deleting like: %w", err)
	}
	if source == forkfuldb.RecipeSourcePrimary {
		if err := s.incrementLikes(ctx, recipeID, -1); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) incrementLikes(ctx context.Context, recipeID string, delta int64) error {
	_, err := s.client.Collection("recipes").Doc(recipeID).Update(ctx, []firestore.Update{
		{Path: "likes", Value: firestore.Increment(delta)},
	})
	if err != nil {
		return fmt.Errorf("store: incrementing likes: %w", err)
	}
	return nil
}

func (s *Store) likes(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("likes")
}
