// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package store

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"

	"github.com/forkfulapp/forkful/internal/forkfuldb"
)

// Comments returns the comments on a recipe, newest first, with
// commenter attribution. A failed author lookup degrades that comment
// to an "Unknown" commenter.
func (s *Store) Comments(ctx context.Context, recipeID string) []forkfuldb.Comment {
	docs, err := s.comments(recipeID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		slog.ErrorContext(ctx, "store: fetching comments", "recipeId", recipeID, "error", err)
		return nil
	}

	comments := make([]forkfuldb.Comment, 0, len(docs))
	for _, doc := range docs {
		var comment forkfuldb.Comment
		if err := doc.DataTo(&comment); err != nil {
			slog.WarnContext(ctx, "store: unmarshalling comment", "id", doc.Ref.ID, "error", err)
			continue
		}
		comment.ID = doc.Ref.ID
		if user, ok := s.User(ctx, comment.UserID); ok {
			comment.Username = user.Username
			comment.ProfilePicture = user.ProfilePicture
		} else {
			comment.Username = "Unknown"
		}
		comments = append(comments, comment)
	}
	return comments
}

// AddComment writes a comment to the recipe's comments subcollection,
// increments the recipe's comment counter, and recomputes the stored
// average rating over all comments.
func (s *Store) AddComment(ctx context.Context, recipeID, uid, text string, rating float64) error {
	comment := forkfuldb.Comment{
		Comment: text,
		Rating:  rating,
		UserID:  uid,
	}
	if _, _, err := s.comments(recipeID).Add(ctx, comment); err != nil {
		return fmt.Errorf("store: saving comment: %w", err)
	}

	recipeDoc := s.client.Collection("recipes").Doc(recipeID)
	if _, err := recipeDoc.Update(ctx, []firestore.Update{
		{Path: "commentCount", Value: firestore.Increment(1)},
	}); err != nil {
		return fmt.Errorf("store: incrementing comment count: %w", err)
	}

	docs, err := s.comments(recipeID).Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("store: fetching comments for rating: %w", err)
	}
	var sum float64
	for _, doc := range docs {
		var c forkfuldb.Comment
		if err := doc.DataTo(&c); err != nil {
			continue
		}
		sum += c.Rating
	}
	avg := sum / float64(len(docs))
	if _, err := recipeDoc.Update(ctx, []firestore.Update{
		{Path: "avgRating", Value: avg},
	}); err != nil {
		return fmt.Errorf("store: updating average rating: %w", err)
	}
	return nil
}

func (s *Store) comments(recipeID string) *firestore.CollectionRef {
	return s.client.Collection("recipes").Doc(recipeID).Collection("comments")
}
