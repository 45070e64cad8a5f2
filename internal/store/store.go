// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

// Package store is the gateway to the primary Firestore recipe store.
//
// Read methods are fail-open by product policy: any backend error is
// logged and degrades to an empty result or placeholder value, never an
// error to the caller. A partial feed is preferable to a broken screen.
// Write methods return errors.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"

	"github.com/forkfulapp/forkful/internal/feed"
	"github.com/forkfulapp/forkful/internal/forkfuldb"
)

// Placeholder attribution for records whose author lookup failed.
const (
	placeholderUsername = "No username"
)

// Firestore allows at most 10 values in an "in" query.
const idChunkSize = 10

// New creates a Store over the given Firestore client.
func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

type Store struct {
	client *firestore.Client
}

// FetchPage returns one page of recipes under the given filter,
// continuing after cursor. The returned cursor is opaque to callers; a
// nil cursor starts from the beginning. Implements feed.PrimarySource.
func (s *Store) FetchPage(ctx context.Context, filter feed.Filter, pageSize int, cursor feed.Cursor) feed.Page {
	q := s.client.Collection("recipes").Query
	switch filter {
	case feed.FilterNewest:
		q = q.OrderBy("createdAt", firestore.Desc)
	case feed.FilterMostLiked:
		q = q.OrderBy("likes", firestore.Desc)
	case feed.FilterTopRated:
		q = q.OrderBy("avgRating", firestore.Desc)
	case feed.FilterAll:
		fallthrough
	default:
		q = q.OrderBy(firestore.DocumentID, firestore.Asc)
	}
	if snap, ok := cursor.(*firestore.DocumentSnapshot); ok && snap != nil {
		q = q.StartAfter(snap)
	}

	docs, err := q.Limit(pageSize).Documents(ctx).GetAll()
	if err != nil {
		slog.ErrorContext(ctx, "store: fetching recipe page", "filter", filter, "error", err)
		return feed.Page{}
	}
	if len(docs) == 0 {
		return feed.Page{Cursor: cursor}
	}

	recipes := s.docsToRecipes(ctx, docs)
	s.attachAttribution(ctx, recipes)
	return feed.Page{
		Recipes: recipes,
		Cursor:  docs[len(docs)-1],
	}
}

// Search matches recipes whose title starts with term. The range scan
// is case-sensitive, mirroring the backing index.
func (s *Store) Search(ctx context.Context, term string) []forkfuldb.Recipe {
	docs, err := s.client.Collection("recipes").
		Where("title", ">=", term).
		Where("title", "<=", term+"\uf8ff").
		Documents(ctx).GetAll()
	if err != nil {
		slog.ErrorContext(ctx, "store: searching recipes", "term", term, "error", err)
		return nil
	}
	return s.docsToRecipes(ctx, docs)
}

// Recipe fetches a single recipe by ID, with author attribution. The
// second return is false if the recipe does not exist or the fetch
// failed.
func (s *Store) Recipe(ctx context.Context, id string) (forkfuldb.Recipe, bool) {
	snap, err := s.client.Collection("recipes").Doc(id).Get(ctx)
	if snap == nil || !snap.Exists() {
		if err != nil {
			slog.WarnContext(ctx, "store: fetching recipe", "id", id, "error", err)
		}
		return forkfuldb.Recipe{}, false
	}
	recipes := s.docsToRecipes(ctx, []*firestore.DocumentSnapshot{snap})
	if len(recipes) == 0 {
		return forkfuldb.Recipe{}, false
	}
	s.attachAttribution(ctx, recipes)
	return recipes[0], true
}

// RecipesByIDs fetches recipes by ID in "in"-query chunks of at most
// 10 ids. Missing ids are dropped; output order is unspecified.
func (s *Store) RecipesByIDs(ctx context.Context, ids []string) []forkfuldb.Recipe {
	var recipes []forkfuldb.Recipe
	for chunk := range slices.Chunk(ids, idChunkSize) {
		docs, err := s.client.Collection("recipes").
			Where(firestore.DocumentID, "in", chunk).
			Documents(ctx).GetAll()
		if err != nil {
			slog.ErrorContext(ctx, "store: fetching recipes by ids", "error", err)
			continue
		}
		recipes = append(recipes, s.docsToRecipes(ctx, docs)...)
	}
	s.attachAttribution(ctx, recipes)
	return recipes
}

// UserRecipes returns all recipes authored by the given user.
func (s *Store) UserRecipes(ctx context.Context, uid string) []forkfuldb.Recipe {
	docs, err := s.client.Collection("recipes").
		Where("userId", "==", uid).
		Documents(ctx).GetAll()
	if err != nil {
		slog.ErrorContext(ctx, "store: fetching user recipes", "uid", uid, "error", err)
		return nil
	}
	return s.docsToRecipes(ctx, docs)
}

// AddRecipe creates a recipe document with zeroed counters and a
// server-assigned creation time, returning the new recipe's ID.
func (s *Store) AddRecipe(ctx context.Context, recipe forkfuldb.Recipe) (string, error) {
	doc := s.client.Collection("recipes").NewDoc()
	if _, err := doc.Create(ctx, recipe); err != nil {
		return "", fmt.Errorf("store: creating recipe: %w", err)
	}
	return doc.ID, nil
}

// User fetches a user profile. The second return is false if the user
// does not exist or the fetch failed.
func (s *Store) User(ctx context.Context, uid string) (forkfuldb.User, bool) {
	snap, err := s.client.Collection("users").Doc(uid).Get(ctx)
	if snap == nil || !snap.Exists() {
		if err != nil {
			slog.WarnContext(ctx, "store: fetching user", "uid", uid, "error", err)
		}
		return forkfuldb.User{}, false
	}
	var user forkfuldb.User
	if err := snap.DataTo(&user); err != nil {
		slog.WarnContext(ctx, "store: unmarshalling user", "uid", uid, "error", err)
		return forkfuldb.User{}, false
	}
	return user, true
}

// UpdateUser applies the given field updates to a user profile.
func (s *Store) UpdateUser(ctx context.Context, uid string, updates []firestore.Update) error {
	if _, err := s.client.Collection("users").Doc(uid).Update(ctx, updates); err != nil {
		return fmt.Errorf("store: updating user: %w", err)
	}
	return nil
}

func (s *Store) docsToRecipes(ctx context.Context, docs []*firestore.DocumentSnapshot) []forkfuldb.Recipe {
	recipes := make([]forkfuldb.Recipe, 0, len(docs))
	for _, doc := range docs {
		var recipe forkfuldb.Recipe
		if err := doc.DataTo(&recipe); err != nil {
			slog.WarnContext(ctx, "store: unmarshalling recipe", "id", doc.Ref.ID, "error", err)
			continue
		}
		recipe.ID = doc.Ref.ID
		recipe.Source = forkfuldb.RecipeSourcePrimary
		recipes = append(recipes, recipe)
	}
	return recipes
}

// attachAttribution resolves author username and picture for each
// record. A failed lookup degrades that record to placeholder
// attribution; it never fails the page.
func (s *Store) attachAttribution(ctx context.Context, recipes []forkfuldb.Recipe) {
	var g errgroup.Group
	for i := range recipes {
		g.Go(func() error {
			user, ok := s.User(ctx, recipes[i].UserID)
			if !ok || user.Username == "" {
				recipes[i].Username = placeholderUsername
				recipes[i].ProfilePicture = user.ProfilePicture
				return nil
			}
			recipes[i].Username = user.Username
			recipes[i].ProfilePicture = user.ProfilePicture
			return nil
		})
	}
	_ = g.Wait()
}
