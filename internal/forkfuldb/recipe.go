// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package forkfuldb

import "time"

// RecipeSource identifies the origin of a recipe record.
type RecipeSource string

const (
	// RecipeSourcePrimary is the source for recipes stored in Firestore.
	RecipeSourcePrimary RecipeSource = "primary"
	// RecipeSourceExternal is the source for recipes from the public
	// recipe API.
	RecipeSourceExternal RecipeSource = "external"
	// RecipeSourceLocal tags recipes served from in-memory feed state
	// during search rather than a fresh fetch.
	RecipeSourceLocal RecipeSource = "local"
)

// RecipeIngredient represents an ingredient in a recipe.
type RecipeIngredient struct {
	// Item is the name of the ingredient.
	Item string `firestore:"item" json:"item"`

	// Serving is the quantity of the ingredient as free-form text.
	Serving string `firestore:"serving" json:"serving"`
}

// Recipe represents a recipe record, normalized regardless of origin.
//
// Counters (Likes, CommentCount, AvgRating) are meaningful only for
// primary-source recipes; external records carry zero values.
type Recipe struct {
	// ID is the identifier of the recipe, unique within its source.
	ID string `firestore:"-" json:"id"`

	// Source is the origin of the recipe. Never stored; it is attached
	// when the record is fetched.
	Source RecipeSource `firestore:"-" json:"source"`

	// Title is the title of the recipe.
	Title string `firestore:"title" json:"title"`

	// Caption is a short description of the recipe.
	Caption string `firestore:"caption" json:"caption"`

	// ImageURL is the URL for the main image of the recipe.
	ImageURL string `firestore:"image" json:"image"`

	// Ingredients are the ingredients of the recipe, in order.
	Ingredients []RecipeIngredient `firestore:"ingredients" json:"ingredients"`

	// Steps are the steps to prepare the recipe as free text.
	Steps string `firestore:"steps" json:"steps"`

	// UserID is the ID of the user who created the recipe. For
	// external recipes this is empty.
	UserID string `firestore:"userId" json:"userId"`

	// Username is the display name of the recipe author. Attached by a
	// per-record lookup at fetch time, not stored on the recipe.
	Username string `firestore:"-" json:"username"`

	// ProfilePicture is the URL of the author's profile picture.
	ProfilePicture string `firestore:"-" json:"profilePicture"`

	// Likes is the number of likes on the recipe.
	Likes int64 `firestore:"likes" json:"likes"`

	// CommentCount is the number of comments on the recipe.
	CommentCount int64 `firestore:"commentCount" json:"commentCount"`

	// AvgRating is the average comment rating, 0 if unrated.
	AvgRating float64 `firestore:"avgRating" json:"avgRating"`

	// CreatedAt is the creation time of the recipe, assigned by the
	// server on upload. External records get the epoch as a sentinel.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}
