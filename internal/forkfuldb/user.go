// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package forkfuldb

import "time"

// User represents a user profile stored in Firestore.
type User struct {
	// Username is the display name of the user.
	Username string `firestore:"username" json:"username"`

	// ProfilePicture is the URL of the user's profile picture.
	ProfilePicture string `firestore:"profilePicture" json:"profilePicture"`

	// Email is the email address the user registered with.
	Email string `firestore:"email" json:"email"`

	// CreatedAt is the time the profile was created.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// RecipeLike is a per-user like record for a recipe. The document ID is
// the liked recipe's ID.
type RecipeLike struct {
	// LikedAt is the time the like was created, assigned by the server.
	LikedAt time.Time `firestore:"likedAt,serverTimestamp"`

	// Source is set for likes of external recipes so the liked list can
	// be resolved against the right origin later. Empty for primary.
	Source RecipeSource `firestore:"source,omitempty"`
}
