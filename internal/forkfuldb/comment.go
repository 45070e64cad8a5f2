// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package forkfuldb

import "time"

// Comment is a comment with a rating, stored in a recipe's comments
// subcollection.
type Comment struct {
	// ID is the document ID of the comment.
	ID string `firestore:"-" json:"id"`

	// Comment is the comment text.
	Comment string `firestore:"comment" json:"comment"`

	// Rating is the rating given with the comment.
	Rating float64 `firestore:"rating" json:"rating"`

	// UserID is the ID of the commenting user.
	UserID string `firestore:"userId" json:"userId"`

	// Username is the commenting user's display name, attached at fetch
	// time.
	Username string `firestore:"-" json:"username"`

	// ProfilePicture is the commenting user's profile picture URL,
	// attached at fetch time.
	ProfilePicture string `firestore:"-" json:"profilePicture"`

	// CreatedAt is the time the comment was created, assigned by the
	// server.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}
