// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MaxCommentLength is the upper bound, in runes, of a comment body.
const MaxCommentLength = 500

// Comment belongs to exactly one post. Author name and photo are copied at
// creation time and never re-fetched.
type Comment struct {
	ID          string    `json:"id"`
	PostID      string    `json:"postId"`
	AuthorID    string    `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	AuthorPhoto string    `json:"authorPhoto,omitempty"`
	Content     string    `json:"content"`
	Date        time.Time `json:"date"`
}

// CommentInput carries the user-supplied part of a new comment.
type CommentInput struct {
	Content string
}
