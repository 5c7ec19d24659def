// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"time"
)

// Post is a blog entry as seen by the client.
//
// Likes is a set of user identifiers. The like count is always derived from
// it through [Post.LikeCount] and is never stored on its own.
type Post struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
	Tags    []string  `json:"tags"`
	Mood    Mood      `json:"mood"`
	Likes   []string  `json:"likes"`
}

// LikeCount returns the cardinality of the like set.
func (p Post) LikeCount() int {
	return len(p.Likes)
}

// LikedBy reports whether userID is in the like set.
func (p Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

// WithLike returns a copy of p whose like set contains userID exactly once.
func (p Post) WithLike(userID string) Post {
	if p.LikedBy(userID) {
		return p
	}
	likes := make([]string, 0, len(p.Likes)+1)
	likes = append(likes, p.Likes...)
	p.Likes = append(likes, userID)
	return p
}

// WithoutLike returns a copy of p whose like set does not contain userID.
func (p Post) WithoutLike(userID string) Post {
	if !p.LikedBy(userID) {
		return p
	}
	likes := make([]string, 0, len(p.Likes))
	for _, id := range p.Likes {
		if id != userID {
			likes = append(likes, id)
		}
	}
	p.Likes = likes
	return p
}

// PostInput carries the author-supplied fields of a new post.
type PostInput struct {
	Title   string
	Content string
	Tags    []string
	Mood    Mood
}

// PostPatch is a partial update of a post. Nil fields are left untouched.
type PostPatch struct {
	Title   *string
	Content *string
	Tags    *[]string
	Mood    *Mood
}

// IsEmpty reports whether the patch changes nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil && p.Mood == nil
}

// Apply merges the patch into post and returns the result.
func (p PostPatch) Apply(post Post) Post {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Tags != nil {
		post.Tags = slices.Clone(*p.Tags)
	}
	if p.Mood != nil {
		post.Mood = *p.Mood
	}
	return post
}
