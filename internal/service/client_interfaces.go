package service

import (
	"context"

	"github.com/MKhiriev/go-blog-sync/models"
)

// SyncEngine keeps one authoritative, ordered view of a collection current.
// It chooses between the remote store and the local cache, holds the live
// push subscription, and degrades to one-shot reads when live updates are
// unavailable.
type SyncEngine[T any] interface {
	// Start runs the initial load and begins following connectivity
	// changes. It returns immediately; progress is visible through State
	// and Watch. Calling Start twice has no effect.
	Start(ctx context.Context)

	// Close disposes the push subscription synchronously, stops following
	// connectivity and closes every Watch channel. It is idempotent.
	Close()

	// State returns a snapshot of the engine. Items is a copy.
	State() models.SyncState[T]

	// Watch returns a channel that receives the current state and then the
	// latest state after every change. Slow readers only miss intermediate
	// states. The returned function stops the feed.
	Watch() (<-chan models.SyncState[T], func())

	// Resync discards the current view and reloads it from the store,
	// reopening the push subscription. It returns ErrOffline when the
	// monitor reports offline. On failure the view falls back to the cache
	// and the error is both returned and recorded in State.
	Resync(ctx context.Context) error

	// Name identifies the engine in logs, e.g. "posts" or "comments/<id>".
	Name() string

	// Mode returns the current state machine mode.
	Mode() models.SyncMode
}

// PostsService is the posts sync engine plus the post mutations.
type PostsService interface {
	SyncEngine[models.Post]

	// Create adds a post. Online it returns the store's id and the new
	// post arrives through the push subscription; offline it is added to
	// the local view only and the local id is returned.
	// Requires the author capability.
	Create(ctx context.Context, input models.PostInput) (string, error)

	// Update changes the given fields of post id. Online the store also
	// refreshes the post date. Requires the author capability.
	Update(ctx context.Context, id string, patch models.PostPatch) error

	// Delete removes post id. Requires the author capability.
	Delete(ctx context.Context, id string) error

	// ToggleLike adds userID to the like set of postID when currentlyLiked
	// is false and removes it otherwise. Always goes to the store and only
	// requires a signed-in user.
	ToggleLike(ctx context.Context, postID, userID string, currentlyLiked bool) error
}

// CommentsService is the sync engine of one post's comment thread plus the
// comment mutations. Comment writes are online only.
type CommentsService interface {
	SyncEngine[models.Comment]

	// PostID returns the post this thread belongs to.
	PostID() string

	// Create posts a comment as the signed-in user and returns its id.
	Create(ctx context.Context, input models.CommentInput) (string, error)

	// Delete removes a comment. The store decides whether the caller is
	// its author or the blog owner.
	Delete(ctx context.Context, commentID string) error
}

// SyncTarget is the part of an engine used by background jobs.
type SyncTarget interface {
	Name() string
	Mode() models.SyncMode
	Resync(ctx context.Context) error
}

var (
	_ SyncTarget = (PostsService)(nil)
	_ SyncTarget = (CommentsService)(nil)
)
