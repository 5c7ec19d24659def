package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-blog-sync/internal/adapter"
	"github.com/MKhiriev/go-blog-sync/internal/connectivity"
	"github.com/MKhiriev/go-blog-sync/internal/identity"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/internal/store"
)

// ClientServices aggregates the sync engines of the client.
type ClientServices struct {
	Posts    PostsService
	Comments *CommentThreads
}

func NewClientServices(
	gateway adapter.RemoteGateway,
	cache store.LocalCache,
	monitor connectivity.Observer,
	caps identity.Capabilities,
	logger *logger.Logger,
) *ClientServices {
	return &ClientServices{
		Posts: NewPostsService(gateway, cache, monitor, caps, logger),
		Comments: &CommentThreads{
			gateway: gateway,
			cache:   cache,
			monitor: monitor,
			caps:    caps,
			logger:  logger,
			threads: make(map[string]CommentsService),
		},
	}
}

// Start starts the posts engine. Comment threads start when opened.
func (s *ClientServices) Start(ctx context.Context) {
	s.Posts.Start(ctx)
}

// Close tears down every engine.
func (s *ClientServices) Close() {
	s.Comments.CloseAll()
	s.Posts.Close()
}

// SyncTargets lists the engines a background resync may visit.
func (s *ClientServices) SyncTargets() []SyncTarget {
	return append([]SyncTarget{s.Posts}, s.Comments.Targets()...)
}

// CommentThreads owns one comments engine per open post.
type CommentThreads struct {
	gateway adapter.RemoteGateway
	cache   store.LocalCache
	monitor connectivity.Observer
	caps    identity.Capabilities
	logger  *logger.Logger

	mu      sync.Mutex
	threads map[string]CommentsService
}

// Open returns the started engine of postID's thread, creating it on first
// use.
func (t *CommentThreads) Open(ctx context.Context, postID string) CommentsService {
	t.mu.Lock()
	defer t.mu.Unlock()

	if thread, ok := t.threads[postID]; ok {
		return thread
	}
	thread := NewCommentsService(postID, t.gateway, t.cache, t.monitor, t.caps, t.logger)
	thread.Start(ctx)
	t.threads[postID] = thread
	return thread
}

// Release closes postID's thread. Its subscription is disposed before
// Release returns.
func (t *CommentThreads) Release(postID string) {
	t.mu.Lock()
	thread, ok := t.threads[postID]
	delete(t.threads, postID)
	t.mu.Unlock()

	if ok {
		thread.Close()
	}
}

// CloseAll closes every open thread.
func (t *CommentThreads) CloseAll() {
	t.mu.Lock()
	threads := t.threads
	t.threads = make(map[string]CommentsService)
	t.mu.Unlock()

	for _, thread := range threads {
		thread.Close()
	}
}

// Targets returns the open threads.
func (t *CommentThreads) Targets() []SyncTarget {
	t.mu.Lock()
	defer t.mu.Unlock()

	targets := make([]SyncTarget, 0, len(t.threads))
	for _, thread := range t.threads {
		targets = append(targets, thread)
	}
	return targets
}
