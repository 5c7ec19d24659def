package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-blog-sync/internal/adapter"
	"github.com/MKhiriev/go-blog-sync/internal/connectivity"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/internal/mock"
	"github.com/MKhiriev/go-blog-sync/internal/store"
	"github.com/MKhiriev/go-blog-sync/models"
)

func seedComments(g *fakeGateway) {
	g.put(models.CollectionComments,
		commentDoc("c3", "p1", at(3)),
		commentDoc("x1", "p2", at(0)),
		commentDoc("c1", "p1", at(1)),
		commentDoc("c2", "p1", at(2)),
	)
}

func TestCommentsService_FallbackMatchesOrderedPath(t *testing.T) {
	load := func(t *testing.T, rejectOrdered bool) (*fakeGateway, []models.Comment) {
		g := newFakeGateway()
		g.rejectOrdered = rejectOrdered
		seedComments(g)

		svc := NewCommentsService("p1", g, store.NewMemoryCache(), connectivity.NewMonitor(true), author(), logger.Nop())
		t.Cleanup(svc.Close)
		svc.Start(context.Background())
		waitMode(t, svc, models.ModeLive)
		return g, svc.State().Items
	}

	_, preferred := load(t, false)
	g, degraded := load(t, true)

	assert.Equal(t, []string{"c1", "c2", "c3"}, commentIDs(preferred))
	assert.Equal(t, commentIDs(preferred), commentIDs(degraded))

	// One ordered attempt, then the same filter without the order.
	calls := g.listed()
	require.Len(t, calls, 2)
	assert.NotNil(t, calls[0].OrderBy)
	assert.Nil(t, calls[1].OrderBy)
	assert.Equal(t, calls[0].Filters, calls[1].Filters)

	// The subscription starts unordered right away.
	assert.Nil(t, g.lastSub(t).query.OrderBy)
}

func TestCommentsService_FailedFallbackPropagates(t *testing.T) {
	g := newFakeGateway()
	g.rejectOrdered = true
	seedComments(g)

	var calls int
	svc := NewCommentsService("p1", failAfter{fakeGateway: g, calls: &calls}, store.NewMemoryCache(), connectivity.NewMonitor(true), author(), logger.Nop())
	t.Cleanup(svc.Close)
	svc.Start(context.Background())
	waitMode(t, svc, models.ModeDegradedLocal)

	err := svc.State().LastError
	assert.ErrorIs(t, err, ErrSyncFailure)
	assert.ErrorIs(t, err, ErrNetworkFailure)
	assert.Equal(t, 2, calls)
}

// failAfter rejects ordered lists like its fakeGateway and fails every
// unordered one with a network error.
type failAfter struct {
	*fakeGateway
	calls *int
}

func (f failAfter) List(ctx context.Context, q models.Query) ([]models.Document, error) {
	*f.calls++
	if q.OrderBy == nil {
		return nil, fmt.Errorf("%w: reset by peer", adapter.ErrNetworkFailure)
	}
	return f.fakeGateway.List(ctx, q)
}

func TestCommentsService_CacheKeyIsPerPost(t *testing.T) {
	g := newFakeGateway()
	seedComments(g)
	cache := store.NewMemoryCache()

	svc := NewCommentsService("p2", g, cache, connectivity.NewMonitor(true), author(), logger.Nop())
	t.Cleanup(svc.Close)
	svc.Start(context.Background())
	waitMode(t, svc, models.ModeLive)

	assert.Equal(t, "comments/p2", svc.Name())
	assert.Equal(t, "p2", svc.PostID())
	_, ok, err := cache.Get(context.Background(), store.CommentsKey("p2"))
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = cache.Get(context.Background(), store.PostsKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func newMockedComments(t *testing.T, online bool, caps stubCaps) (CommentsService, *mock.MockRemoteGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gw := mock.NewMockRemoteGateway(ctrl)
	if online {
		gw.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
		gw.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(adapter.Unsubscribe(func() {}))
	}

	svc := NewCommentsService("p1", gw, store.NewMemoryCache(), connectivity.NewMonitor(online), caps, logger.Nop())
	t.Cleanup(svc.Close)
	svc.Start(context.Background())
	if online {
		waitMode(t, svc, models.ModeLive)
	}
	return svc, gw
}

func TestCommentsService_Create(t *testing.T) {
	caps := stubCaps{
		authenticated: true,
		identity:      models.Identity{UserID: "u1", Email: "reader@example.com", PhotoURL: "https://img/u1"},
	}
	svc, gw := newMockedComments(t, true, caps)

	gw.EXPECT().Create(gomock.Any(), models.CollectionComments, models.Write{
		Fields: map[string]any{
			models.FieldPostID: "p1",
			"authorId":         "u1",
			"authorName":       "reader@example.com",
			"authorPhoto":      "https://img/u1",
			"content":          "nice post",
		},
		ServerTimestamps: []string{models.FieldDate},
	}).Return("c9", nil)

	id, err := svc.Create(context.Background(), models.CommentInput{Content: "  nice post \n"})
	require.NoError(t, err)
	assert.Equal(t, "c9", id)
}

func TestCommentsService_CreateValidation(t *testing.T) {
	svc, _ := newMockedComments(t, true, stubCaps{authenticated: true, identity: models.Identity{UserID: "u1"}})

	_, err := svc.Create(context.Background(), models.CommentInput{Content: " \t "})
	assert.ErrorIs(t, err, ErrInvalidComment)

	_, err = svc.Create(context.Background(), models.CommentInput{Content: strings.Repeat("ж", models.MaxCommentLength+1)})
	assert.ErrorIs(t, err, ErrInvalidComment)
}

func TestCommentsService_CreateAtLimit(t *testing.T) {
	svc, gw := newMockedComments(t, true, stubCaps{authenticated: true, identity: models.Identity{UserID: "u1"}})
	gw.EXPECT().Create(gomock.Any(), models.CollectionComments, gomock.Any()).Return("c1", nil)

	_, err := svc.Create(context.Background(), models.CommentInput{Content: strings.Repeat("ж", models.MaxCommentLength)})
	assert.NoError(t, err)
}

func TestCommentsService_RequiresAuthentication(t *testing.T) {
	svc, _ := newMockedComments(t, true, stubCaps{})

	_, err := svc.Create(context.Background(), models.CommentInput{Content: "hi"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, svc.Delete(context.Background(), "c1"), ErrUnauthorized)
}

func TestCommentsService_OfflineWritesAreRejected(t *testing.T) {
	svc, _ := newMockedComments(t, false, stubCaps{authenticated: true, identity: models.Identity{UserID: "u1"}})

	_, err := svc.Create(context.Background(), models.CommentInput{Content: "hi"})
	assert.ErrorIs(t, err, ErrOffline)
	assert.ErrorIs(t, svc.Delete(context.Background(), "c1"), ErrOffline)
	assert.Empty(t, svc.State().Items)
}

func TestCommentsService_DeleteMapsStoreVerdict(t *testing.T) {
	svc, gw := newMockedComments(t, true, stubCaps{authenticated: true, identity: models.Identity{UserID: "u1"}})
	gw.EXPECT().Delete(gomock.Any(), models.CollectionComments, "c1").
		Return(fmt.Errorf("%w: not the author", adapter.ErrUnauthorized))

	assert.ErrorIs(t, svc.Delete(context.Background(), "c1"), ErrUnauthorized)
}
