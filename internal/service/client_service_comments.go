// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-blog-sync/internal/adapter"
	"github.com/MKhiriev/go-blog-sync/internal/connectivity"
	"github.com/MKhiriev/go-blog-sync/internal/identity"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/internal/reconcile"
	"github.com/MKhiriev/go-blog-sync/internal/store"
	"github.com/MKhiriev/go-blog-sync/internal/validators"
	"github.com/MKhiriev/go-blog-sync/models"
)

type commentsService struct {
	*engine[models.Comment]

	postID    string
	caps      identity.Capabilities
	validator validators.Validator
}

// NewCommentsService creates the sync engine of postID's comment thread. It
// is idle until Start.
func NewCommentsService(
	postID string,
	gateway adapter.RemoteGateway,
	cache store.LocalCache,
	monitor connectivity.Observer,
	caps identity.Capabilities,
	logger *logger.Logger,
) CommentsService {
	spec := collectionSpec[models.Comment]{
		name:     store.CommentsKey(postID),
		cacheKey: store.CommentsKey(postID),
		query:    reconcile.CommentsQuery(postID),
		decode:   adapter.DecodeComments,
		compare:  reconcile.CommentsOldestFirst,
	}

	return &commentsService{
		engine:    newEngine(spec, gateway, cache, monitor, logger),
		postID:    postID,
		caps:      caps,
		validator: validators.NewBlogValidator(),
	}
}

func (c *commentsService) PostID() string {
	return c.postID
}

func (c *commentsService) Create(ctx context.Context, input models.CommentInput) (string, error) {
	if !c.caps.IsAuthenticated() {
		return "", ErrUnauthorized
	}
	ident, ok := c.caps.Identity()
	if !ok {
		return "", ErrUnauthorized
	}

	if err := c.validator.Validate(ctx, input); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidComment, err)
	}
	content := strings.TrimSpace(input.Content)

	if err := c.checkOpen(); err != nil {
		return "", err
	}
	if !c.monitor.IsOnline() {
		return "", ErrOffline
	}

	fields := map[string]any{
		models.FieldPostID: c.postID,
		"authorId":         ident.UserID,
		"authorName":       ident.DisplayName(),
		"content":          content,
	}
	if ident.PhotoURL != "" {
		fields["authorPhoto"] = ident.PhotoURL
	}

	id, err := c.gateway.Create(ctx, models.CollectionComments, models.Write{
		Fields:           fields,
		ServerTimestamps: []string{models.FieldDate},
	})
	if err != nil {
		return "", mapAdapterError(err)
	}
	c.logger.Debug().Str("id", id).Msg("comment created")
	return id, nil
}

func (c *commentsService) Delete(ctx context.Context, commentID string) error {
	if !c.caps.IsAuthenticated() {
		return ErrUnauthorized
	}
	if err := c.checkOpen(); err != nil {
		return err
	}
	if !c.monitor.IsOnline() {
		return ErrOffline
	}

	return mapAdapterError(c.gateway.Delete(ctx, models.CollectionComments, commentID))
}
