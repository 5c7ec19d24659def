// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-blog-sync/internal/adapter"
	"github.com/MKhiriev/go-blog-sync/internal/connectivity"
	"github.com/MKhiriev/go-blog-sync/internal/identity"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/internal/reconcile"
	"github.com/MKhiriev/go-blog-sync/internal/store"
	"github.com/MKhiriev/go-blog-sync/internal/utils"
	"github.com/MKhiriev/go-blog-sync/internal/validators"
	"github.com/MKhiriev/go-blog-sync/models"
)

type postsService struct {
	*engine[models.Post]

	caps      identity.Capabilities
	validator validators.Validator
	now       func() time.Time
	newID     func() string
}

// NewPostsService creates the posts sync engine. It is idle until Start.
func NewPostsService(
	gateway adapter.RemoteGateway,
	cache store.LocalCache,
	monitor connectivity.Observer,
	caps identity.Capabilities,
	logger *logger.Logger,
) PostsService {
	return newPostsService(gateway, cache, monitor, caps, logger)
}

func newPostsService(
	gateway adapter.RemoteGateway,
	cache store.LocalCache,
	monitor connectivity.Observer,
	caps identity.Capabilities,
	logger *logger.Logger,
) *postsService {
	spec := collectionSpec[models.Post]{
		name:     models.CollectionPosts,
		cacheKey: store.PostsKey,
		query:    reconcile.PostsQuery(),
		decode:   adapter.DecodePosts,
		compare:  reconcile.PostsNewestFirst,
	}

	return &postsService{
		engine:    newEngine(spec, gateway, cache, monitor, logger),
		caps:      caps,
		validator: validators.NewBlogValidator(),
		now:       time.Now,
		newID:     utils.NewUUIDGenerator().Generate,
	}
}

func (p *postsService) Create(ctx context.Context, input models.PostInput) (string, error) {
	if !p.caps.IsAuthorized() {
		return "", ErrUnauthorized
	}
	if err := p.validator.Validate(ctx, input); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPost, err)
	}
	post := newPost(input)
	if err := p.checkOpen(); err != nil {
		return "", err
	}

	if !p.monitor.IsOnline() {
		post.ID = p.newID()
		post.Date = p.now()
		err := p.mutateLocal(func(items []models.Post) ([]models.Post, error) {
			return append([]models.Post{post}, items...), nil
		})
		if err != nil {
			return "", err
		}
		p.logger.Debug().Str("id", post.ID).Msg("post created offline")
		return post.ID, nil
	}

	fields := map[string]any{
		"title":   post.Title,
		"content": post.Content,
		"tags":    post.Tags,
		"mood":    string(post.Mood),
	}
	fields[models.FieldLikes] = []string{}
	if ident, ok := p.caps.Identity(); ok && ident.Email != "" {
		fields["authorEmail"] = ident.Email
	}

	id, err := p.gateway.Create(ctx, models.CollectionPosts, models.Write{
		Fields:           fields,
		ServerTimestamps: []string{models.FieldDate},
	})
	if err != nil {
		return "", mapAdapterError(err)
	}
	p.logger.Debug().Str("id", id).Msg("post created")
	return id, nil
}

func (p *postsService) Update(ctx context.Context, id string, patch models.PostPatch) error {
	if !p.caps.IsAuthorized() {
		return ErrUnauthorized
	}
	fields := []string{validators.FieldTitle, validators.FieldTags, validators.FieldMood}
	if err := p.validator.Validate(ctx, patch, fields...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPost, err)
	}
	if err := p.checkOpen(); err != nil {
		return err
	}
	patch = normalizePatch(patch)

	if !p.monitor.IsOnline() {
		return p.mutateLocal(func(items []models.Post) ([]models.Post, error) {
			i := slices.IndexFunc(items, func(post models.Post) bool { return post.ID == id })
			if i < 0 {
				return nil, fmt.Errorf("post %q: %w", id, ErrNotFound)
			}
			items[i] = patch.Apply(items[i])
			return items, nil
		})
	}

	if patch.IsEmpty() {
		return nil
	}
	err := p.gateway.Update(ctx, models.CollectionPosts, id, models.Write{
		Fields:           patchFields(patch),
		ServerTimestamps: []string{models.FieldDate},
	})
	return mapAdapterError(err)
}

func (p *postsService) Delete(ctx context.Context, id string) error {
	if !p.caps.IsAuthorized() {
		return ErrUnauthorized
	}
	if err := p.checkOpen(); err != nil {
		return err
	}

	if !p.monitor.IsOnline() {
		return p.mutateLocal(func(items []models.Post) ([]models.Post, error) {
			return slices.DeleteFunc(items, func(post models.Post) bool { return post.ID == id }), nil
		})
	}

	return mapAdapterError(p.gateway.Delete(ctx, models.CollectionPosts, id))
}

func (p *postsService) ToggleLike(ctx context.Context, postID, userID string, currentlyLiked bool) error {
	if !p.caps.IsAuthenticated() {
		return ErrUnauthorized
	}
	if err := p.checkOpen(); err != nil {
		return err
	}

	w := models.Write{}
	if currentlyLiked {
		w.ArrayRemove = map[string][]any{models.FieldLikes: {userID}}
	} else {
		w.ArrayUnion = map[string][]any{models.FieldLikes: {userID}}
	}
	if err := p.gateway.Update(ctx, models.CollectionPosts, postID, w); err != nil {
		return mapAdapterError(err)
	}

	// The store acknowledged; apply the same set operation to the local copy
	// so the cache does not wait for the next push.
	err := p.mutateLocal(func(items []models.Post) ([]models.Post, error) {
		for i := range items {
			if items[i].ID != postID {
				continue
			}
			if currentlyLiked {
				items[i] = items[i].WithoutLike(userID)
			} else {
				items[i] = items[i].WithLike(userID)
			}
		}
		return items, nil
	})
	if err != nil {
		p.logger.Debug().Err(err).Str("id", postID).Msg("like acknowledged after close")
	}
	return nil
}

// newPost normalizes a validated input into a post without id and date.
func newPost(input models.PostInput) models.Post {
	mood, _ := models.ParseMood(string(input.Mood))

	return models.Post{
		Title:   strings.TrimSpace(input.Title),
		Content: input.Content,
		Tags:    trimTags(input.Tags),
		Mood:    mood,
		Likes:   []string{},
	}
}

// normalizePatch applies the same trimming as newPost, so a patch lands
// identically in the local view and in the store.
func normalizePatch(patch models.PostPatch) models.PostPatch {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	if patch.Tags != nil {
		tags := trimTags(*patch.Tags)
		patch.Tags = &tags
	}
	return patch
}

func trimTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tags = append(tags, strings.TrimSpace(tag))
	}
	return tags
}

// patchFields expects a normalized patch.
func patchFields(patch models.PostPatch) map[string]any {
	fields := make(map[string]any)
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Content != nil {
		fields["content"] = *patch.Content
	}
	if patch.Tags != nil {
		fields["tags"] = *patch.Tags
	}
	if patch.Mood != nil {
		fields["mood"] = string(*patch.Mood)
	}
	return fields
}
