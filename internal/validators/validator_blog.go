package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-blog-sync/models"
)

// Field names accepted by [BlogValidator.Validate] to scope validation.
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldTags    = "tags"
	FieldMood    = "mood"
)

// MaxTitleLength is the upper bound, in runes, of a post title.
const MaxTitleLength = 200

type BlogValidator struct {
}

func NewBlogValidator() Validator {
	return &BlogValidator{}
}

func (v *BlogValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PostInput:
		return v.validatePostInput(ctx, value, fields...)
	case *models.PostInput:
		return v.validatePostInput(ctx, *value, fields...)

	case models.PostPatch:
		return v.validatePostPatch(ctx, value, fields...)
	case *models.PostPatch:
		return v.validatePostPatch(ctx, *value, fields...)

	case models.CommentInput:
		return v.validateCommentInput(ctx, value, fields...)
	case *models.CommentInput:
		return v.validateCommentInput(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *BlogValidator) validatePostInput(_ context.Context, input models.PostInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldTags, FieldMood}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if err := validateTitle(input.Title); err != nil {
				return err
			}
		case FieldContent:
			// any post body is accepted, including an empty one
		case FieldTags:
			for i, tag := range input.Tags {
				if strings.TrimSpace(tag) == "" {
					return fmt.Errorf("%w: tag %d", ErrInvalidTag, i)
				}
			}
		case FieldMood:
			// an empty mood falls back to the default one
			if _, err := models.ParseMood(string(input.Mood)); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidMood, input.Mood)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BlogValidator) validatePostPatch(ctx context.Context, patch models.PostPatch, fields ...string) error {
	if len(fields) == 0 {
		if patch.IsEmpty() {
			return ErrNoFieldsToPatch
		}
		fields = []string{FieldTitle, FieldTags, FieldMood}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if patch.Title != nil {
				if err := validateTitle(*patch.Title); err != nil {
					return err
				}
			}
		case FieldContent:
		case FieldTags:
			if patch.Tags != nil {
				if err := v.validatePostInput(ctx, models.PostInput{Tags: *patch.Tags}, FieldTags); err != nil {
					return err
				}
			}
		case FieldMood:
			if patch.Mood != nil && !patch.Mood.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidMood, *patch.Mood)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BlogValidator) validateCommentInput(_ context.Context, input models.CommentInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldContent}
	}

	for _, f := range fields {
		switch f {
		case FieldContent:
			content := strings.TrimSpace(input.Content)
			if content == "" {
				return ErrEmptyContent
			}
			if utf8.RuneCountInString(content) > models.MaxCommentLength {
				return fmt.Errorf("%w: more than %d characters", ErrContentTooLong, models.MaxCommentLength)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("%w: more than %d characters", ErrTitleTooLong, MaxTitleLength)
	}
	return nil
}
