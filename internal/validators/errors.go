package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle      = errors.New("title is empty")
	ErrTitleTooLong    = errors.New("title is too long")
	ErrInvalidMood     = errors.New("unknown mood")
	ErrInvalidTag      = errors.New("tags cannot be blank")
	ErrEmptyContent    = errors.New("content is empty")
	ErrContentTooLong  = errors.New("content is too long")
	ErrNoFieldsToPatch = errors.New("at least one field must be provided for update")
)
