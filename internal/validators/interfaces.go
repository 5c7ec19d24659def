// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user-supplied blog input (new posts, post
// patches and comments) before the sync engines act on it.
//
// Validate accepts an optional list of field names that restricts the check
// to those fields, so a partial update can be validated field by field.
package validators

import "context"

// Validator validates a value, optionally restricted to the named fields.
// Unsupported value types yield [ErrUnsupportedType].
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
