// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware. Callers can match
// against them with [errors.Is].
var (
	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidToken is returned when the bearer token fails verification:
	// bad signature, wrong issuer, expired or without a subject.
	ErrInvalidToken = errors.New("invalid bearer token")

	// ErrInvalidRequestBody is returned when a write body is not a valid
	// JSON write request.
	ErrInvalidRequestBody = errors.New("invalid request body")
)
