// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the Remote Gateway: the client's only path to the
// authoritative document store.
//
// The primary abstraction is [RemoteGateway], which decouples the sync engines
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPGateway]) whose push subscriptions are carried over server-sent
// events.
//
// Error values defined in errors.go are mapped from HTTP status codes and
// stream error frames by mapHTTPError / mapStreamError so that callers can use
// [errors.Is] for transport-agnostic error handling (e.g.
// [ErrQueryUnsupported] when the store lacks an index for an ordered query).
//
// The decode step ([DecodePost], [DecodeComment]) turns raw documents into
// validated domain values.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-blog-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_gateway_mock.go -package=mock

// Unsubscribe disposes a push subscription. It is idempotent and a no-op
// after the subscription reported an error.
type Unsubscribe func()

// RemoteGateway defines transport-agnostic communication with the remote
// document store. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
type RemoteGateway interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent requests. An empty token sends requests anonymously.
	SetToken(token string)

	// List performs a one-shot read of the documents matching q.
	List(ctx context.Context, q models.Query) ([]models.Document, error)

	// Create adds a document to collection and returns the id assigned by
	// the store.
	Create(ctx context.Context, collection string, w models.Write) (string, error)

	// Update applies w to the document id of collection.
	Update(ctx context.Context, collection, id string, w models.Write) error

	// Delete removes the document id of collection.
	Delete(ctx context.Context, collection, id string) error

	// Subscribe opens a push subscription for q. onChange receives the full
	// result set initially and after every committed change, in commit
	// order. onError is called at most once, after which no further
	// callbacks arrive. Callbacks are never invoked synchronously from
	// Subscribe; a callback already in flight when Unsubscribe is called may
	// still complete, so callers must discard events of disposed
	// subscriptions.
	Subscribe(ctx context.Context, q models.Query, onChange func([]models.Document), onError func(error)) Unsubscribe

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
