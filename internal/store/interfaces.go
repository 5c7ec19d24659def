// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the client-side Local Cache: a durable key-value
// store holding the last known-good snapshot of every synced collection.
//
// Values are opaque strings (the sync engines store JSON). The cache is never
// a queue of pending writes; it only mirrors the engines' authoritative views.
package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/local_cache_mock.go -package=mock

// LocalCache is the process-wide keyed store shared by all sync engines.
// Each engine owns its own key(s) exclusively.
type LocalCache interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error
}
