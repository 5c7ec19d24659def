// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive front end. Run blocks until the user quits or ctx
// is cancelled.
type UI interface {
	Run(ctx context.Context) error
}

// Engines is the set of sync engines the application starts and tears
// down.
type Engines interface {
	Start(ctx context.Context)
	Close()
}

// Worker is a background job bound to the application's lifetime.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
