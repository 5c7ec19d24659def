// Package workers runs the client's background jobs: the connectivity probe,
// which is the only writer of the connectivity monitor, and the resync job,
// which retries engines stuck on a one-shot view.
//
// Every worker follows the same lifecycle: Start launches a goroutine bound
// to a context, Stop cancels it and blocks until it has exited.
package workers

import (
	"context"

	"github.com/MKhiriev/go-blog-sync/internal/service"
)

// Worker is the interface that must be implemented by any background worker.
//
// Start must not block. Stop must be safe to call when the worker is not
// running and must return only after the worker's goroutine has exited.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Pinger checks that the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Reporter receives the probe's connectivity verdicts.
type Reporter interface {
	Set(online bool)
}

// TargetSource lists the engines the resync job visits on every tick.
type TargetSource func() []service.SyncTarget
