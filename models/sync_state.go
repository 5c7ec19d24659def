// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncMode is the state of a sync engine's state machine.
type SyncMode int

const (
	// ModeInitializing is the state between start (or reconnect) and the
	// first authoritative view.
	ModeInitializing SyncMode = iota
	// ModeLive means a push subscription feeds the view.
	ModeLive
	// ModeDegradedLocal means the view comes from a one-shot fetch (or the
	// cache when that fetch failed) and no push subscription is open.
	ModeDegradedLocal
	// ModeOffline means the view is served from the local cache only.
	ModeOffline
	// ModeClosed means the engine was torn down.
	ModeClosed
)

func (m SyncMode) String() string {
	switch m {
	case ModeInitializing:
		return "initializing"
	case ModeLive:
		return "live"
	case ModeDegradedLocal:
		return "degraded-local"
	case ModeOffline:
		return "offline"
	case ModeClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// SyncState is a snapshot of one sync engine.
type SyncState[T any] struct {
	Items     []T
	Mode      SyncMode
	Online    bool
	Loading   bool
	Syncing   bool
	LastError error
}

// ErrorMessage returns the human-readable last error, or "" when there is none.
func (s SyncState[T]) ErrorMessage() string {
	if s.LastError == nil {
		return ""
	}
	return s.LastError.Error()
}
