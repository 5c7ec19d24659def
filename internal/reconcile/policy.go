// Package reconcile holds the pure decisions of the sync core: where a read
// is served from, how a failure is classified, how an ordered query degrades
// when the store cannot order it, and the client-side orderings that make
// both paths agree.
package reconcile

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-blog-sync/internal/adapter"
	"github.com/MKhiriev/go-blog-sync/models"
)

// Source is where an engine's view comes from.
type Source int

const (
	// SourceRemoteLive: a push subscription feeds the view.
	SourceRemoteLive Source = iota
	// SourceRemoteOneShot: the view comes from a single list call.
	SourceRemoteOneShot
	// SourceLocal: the view comes from the local cache.
	SourceLocal
)

func (s Source) String() string {
	switch s {
	case SourceRemoteLive:
		return "remote-live"
	case SourceRemoteOneShot:
		return "remote-one-shot"
	default:
		return "local"
	}
}

// Decide picks the source of truth for reads.
func Decide(online, subscribed bool, lastErr error) Source {
	switch {
	case !online:
		return SourceLocal
	case subscribed && lastErr == nil:
		return SourceRemoteLive
	default:
		return SourceRemoteOneShot
	}
}

// Kind classifies a gateway failure.
type Kind int

const (
	KindNone Kind = iota
	KindQueryUnsupported
	KindUnauthorized
	KindNetwork
	KindNotFound
	KindDecode
	KindOther
)

// Classify maps err onto a [Kind] using the gateway's sentinels.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, adapter.ErrQueryUnsupported):
		return KindQueryUnsupported
	case errors.Is(err, adapter.ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, adapter.ErrNetworkFailure):
		return KindNetwork
	case errors.Is(err, adapter.ErrNotFound):
		return KindNotFound
	case errors.Is(err, adapter.ErrDecode):
		return KindDecode
	default:
		return KindOther
	}
}

// Unordered returns q without its server-side ordering. ok is false when q
// was not ordered, i.e. there is nothing to fall back to.
func Unordered(q models.Query) (models.Query, bool) {
	if q.OrderBy == nil {
		return q, false
	}
	q.OrderBy = nil
	return q, true
}

// Lister is the part of the gateway used by [ListWithFallback].
type Lister interface {
	List(ctx context.Context, q models.Query) ([]models.Document, error)
}

// ListWithFallback lists q and, if the store rejects the ordering, re-issues
// the same filters unordered exactly once. The caller sorts the result with
// the same comparator on both paths. fellBack reports whether the unordered
// query was used; a failing fallback returns its own error.
func ListWithFallback(ctx context.Context, l Lister, q models.Query) (docs []models.Document, fellBack bool, err error) {
	docs, err = l.List(ctx, q)
	if err == nil {
		return docs, false, nil
	}

	unordered, ok := Unordered(q)
	if !ok || Classify(err) != KindQueryUnsupported {
		return nil, false, err
	}

	docs, err = l.List(ctx, unordered)
	if err != nil {
		return nil, true, err
	}
	return docs, true, nil
}
