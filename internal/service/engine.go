// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/MKhiriev/go-blog-sync/internal/adapter"
	"github.com/MKhiriev/go-blog-sync/internal/connectivity"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/internal/reconcile"
	"github.com/MKhiriev/go-blog-sync/internal/store"
	"github.com/MKhiriev/go-blog-sync/models"
)

// collectionSpec describes what an engine syncs.
type collectionSpec[T any] struct {
	name     string
	cacheKey string
	query    models.Query
	decode   func([]models.Document) ([]T, error)
	compare  func(a, b T) int
}

// engine is the collection independent part of a sync engine.
//
// Every state change happens under mu. Work that leaves the lock (the
// initial load, a reconnect, a list retry, a resync) is tagged with the epoch
// it started in and dropped if the epoch moved on. Push callbacks are tagged
// with the subscription generation and dropped once that subscription was
// disposed.
type engine[T any] struct {
	spec    collectionSpec[T]
	gateway adapter.RemoteGateway
	cache   store.LocalCache
	monitor connectivity.Observer
	logger  *logger.Logger

	mu      sync.Mutex
	state   models.SyncState[T]
	loaded  bool
	started bool
	closed  bool
	epoch   uint64
	ctx     context.Context
	cancel  context.CancelFunc
	unwatch func()

	sub    adapter.Unsubscribe
	subGen uint64

	watchers    map[int]chan models.SyncState[T]
	nextWatcher int

	wg sync.WaitGroup
}

func newEngine[T any](
	spec collectionSpec[T],
	gateway adapter.RemoteGateway,
	cache store.LocalCache,
	monitor connectivity.Observer,
	log *logger.Logger,
) *engine[T] {
	return &engine[T]{
		spec:     spec,
		gateway:  gateway,
		cache:    cache,
		monitor:  monitor,
		logger:   &logger.Logger{Logger: log.Component("sync-engine").With().Str("collection", spec.name).Logger()},
		state:    models.SyncState[T]{Items: []T{}, Mode: models.ModeInitializing},
		ctx:      context.Background(),
		watchers: make(map[int]chan models.SyncState[T]),
	}
}

func (e *engine[T]) Name() string {
	return e.spec.name
}

func (e *engine[T]) Mode() models.SyncMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Mode
}

func (e *engine[T]) Start(ctx context.Context) {
	e.mu.Lock()
	if e.started || e.closed {
		e.mu.Unlock()
		return
	}
	e.started = true
	e.ctx, e.cancel = context.WithCancel(ctx)
	e.mu.Unlock()

	unwatch := e.monitor.Subscribe(e.onConnectivity)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		unwatch()
		return
	}
	e.unwatch = unwatch

	// A connectivity callback may already have moved the engine offline.
	if e.epoch != 0 {
		return
	}
	if reconcile.Decide(e.monitor.IsOnline(), false, nil) == reconcile.SourceLocal {
		e.goOfflineLocked()
	} else {
		e.initializeLocked()
	}
}

func (e *engine[T]) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.epoch++
	e.disposeLocked()
	e.state.Mode = models.ModeClosed
	e.state.Loading = false
	e.state.Syncing = false
	e.notifyLocked()
	for id, ch := range e.watchers {
		delete(e.watchers, id)
		close(ch)
	}
	unwatch, cancel := e.unwatch, e.cancel
	e.unwatch = nil
	e.mu.Unlock()

	if unwatch != nil {
		unwatch()
	}
	if cancel != nil {
		cancel()
	}
	e.wg.Wait()
	e.logger.Debug().Msg("engine closed")
}

func (e *engine[T]) State() models.SyncState[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *engine[T]) Watch() (<-chan models.SyncState[T], func()) {
	ch := make(chan models.SyncState[T], 1)

	e.mu.Lock()
	defer e.mu.Unlock()

	ch <- e.snapshotLocked()
	if e.closed {
		close(ch)
		return ch, func() {}
	}

	id := e.nextWatcher
	e.nextWatcher++
	e.watchers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			if c, ok := e.watchers[id]; ok {
				delete(e.watchers, id)
				close(c)
			}
		})
	}
}

func (e *engine[T]) Resync(ctx context.Context) error {
	e.mu.Lock()
	if err := e.usableLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	if !e.monitor.IsOnline() {
		e.state.LastError = ErrOffline
		e.notifyLocked()
		e.mu.Unlock()
		return ErrOffline
	}
	e.epoch++
	epoch := e.epoch
	e.state.Syncing = true
	e.notifyLocked()
	e.logger.Debug().Uint64("epoch", epoch).Msg("resync started")
	e.mu.Unlock()

	items, fellBack, err := e.fetch(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.superseded(epoch) {
		return err
	}
	e.settleLocked(items, fellBack, err)
	return err
}

// onConnectivity follows the monitor. Going offline always wins; coming
// back online only matters to an engine that is Offline.
func (e *engine[T]) onConnectivity(online bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started || e.closed {
		return
	}

	local := reconcile.Decide(online, e.sub != nil, e.state.LastError) == reconcile.SourceLocal
	switch {
	case local && e.state.Mode != models.ModeOffline:
		e.goOfflineLocked()
	case !local && e.state.Mode == models.ModeOffline:
		e.initializeLocked()
	default:
		e.notifyLocked()
	}
}

func (e *engine[T]) initializeLocked() {
	e.epoch++
	epoch := e.epoch
	e.disposeLocked()
	e.state.Mode = models.ModeInitializing
	e.state.Loading = true
	e.notifyLocked()
	e.logger.Debug().Uint64("epoch", epoch).Msg("initializing")

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		items, fellBack, err := e.fetch(e.ctx)

		e.mu.Lock()
		defer e.mu.Unlock()
		if e.superseded(epoch) {
			return
		}
		e.settleLocked(items, fellBack, err)
	}()
}

// settleLocked ends a full load: on success the view is replaced and the
// push subscription reopened, on failure the engine degrades to the cache.
// A monitor that went offline meanwhile leaves the engine Offline instead.
func (e *engine[T]) settleLocked(items []T, fellBack bool, err error) {
	e.state.Loading = false
	e.state.Syncing = false
	if err != nil {
		e.degradeLocked(err)
		return
	}

	e.replaceLocked(items)
	if e.sourceLocked() == reconcile.SourceLocal {
		e.goOfflineLocked()
		return
	}
	q := e.spec.query
	if fellBack {
		q, _ = reconcile.Unordered(q)
	}
	e.subscribeLocked(q)
}

func (e *engine[T]) goOfflineLocked() {
	e.epoch++
	e.disposeLocked()
	e.state.Mode = models.ModeOffline
	e.state.Loading = false
	e.state.Syncing = false
	e.state.LastError = nil
	if !e.loaded {
		e.loadCacheLocked()
	}
	e.notifyLocked()
	e.logger.Debug().Uint64("epoch", e.epoch).Int("items", len(e.state.Items)).Msg("offline")
}

func (e *engine[T]) degradeLocked(err error) {
	e.disposeLocked()
	e.state.Mode = models.ModeDegradedLocal
	e.state.LastError = err
	e.loadCacheLocked()
	e.notifyLocked()
	e.logger.Warn().Err(err).Str("mode", e.state.Mode.String()).Msg("remote read failed, serving the local cache")
}

// fetch lists the collection, falling back to an unordered query once when
// the store cannot order it, and returns the decoded view in engine order.
func (e *engine[T]) fetch(ctx context.Context) ([]T, bool, error) {
	docs, fellBack, err := reconcile.ListWithFallback(ctx, e.gateway, e.spec.query)
	if err != nil {
		if fellBack {
			return nil, true, syncFailure(err)
		}
		return nil, false, mapAdapterError(err)
	}
	if fellBack {
		e.logger.Warn().Msg("ordered list unsupported, sorted on the client")
	}

	items, err := e.spec.decode(docs)
	if err != nil {
		return nil, fellBack, mapAdapterError(err)
	}
	return reconcile.Sorted(items, e.spec.compare), fellBack, nil
}

func (e *engine[T]) subscribeLocked(q models.Query) {
	e.disposeLocked()
	gen := e.subGen
	e.sub = e.gateway.Subscribe(e.ctx, q,
		func(docs []models.Document) { e.onSnapshot(gen, docs) },
		func(err error) { e.onSubscriptionError(gen, q, err) },
	)
	e.state.Mode = models.ModeLive
	e.notifyLocked()
	e.logger.Debug().Uint64("subscription", gen).Bool("ordered", q.OrderBy != nil).Msg("live")
}

// disposeLocked tears down the current subscription, if any, and retires
// its generation so late callbacks are ignored.
func (e *engine[T]) disposeLocked() {
	if e.sub != nil {
		e.sub()
		e.sub = nil
	}
	e.subGen++
}

func (e *engine[T]) onSnapshot(gen uint64, docs []models.Document) {
	items, err := e.spec.decode(docs)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || gen != e.subGen {
		return
	}
	if err != nil {
		e.subscriptionFailedLocked(err)
		return
	}

	e.replaceLocked(reconcile.Sorted(items, e.spec.compare))
	e.state.Mode = models.ModeLive
	e.state.Loading = false
	e.notifyLocked()
}

func (e *engine[T]) onSubscriptionError(gen uint64, q models.Query, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || gen != e.subGen {
		return
	}

	if reconcile.Classify(err) == reconcile.KindQueryUnsupported {
		if unordered, ok := reconcile.Unordered(q); ok {
			e.logger.Warn().Err(err).Msg("ordered subscription unsupported, subscribing without order")
			e.subscribeLocked(unordered)
			return
		}
	}
	e.subscriptionFailedLocked(err)
}

// subscriptionFailedLocked moves to DegradedLocal and retries one list, or
// goes Offline when the monitor no longer reports a connection.
func (e *engine[T]) subscriptionFailedLocked(err error) {
	e.disposeLocked()
	failure := syncFailure(err)
	e.state.LastError = failure
	source := e.sourceLocked()
	e.logger.Warn().Err(failure).Str("source", source.String()).Msg("subscription failed")
	if source == reconcile.SourceLocal {
		e.goOfflineLocked()
		return
	}

	e.state.Mode = models.ModeDegradedLocal
	e.notifyLocked()

	e.epoch++
	epoch := e.epoch
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		items, _, err := e.fetch(e.ctx)

		e.mu.Lock()
		defer e.mu.Unlock()
		if e.superseded(epoch) {
			return
		}
		if err != nil {
			e.degradeLocked(err)
			return
		}
		e.replaceLocked(items)
		e.state.LastError = failure
		e.notifyLocked()
	}()
}

// sourceLocked asks the reconciliation policy where reads come from now.
func (e *engine[T]) sourceLocked() reconcile.Source {
	return reconcile.Decide(e.monitor.IsOnline(), e.sub != nil, e.state.LastError)
}

func (e *engine[T]) superseded(epoch uint64) bool {
	return e.closed || e.epoch != epoch
}

// replaceLocked installs an authoritative view and writes it through.
func (e *engine[T]) replaceLocked(items []T) {
	e.state.Items = items
	e.state.LastError = nil
	e.loaded = true
	e.writeThroughLocked()
}

// mutateLocal applies fn to a copy of the view, restores the ordering and
// writes the result through. A view that was never loaded is read from the
// cache first so the write-through cannot drop cached items.
func (e *engine[T]) mutateLocal(fn func(items []T) ([]T, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.usableLocked(); err != nil {
		return err
	}
	if !e.loaded {
		e.loadCacheLocked()
	}

	items, err := fn(slices.Clone(e.state.Items))
	if err != nil {
		return err
	}
	e.state.Items = reconcile.Sorted(items, e.spec.compare)
	e.loaded = true
	e.writeThroughLocked()
	e.notifyLocked()
	return nil
}

func (e *engine[T]) checkOpen() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.usableLocked()
}

func (e *engine[T]) usableLocked() error {
	switch {
	case e.closed:
		return ErrEngineClosed
	case !e.started:
		return ErrEngineNotStarted
	}
	return nil
}

// loadCacheLocked replaces the view with the cached one. A miss keeps the
// current view, or an empty one if nothing was loaded yet.
func (e *engine[T]) loadCacheLocked() {
	raw, ok, err := e.cache.Get(e.ctx, e.spec.cacheKey)
	if err != nil {
		e.logger.Warn().Err(err).Msg("cache read failed, treated as a miss")
		ok = false
	}

	var items []T
	if ok {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			e.logger.Warn().Err(err).Msg("cached view is unreadable, treated as a miss")
			ok = false
		}
	}

	if !ok {
		if !e.loaded {
			e.state.Items = []T{}
			e.loaded = true
		}
		return
	}
	e.state.Items = reconcile.Sorted(items, e.spec.compare)
	e.loaded = true
}

func (e *engine[T]) writeThroughLocked() {
	raw, err := json.Marshal(e.state.Items)
	if err != nil {
		e.logger.Error().Err(err).Msg("cache write dropped")
		return
	}
	if err := e.cache.Set(e.ctx, e.spec.cacheKey, string(raw)); err != nil {
		e.logger.Error().Err(err).Msg("cache write dropped")
	}
}

func (e *engine[T]) snapshotLocked() models.SyncState[T] {
	s := e.state
	s.Items = slices.Clone(e.state.Items)
	if s.Items == nil {
		s.Items = []T{}
	}
	s.Online = e.monitor.IsOnline()
	return s
}

// notifyLocked offers the current state to every watcher, replacing a
// state the watcher has not read yet.
func (e *engine[T]) notifyLocked() {
	for _, ch := range e.watchers {
		s := e.snapshotLocked()
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}
