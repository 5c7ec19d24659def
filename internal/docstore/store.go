package docstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/internal/utils"
	"github.com/MKhiriev/go-blog-sync/models"
)

// Store is a concurrency-safe in-memory document store.
type Store struct {
	mu          sync.Mutex
	collections map[string]map[string]*document
	indexes     map[indexKey]struct{}
	listeners   map[int]*Listener
	nextID      int
	lastCommit  time.Time
	closed      bool

	rules  Rules
	now    func() time.Time
	newID  func() string
	logger *logger.Logger
}

// Option configures a [Store].
type Option func(*Store)

// WithRules replaces the default [OpenRules].
func WithRules(rules Rules) Option {
	return func(s *Store) { s.rules = rules }
}

// WithClock replaces time.Now as the source of commit times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUIDv7 generator used for new documents.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore creates an empty store.
func NewStore(logger *logger.Logger, opts ...Option) *Store {
	s := &Store{
		collections: make(map[string]map[string]*document),
		indexes:     make(map[indexKey]struct{}),
		listeners:   make(map[int]*Listener),
		rules:       OpenRules{},
		now:         time.Now,
		newID:       utils.NewUUIDGenerator().Generate,
		logger:      logger.Component("docstore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProvisionIndexes registers composite indexes given as
// "collection:filterField+orderField" definitions.
func (s *Store) ProvisionIndexes(defs ...string) error {
	keys := make([]indexKey, 0, len(defs))
	for _, def := range defs {
		key, err := parseIndex(def)
		if err != nil {
			return err
		}
		keys = append(keys, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		s.indexes[key] = struct{}{}
		s.logger.Info().Str("index", key.String()).Msg("index provisioned")
	}
	return nil
}

// List returns the documents matching q.
func (s *Store) List(ctx context.Context, q models.Query) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkQueryLocked(q); err != nil {
		return nil, err
	}
	return s.snapshotLocked(q).Documents, nil
}

// Create stores a new document and returns its id.
func (s *Store) Create(ctx context.Context, actor *models.Identity, collection string, w models.Write) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n, err := normalizeWrite(w)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrStoreClosed
	}
	if err = s.rules.CanCreate(actor, collection, w); err != nil {
		return "", err
	}

	doc := &document{id: s.newID()}
	doc.apply(n, s.commitTimeLocked())

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]*document)
		s.collections[collection] = docs
	}
	docs[doc.id] = doc

	s.logger.Debug().Str("collection", collection).Str("id", doc.id).Msg("document created")
	s.notifyLocked(collection, nil, doc)
	return doc.id, nil
}

// Update merges w into an existing document.
func (s *Store) Update(ctx context.Context, actor *models.Identity, collection, id string, w models.Write) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := normalizeWrite(w)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	current, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	if err = s.rules.CanUpdate(actor, collection, current.export(), w); err != nil {
		return err
	}

	next := current.clone()
	next.apply(n, s.commitTimeLocked())
	s.collections[collection][id] = next

	s.logger.Debug().Str("collection", collection).Str("id", id).Msg("document updated")
	s.notifyLocked(collection, current, next)
	return nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, actor *models.Identity, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	current, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	if err := s.rules.CanDelete(actor, collection, current.export()); err != nil {
		return err
	}

	delete(s.collections[collection], id)
	s.commitTimeLocked()

	s.logger.Debug().Str("collection", collection).Str("id", id).Msg("document deleted")
	s.notifyLocked(collection, current, nil)
	return nil
}

// Listen registers a change feed for q. The current result is queued
// immediately. Queries that need an unprovisioned index fail with
// [ErrIndexRequired].
func (s *Store) Listen(ctx context.Context, q models.Query) (*Listener, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if err := s.checkQueryLocked(q); err != nil {
		return nil, err
	}

	s.nextID++
	l := newListener(s, s.nextID, q)
	s.listeners[l.id] = l
	l.push(s.snapshotLocked(q))
	return l, nil
}

// Close ends every change feed. Later writes and listens fail with
// [ErrStoreClosed]; reads keep working.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, l := range s.listeners {
		l.shutdown()
		delete(s.listeners, id)
	}
}

func (s *Store) removeListener(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

func (s *Store) checkQueryLocked(q models.Query) error {
	key, ok := requiredIndex(q)
	if !ok {
		return nil
	}
	if _, provisioned := s.indexes[key]; !provisioned {
		return fmt.Errorf("%w: provision %q", ErrIndexRequired, key.String())
	}
	return nil
}

func (s *Store) snapshotLocked(q models.Query) models.DocumentList {
	selected := selectDocuments(s.collections[q.Collection], q)
	list := models.DocumentList{Documents: make([]models.Document, 0, len(selected))}
	for _, d := range selected {
		list.Documents = append(list.Documents, d.export())
	}
	return list
}

// commitTimeLocked returns a commit time strictly after the previous one.
func (s *Store) commitTimeLocked() time.Time {
	t := s.now().UTC()
	if !t.After(s.lastCommit) {
		t = s.lastCommit.Add(time.Nanosecond)
	}
	s.lastCommit = t
	return t
}

// notifyLocked queues a snapshot for every listener whose result may have
// changed: the document matched its filters before or after the commit.
func (s *Store) notifyLocked(collection string, before, after *document) {
	for _, l := range s.listeners {
		if l.query.Collection != collection {
			continue
		}
		affected := before != nil && matches(before.fields, l.query.Filters) ||
			after != nil && matches(after.fields, l.query.Filters)
		if affected {
			l.push(s.snapshotLocked(l.query))
		}
	}
}
