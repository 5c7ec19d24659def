package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-sync/internal/adapter"
	"github.com/MKhiriev/go-blog-sync/models"
)

var baseTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// at returns baseTime shifted by n minutes.
func at(n int) time.Time {
	return baseTime.Add(time.Duration(n) * time.Minute)
}

func postDoc(id string, date time.Time, likes ...string) models.Document {
	rawLikes := make([]any, 0, len(likes))
	for _, l := range likes {
		rawLikes = append(rawLikes, l)
	}
	return models.Document{ID: id, Fields: map[string]any{
		"title":           "title " + id,
		"content":         "content " + id,
		"date":            date.Format(time.RFC3339Nano),
		models.FieldLikes: rawLikes,
	}}
}

func commentDoc(id, postID string, date time.Time) models.Document {
	return models.Document{ID: id, Fields: map[string]any{
		models.FieldPostID: postID,
		"authorId":         "u-" + id,
		"authorName":       "author " + id,
		"content":          "comment " + id,
		"date":             date.Format(time.RFC3339Nano),
	}}
}

func postIDs(posts []models.Post) []string {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func commentIDs(comments []models.Comment) []string {
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	return ids
}

// stubCaps is a fixed capability verdict.
type stubCaps struct {
	authenticated bool
	authorized    bool
	identity      models.Identity
}

func (s stubCaps) IsAuthenticated() bool { return s.authenticated }
func (s stubCaps) IsAuthorized() bool { return s.authorized }
func (s stubCaps) Identity() (models.Identity, bool) {
	return s.identity, s.authenticated
}

func author() stubCaps {
	return stubCaps{
		authenticated: true,
		authorized:    true,
		identity:      models.Identity{UserID: "owner", Email: "owner@example.com", Name: "Owner"},
	}
}

// fakeSub is one subscription opened on fakeGateway. Tests drive it with
// push and fail.
type fakeSub struct {
	query    models.Query
	onChange func([]models.Document)
	onError  func(error)

	mu       sync.Mutex
	disposed bool
}

func (s *fakeSub) dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
}

func (s *fakeSub) isDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// push delivers a snapshot even if the subscription was disposed, like a
// callback that was already in flight.
func (s *fakeSub) push(docs ...models.Document) {
	s.onChange(docs)
}

func (s *fakeSub) fail(err error) {
	s.onError(err)
}

// fakeGateway is an in-memory RemoteGateway that returns documents in
// insertion order and never calls subscription callbacks on its own.
type fakeGateway struct {
	mu            sync.Mutex
	docs          map[string][]models.Document
	rejectOrdered bool
	listErr       error
	listCalls     []models.Query
	subs          []*fakeSub
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{docs: make(map[string][]models.Document)}
}

func (g *fakeGateway) put(collection string, docs ...models.Document) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.docs[collection] = append(g.docs[collection], docs...)
}

func (g *fakeGateway) reset(collection string, docs ...models.Document) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.docs[collection] = slices.Clone(docs)
}

func (g *fakeGateway) setListErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listErr = err
}

func (g *fakeGateway) SetToken(string) {}

func (g *fakeGateway) List(_ context.Context, q models.Query) ([]models.Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls = append(g.listCalls, q)

	if g.listErr != nil {
		return nil, g.listErr
	}
	if g.rejectOrdered && q.OrderBy != nil {
		return nil, fmt.Errorf("%w: the query requires an index", adapter.ErrQueryUnsupported)
	}

	var out []models.Document
	for _, doc := range g.docs[q.Collection] {
		if matches(doc, q.Filters) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func matches(doc models.Document, filters []models.Filter) bool {
	for _, f := range filters {
		if v, _ := doc.Fields[f.Field].(string); v != f.Value {
			return false
		}
	}
	return true
}

func (g *fakeGateway) Create(context.Context, string, models.Write) (string, error) {
	return "", fmt.Errorf("%w: not supported by the fake", adapter.ErrBadRequest)
}

func (g *fakeGateway) Update(context.Context, string, string, models.Write) error {
	return fmt.Errorf("%w: not supported by the fake", adapter.ErrBadRequest)
}

func (g *fakeGateway) Delete(context.Context, string, string) error {
	return fmt.Errorf("%w: not supported by the fake", adapter.ErrBadRequest)
}

func (g *fakeGateway) Subscribe(_ context.Context, q models.Query, onChange func([]models.Document), onError func(error)) adapter.Unsubscribe {
	g.mu.Lock()
	defer g.mu.Unlock()
	sub := &fakeSub{query: q, onChange: onChange, onError: onError}
	g.subs = append(g.subs, sub)
	return sub.dispose
}

func (g *fakeGateway) Ping(context.Context) error { return nil }

func (g *fakeGateway) subscriptions() []*fakeSub {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.subs)
}

func (g *fakeGateway) lastSub(t *testing.T) *fakeSub {
	t.Helper()
	subs := g.subscriptions()
	require.NotEmpty(t, subs)
	return subs[len(subs)-1]
}

func (g *fakeGateway) listed() []models.Query {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.listCalls)
}

// activeSubs counts subscriptions that were not disposed.
func (g *fakeGateway) activeSubs() int {
	n := 0
	for _, s := range g.subscriptions() {
		if !s.isDisposed() {
			n++
		}
	}
	return n
}

// waitMode waits until the engine reaches mode.
func waitMode(t *testing.T, e SyncTarget, mode models.SyncMode) {
	t.Helper()
	require.Eventually(t, func() bool { return e.Mode() == mode },
		2*time.Second, 5*time.Millisecond, "engine %s never reached %s (now %s)", e.Name(), mode, e.Mode())
}

// laggingMonitor is a connectivity.Observer whose value can change without
// telling subscribers, like a connectivity check whose result was not
// delivered yet.
type laggingMonitor struct {
	mu     sync.Mutex
	online bool
}

func newLaggingMonitor(online bool) *laggingMonitor {
	return &laggingMonitor{online: online}
}

func (m *laggingMonitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

func (m *laggingMonitor) Subscribe(func(bool)) func() { return func() {} }

func (m *laggingMonitor) setQuietly(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.online = online
}
