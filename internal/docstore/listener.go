package docstore

import (
	"sync"

	"github.com/MKhiriev/go-blog-sync/models"
)

// Listener is a change feed for one query. It queues a full snapshot of the
// query result on registration and after every commit that changes it, in
// commit order. The queue is unbounded so a slow reader never loses a
// snapshot.
type Listener struct {
	store *Store
	id    int
	query models.Query

	mu      sync.Mutex
	pending []models.DocumentList
	ready   chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newListener(store *Store, id int, q models.Query) *Listener {
	return &Listener{
		store: store,
		id:    id,
		query: q,
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Ready is signalled when snapshots are waiting to be read with Next.
func (l *Listener) Ready() <-chan struct{} {
	return l.ready
}

// Done is closed when the listener is closed, either by Close or because
// the store shut down.
func (l *Listener) Done() <-chan struct{} {
	return l.done
}

// Next returns and clears the queued snapshots, oldest first.
func (l *Listener) Next() []models.DocumentList {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.pending
	l.pending = nil
	return out
}

// Close unregisters the listener. It is idempotent.
func (l *Listener) Close() {
	l.store.removeListener(l.id)
	l.shutdown()
}

func (l *Listener) shutdown() {
	l.once.Do(func() { close(l.done) })
}

func (l *Listener) push(snapshot models.DocumentList) {
	l.mu.Lock()
	l.pending = append(l.pending, snapshot)
	l.mu.Unlock()

	select {
	case l.ready <- struct{}{}:
	default:
	}
}
