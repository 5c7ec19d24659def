// Package connectivity holds the process-wide online/offline signal.
//
// A single writer (the connectivity probe) feeds the [Monitor]; sync engines
// only read it through the [Observer] interface.
package connectivity

import "sync"

// Observer is the read-only view of the connectivity signal.
type Observer interface {
	// IsOnline returns the current value.
	IsOnline() bool
	// Subscribe registers fn for future transitions and returns a function
	// that removes it. fn is called only when the value changes, never with
	// the current value at registration time.
	Subscribe(fn func(online bool)) (unsubscribe func())
}

// Monitor is an observable boolean. Listeners run on the writer's goroutine,
// in registration order, outside the monitor's lock.
type Monitor struct {
	mu        sync.Mutex
	online    bool
	nextID    int
	listeners map[int]func(bool)
	order     []int
}

// NewMonitor returns a monitor with the given initial value.
func NewMonitor(initial bool) *Monitor {
	return &Monitor{online: initial, listeners: make(map[int]func(bool))}
}

func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Set updates the value and notifies listeners if it changed.
func (m *Monitor) Set(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online

	fns := make([]func(bool), 0, len(m.order))
	for _, id := range m.order {
		fns = append(fns, m.listeners[id])
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(online)
	}
}

func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.order = append(m.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.listeners, id)
			for i, v := range m.order {
				if v == id {
					m.order = append(m.order[:i], m.order[i+1:]...)
					break
				}
			}
		})
	}
}
