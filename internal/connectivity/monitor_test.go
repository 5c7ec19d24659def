package connectivity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitor_InitialValue(t *testing.T) {
	assert.True(t, NewMonitor(true).IsOnline())
	assert.False(t, NewMonitor(false).IsOnline())
}

func TestMonitor_NotifiesOnlyOnChange(t *testing.T) {
	m := NewMonitor(true)

	var got []bool
	m.Subscribe(func(online bool) { got = append(got, online) })

	m.Set(true)
	m.Set(false)
	m.Set(false)
	m.Set(true)

	assert.Equal(t, []bool{false, true}, got)
	assert.True(t, m.IsOnline())
}

func TestMonitor_ListenersInRegistrationOrder(t *testing.T) {
	m := NewMonitor(false)

	var order []string
	m.Subscribe(func(bool) { order = append(order, "a") })
	m.Subscribe(func(bool) { order = append(order, "b") })

	m.Set(true)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestMonitor_Unsubscribe(t *testing.T) {
	m := NewMonitor(true)

	calls := 0
	unsubscribe := m.Subscribe(func(bool) { calls++ })
	m.Set(false)

	unsubscribe()
	unsubscribe()
	m.Set(true)

	assert.Equal(t, 1, calls)
}

func TestMonitor_ListenerMayReadValue(t *testing.T) {
	m := NewMonitor(true)

	var seen bool
	m.Subscribe(func(online bool) { seen = m.IsOnline() == online })
	m.Set(false)

	assert.True(t, seen, "listeners run outside the lock")
}

func TestMonitor_ConcurrentReaders(t *testing.T) {
	m := NewMonitor(true)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = m.IsOnline()
			}
		}()
	}
	for j := 0; j < 100; j++ {
		m.Set(j%2 == 0)
	}
	wg.Wait()
}

var _ Observer = (*Monitor)(nil)
