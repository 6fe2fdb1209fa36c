package scheduler

import (
	"sync"
	"time"
)

type manualEntry struct {
	interval time.Duration
	next     time.Duration
	fn       func()
}

// ManualClock is a Clock driven by Advance. Callbacks run synchronously on
// the goroutine calling Advance, in due-time order, ties broken by
// registration order.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Duration
	nextID  EntryID
	entries map[EntryID]*manualEntry
}

func NewManualClock() *ManualClock {
	return &ManualClock{entries: make(map[EntryID]*manualEntry)}
}

func (m *ManualClock) Every(interval time.Duration, fn func()) (EntryID, error) {
	if interval < time.Second {
		return 0, ErrInvalidInterval
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.entries[m.nextID] = &manualEntry{
		interval: interval,
		next:     m.now + interval,
		fn:       fn,
	}

	return m.nextID, nil
}

func (m *ManualClock) Remove(id EntryID) {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
}

// Advance moves simulated time forward by d, firing every callback that
// comes due. An entry removed by an earlier callback does not fire again.
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		e := m.nextDueLocked(target)
		if e == nil {
			m.now = target
			m.mu.Unlock()
			return
		}

		m.now = e.next
		e.next += e.interval
		fn := e.fn
		m.mu.Unlock()

		fn()
	}
}

// Tick advances by n seconds.
func (m *ManualClock) Tick(n int) {
	for i := 0; i < n; i++ {
		m.Advance(time.Second)
	}
}

func (m *ManualClock) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *ManualClock) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *ManualClock) nextDueLocked(target time.Duration) *manualEntry {
	var (
		best   *manualEntry
		bestID EntryID
	)

	for id, e := range m.entries {
		if e.next > target {
			continue
		}
		if best == nil || e.next < best.next || (e.next == best.next && id < bestID) {
			best, bestID = e, id
		}
	}

	return best
}
