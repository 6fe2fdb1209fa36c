package scheduler

import (
	"fmt"
	"sync"
	"time"
)

// Handle identifies one periodic series started through a Registry. The zero
// Handle means "none".
type Handle uint64

type registration struct {
	handle Handle
	entry  EntryID
}

// Registry keeps at most one periodic callback per key.
type Registry struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	last     Handle
	byKey    map[string]registration
}

func NewRegistry(clock Clock, interval time.Duration) *Registry {
	return &Registry{
		clock:    clock,
		interval: interval,
		byKey:    make(map[string]registration),
	}
}

// Start schedules fn for key and returns the new handle, which is also passed
// to every invocation of fn. If key already has a series, the existing handle
// is returned and nothing new is scheduled.
func (r *Registry) Start(key string, fn func(Handle)) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reg, ok := r.byKey[key]; ok {
		return reg.handle, nil
	}

	r.last++
	handle := r.last

	entry, err := r.clock.Every(r.interval, func() { fn(handle) })
	if err != nil {
		return 0, fmt.Errorf("schedule %s: %w", key, err)
	}

	r.byKey[key] = registration{handle: handle, entry: entry}
	return handle, nil
}

// Cancel removes the series for key. It reports whether one existed.
func (r *Registry) Cancel(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.byKey[key]
	if !ok {
		return false
	}

	delete(r.byKey, key)
	r.clock.Remove(reg.entry)
	return true
}

// Current returns the live handle for key, or zero.
func (r *Registry) Current(key string) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byKey[key].handle
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byKey)
}

func (r *Registry) CancelAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.byKey)
	for key, reg := range r.byKey {
		r.clock.Remove(reg.entry)
		delete(r.byKey, key)
	}
	return n
}
