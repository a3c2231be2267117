package timer

import "sync"

// Registry owns the set of live timers and enforces the one-timer-per-key
// invariant. Insert and remove share one exclusive section; no user code runs
// under the lock.
type Registry struct {
	mu     sync.Mutex
	timers map[Key]*Handle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{timers: make(map[Key]*Handle)}
}

// tryInsert atomically inserts h if its key is absent and reports whether it
// won. A losing insert leaves the existing timer untouched; there is no wait
// and no queue.
func (r *Registry) tryInsert(h *Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.timers[h.key]; exists {
		return false
	}
	r.timers[h.key] = h
	return true
}

// get returns the handle for key, or nil.
func (r *Registry) get(key Key) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timers[key]
}

// remove deletes the entry for key. Idempotent; called only by the driver
// terminating for that key.
func (r *Registry) remove(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.timers, key)
}

// Count returns the number of live timers. Observational only.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// handles returns a snapshot slice of the live handles. Used by broadcast
// operations (reset-all, shutdown) so events are enqueued outside the lock.
func (r *Registry) handles() []*Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Handle, 0, len(r.timers))
	for _, h := range r.timers {
		out = append(out, h)
	}
	return out
}
