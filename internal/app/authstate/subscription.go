package authstate

import "sync"

// Subscription is the handle returned by Store.Subscribe.
type Subscription struct {
	store *Store
	id    uint64
	once  sync.Once
}

// Unsubscribe stops further deliveries. Calling it again, or on the handle
// returned for a nil subscriber, has no effect.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.store == nil {
		return
	}

	s.once.Do(func() {
		s.store.remove(s.id)
	})
}

// entry is one registered subscriber with its delivery queue.
// Deliveries to a single entry never overlap and keep the order in which the
// states were written.
type entry struct {
	id uint64
	fn Subscriber

	mu      sync.Mutex
	pending []Snapshot
	busy    bool
	removed bool
}

func (e *entry) enqueue(snap Snapshot) {
	e.mu.Lock()
	e.pending = append(e.pending, snap)
	e.mu.Unlock()
}

func (e *entry) cancel() {
	e.mu.Lock()
	e.removed = true
	e.pending = nil
	e.mu.Unlock()
}
