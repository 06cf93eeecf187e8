/*
Package authstate holds the process-local "who is signed in" value and broadcasts
every change to registered subscribers.

A Store is constructed once at startup and handed to whoever needs it. Login and
logout flows call SetAuthUser; the chat widget bridge calls Subscribe and receives
the current state immediately, then every later state.
*/
package authstate

import (
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"chatfront/internal/app/user"
	"chatfront/internal/pkg/logx"
)

// Snapshot is a point-in-time view of the authentication state.
// IsAuthenticated is true exactly when User is non-nil.
type Snapshot struct {
	IsAuthenticated bool      `json:"isAuthenticated"`
	User            user.User `json:"user"`
}

// Subscriber receives snapshots. It is never called while a store lock is held.
type Subscriber func(Snapshot)

// Recorder observes store activity, typically for metrics.
type Recorder interface {
	SubscribersChanged(active int)
	Notified(delivered, failed int)
	Transitioned(authenticated bool)
}

type nopRecorder struct{}

func (nopRecorder) SubscribersChanged(int) {}
func (nopRecorder) Notified(int, int)      {}
func (nopRecorder) Transitioned(bool)      {}

// Option configures a Store.
type Option func(*Store)

// WithRecorder attaches a Recorder. A nil recorder is ignored.
func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Store owns the current user and the ordered list of subscribers.
type Store struct {
	// mu guards current, subs and nextID.
	mu sync.Mutex

	// current is the normalized signed-in user, nil while anonymous.
	current user.User

	// subs is kept in registration order.
	subs   []*entry
	nextID uint64

	recorder Recorder
	logger   zerolog.Logger
}

// New returns an anonymous Store with no subscribers.
func New(opts ...Option) *Store {
	s := &Store{
		recorder: nopRecorder{},
		logger:   logx.Component("authstate"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CurrentUser returns a copy of the signed-in user, or nil when anonymous.
func (s *Store) CurrentUser() user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current.Clone()
}

// Authenticated reports whether a user is currently signed in.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current != nil
}

// Snapshot returns the current state with its own copy of the user.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return newSnapshot(s.current)
}

// Subscribers returns the number of registered subscribers.
func (s *Store) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.subs)
}

// Subscribe registers fn and calls it once with the current state before
// returning. A nil fn registers nothing and yields a handle whose Unsubscribe
// does nothing.
func (s *Store) Subscribe(fn Subscriber) *Subscription {
	if fn == nil {
		return &Subscription{}
	}

	s.mu.Lock()
	s.nextID++
	e := &entry{id: s.nextID, fn: fn}
	e.enqueue(newSnapshot(s.current))
	s.subs = append(s.subs, e)
	active := len(s.subs)
	s.mu.Unlock()

	s.recorder.SubscribersChanged(active)
	s.logger.Debug().Uint64("subscriber_id", e.id).Int("active", active).Msg("Subscriber registered.")

	delivered, failed := s.drain(e)
	s.recorder.Notified(delivered, failed)

	return &Subscription{store: s, id: e.id}
}

// SetAuthUser replaces the current user and queues the new snapshot for every
// subscriber in registration order. A nil u signs the user out. Otherwise the
// stored record is user.Normalize(u).
//
// Idle subscribers are called before SetAuthUser returns. A subscriber that is
// already being called on another goroutine receives the snapshot on that
// goroutine once its current call returns, possibly after SetAuthUser has
// returned. Subscriber panics are recovered and logged.
func (s *Store) SetAuthUser(u user.User) {
	next := user.Normalize(u)

	s.mu.Lock()
	s.current = next
	targets := slices.Clone(s.subs)
	for _, e := range targets {
		e.enqueue(newSnapshot(next))
	}
	s.mu.Unlock()

	s.recorder.Transitioned(next != nil)
	s.logger.Debug().
		Bool("authenticated", next != nil).
		Str("username", next.Username()).
		Int("subscribers", len(targets)).
		Msg("Auth state changed.")

	var delivered, failed int
	for _, e := range targets {
		d, f := s.drain(e)
		delivered += d
		failed += f
	}

	s.recorder.Notified(delivered, failed)
}

// remove drops the subscriber with the given id. Unknown ids are ignored.
func (s *Store) remove(id uint64) {
	s.mu.Lock()

	idx := slices.IndexFunc(s.subs, func(e *entry) bool { return e.id == id })
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	e := s.subs[idx]
	s.subs = slices.Delete(s.subs, idx, idx+1)
	e.cancel()
	active := len(s.subs)

	s.mu.Unlock()

	s.recorder.SubscribersChanged(active)
	s.logger.Debug().Uint64("subscriber_id", id).Int("active", active).Msg("Subscriber removed.")
}

// drain delivers e's queued snapshots unless another goroutine is already
// doing so. That goroutine picks up whatever was queued here.
func (s *Store) drain(e *entry) (delivered, failed int) {
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return 0, 0
	}
	e.busy = true

	for len(e.pending) > 0 && !e.removed {
		snap := e.pending[0]
		e.pending = e.pending[1:]
		e.mu.Unlock()

		if s.call(e, snap) {
			delivered++
		} else {
			failed++
		}

		e.mu.Lock()
	}

	e.pending = nil
	e.busy = false
	e.mu.Unlock()

	return delivered, failed
}

// call invokes a single subscriber inside its own recover boundary.
func (s *Store) call(e *entry, snap Snapshot) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			s.logger.Warn().
				Uint64("subscriber_id", e.id).
				Interface("panic", r).
				Msg("Subscriber panicked during notification. Ignoring.")
		}
	}()

	e.fn(snap)
	return true
}

func newSnapshot(u user.User) Snapshot {
	return Snapshot{
		IsAuthenticated: u != nil,
		User:            u.Clone(),
	}
}
