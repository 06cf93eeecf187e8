/*
Package watch pushes auth state changes to browsers over websockets.

Each connection becomes a Watcher holding one store subscription; the Hub
tracks live watchers so the server can close them all on shutdown.
*/
package watch

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chatfront/internal/app/authstate"
	"chatfront/internal/pkg/logx"
)

// Recorder observes the number of open watchers.
type Recorder interface {
	WatchersChanged(open int)
}

type nopRecorder struct{}

func (nopRecorder) WatchersChanged(int) {}

// Hub owns the set of live watchers for one store.
type Hub struct {
	store *authstate.Store

	// mu protects watchers and closed.
	mu       sync.RWMutex
	watchers map[string]*Watcher
	closed   bool

	// wg tracks running Serve calls so Shutdown can wait for them.
	wg sync.WaitGroup

	recorder Recorder
	logger   zerolog.Logger
}

// NewHub returns a Hub publishing snapshots of store. recorder may be nil.
func NewHub(store *authstate.Store, recorder Recorder) *Hub {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &Hub{
		store:    store,
		watchers: make(map[string]*Watcher),
		recorder: recorder,
		logger:   logx.Component("watch"),
	}
}

// Serve streams snapshots to conn until the client leaves or the hub shuts
// down. The first frame is the state at the moment of connecting.
func (h *Hub) Serve(conn *websocket.Conn) {
	w := newWatcher(h, conn)

	if !h.register(w) {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		_ = conn.WriteMessage(websocket.CloseMessage, msg)
		_ = conn.Close()
		return
	}
	defer h.unregister(w)

	go w.writePump()

	w.sub = h.store.Subscribe(w.push)
	w.readPump()

	w.sub.Unsubscribe()
	w.closeWith(websocket.CloseNormalClosure, "")
}

// Count returns the number of open watchers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.watchers)
}

// Shutdown closes every watcher with a going-away frame, refuses new ones and
// waits for their Serve calls to return.
func (h *Hub) Shutdown() {
	h.logger.Info().Msg("Shutting down watcher hub...")

	h.mu.Lock()
	h.closed = true
	open := make([]*Watcher, 0, len(h.watchers))
	for _, w := range h.watchers {
		open = append(open, w)
	}
	h.mu.Unlock()

	for _, w := range open {
		w.closeWith(websocket.CloseGoingAway, "server shutting down")
	}

	h.wg.Wait()

	h.logger.Info().Int("closed", len(open)).Msg("Watcher hub shutdown complete.")
}

func (h *Hub) register(w *Watcher) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	h.watchers[w.id] = w
	h.wg.Add(1)
	open := len(h.watchers)
	h.mu.Unlock()

	h.recorder.WatchersChanged(open)
	w.logger.Info().Int("open", open).Msg("Watcher connected.")
	return true
}

func (h *Hub) unregister(w *Watcher) {
	h.mu.Lock()
	delete(h.watchers, w.id)
	open := len(h.watchers)
	h.mu.Unlock()

	h.recorder.WatchersChanged(open)
	w.logger.Info().Int("open", open).Msg("Watcher disconnected.")
	h.wg.Done()
}
