package watch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatfront/internal/app/authstate"
	"chatfront/internal/app/user"
)

type gauge struct{ open atomic.Int64 }

func (g *gauge) WatchersChanged(open int) { g.open.Store(int64(open)) }

func newTestHub(t *testing.T) (*authstate.Store, *Hub, *gauge, string) {
	t.Helper()

	store := authstate.New(authstate.WithLogger(zerolog.Nop()))
	g := &gauge{}
	hub := NewHub(store, g)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn)
	}))
	t.Cleanup(srv.Close)

	return store, hub, g, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_StreamsInitialAndChangedState(t *testing.T) {
	store, hub, g, url := newTestHub(t)

	conn := dial(t, url)

	first := readMessage(t, conn)
	assert.Equal(t, TypeAuthState, first.Type)
	assert.False(t, first.Payload.IsAuthenticated)
	assert.Nil(t, first.Payload.User)

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)
	assert.EqualValues(t, 1, g.open.Load())

	store.SetAuthUser(user.User{"email": "a@b.com"})
	second := readMessage(t, conn)
	assert.True(t, second.Payload.IsAuthenticated)
	assert.Equal(t, "a@b.com", second.Payload.User.Username())

	store.SetAuthUser(nil)
	third := readMessage(t, conn)
	assert.False(t, third.Payload.IsAuthenticated)
}

func TestHub_ConnectWhileAuthenticated(t *testing.T) {
	store, _, _, url := newTestHub(t)
	store.SetAuthUser(user.User{"username": "alice", "role": "admin"})

	msg := readMessage(t, dial(t, url))

	assert.True(t, msg.Payload.IsAuthenticated)
	assert.Equal(t, "admin", msg.Payload.User["role"])
}

func TestHub_DisconnectUnsubscribes(t *testing.T) {
	store, hub, g, url := newTestHub(t)

	conn := dial(t, url)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return store.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))
	_ = conn.Close()

	require.Eventually(t, func() bool {
		return store.Subscribers() == 0 && hub.Count() == 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.EqualValues(t, 0, g.open.Load())
}

func TestHub_Shutdown(t *testing.T) {
	store, hub, _, url := newTestHub(t)

	conn := dial(t, url)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		hub.Shutdown()
		close(done)
	}()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not return")
	}

	assert.Equal(t, 0, hub.Count())
	assert.Equal(t, 0, store.Subscribers())

	late := dial(t, url)
	require.NoError(t, late.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = late.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestWatcher_PushAfterCloseIsDropped(t *testing.T) {
	hub := NewHub(authstate.New(authstate.WithLogger(zerolog.Nop())), nil)
	w := newWatcher(hub, nil)

	w.closeWith(websocket.CloseGoingAway, "")
	w.push(authstate.Snapshot{})

	assert.Empty(t, w.send)
}

func TestWatcher_SlowConsumerIsClosed(t *testing.T) {
	hub := NewHub(authstate.New(authstate.WithLogger(zerolog.Nop())), nil)
	w := newWatcher(hub, nil)

	for i := 0; i < sendBuffer+1; i++ {
		w.push(authstate.Snapshot{})
	}

	select {
	case <-w.done:
	default:
		t.Fatal("watcher should be closed once its buffer overflows")
	}
	assert.Equal(t, websocket.ClosePolicyViolation, w.closeCode)
}
