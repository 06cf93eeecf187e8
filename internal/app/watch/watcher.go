package watch

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chatfront/internal/app/authstate"
	"chatfront/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// watchers only send control frames, so reads stay small.
	maxMessageSize = 512

	// sendBuffer is how many frames may queue before a watcher is dropped as too slow.
	sendBuffer = 16
)

// Watcher streams auth state snapshots over one websocket connection.
type Watcher struct {
	id   string
	conn *websocket.Conn

	// send queues encoded frames for writePump. It is never closed; done
	// signals shutdown instead, so late publishes cannot panic.
	send chan []byte
	done chan struct{}

	closeOnce   sync.Once
	closeCode   int
	closeReason string

	sub    *authstate.Subscription
	logger zerolog.Logger
}

func newWatcher(hub *Hub, conn *websocket.Conn) *Watcher {
	id := randx.WatcherID()

	return &Watcher{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		logger: hub.logger.With().Str("watcher_id", id).Logger(),
	}
}

// push is the watcher's store subscriber. It never blocks the notifying goroutine.
func (w *Watcher) push(snap authstate.Snapshot) {
	select {
	case <-w.done:
		return
	default:
	}

	frame, err := encodeSnapshot(snap)
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to encode auth state frame.")
		return
	}

	select {
	case w.send <- frame:
	default:
		w.logger.Warn().Msg("Watcher send buffer full. Dropping slow watcher.")
		w.closeWith(websocket.ClosePolicyViolation, "too slow")
	}
}

// closeWith signals both pumps to stop. Only the first call's code is sent.
func (w *Watcher) closeWith(code int, reason string) {
	w.closeOnce.Do(func() {
		w.closeCode = code
		w.closeReason = reason
		close(w.done)
	})
}

// writePump drains send to the connection and keeps it alive with pings.
func (w *Watcher) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := w.conn.Close(); err != nil {
			w.logger.Debug().Err(err).Msg("Connection close error.")
		}
	}()

	for {
		select {
		case frame := <-w.send:
			if err := w.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				w.closeWith(websocket.CloseAbnormalClosure, "")
				return
			}
			if err := w.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				w.logger.Info().Err(err).Msg("Write failed. Closing watcher.")
				w.closeWith(websocket.CloseAbnormalClosure, "")
				return
			}

		case <-ticker.C:
			if err := w.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				w.closeWith(websocket.CloseAbnormalClosure, "")
				return
			}
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				w.closeWith(websocket.CloseAbnormalClosure, "")
				return
			}

		case <-w.done:
			if w.closeCode != websocket.CloseAbnormalClosure {
				msg := websocket.FormatCloseMessage(w.closeCode, w.closeReason)
				_ = w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			}
			return
		}
	}
}

// readPump consumes client frames until the connection fails or closes.
// Clients have nothing to say; reading is what processes pongs and close frames.
func (w *Watcher) readPump() {
	w.conn.SetReadLimit(maxMessageSize)

	if err := w.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		w.logger.Error().Err(err).Msg("Failed to set read deadline.")
		return
	}

	w.conn.SetPongHandler(func(string) error {
		return w.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				w.logger.Info().Err(err).Msg("Watcher connection closed unexpectedly.")
			}
			return
		}
	}
}
