package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"chatfront/internal/pkg/logx"
)

// HandleAuthWebSocket upgrades the connection and streams auth state frames
// until the client leaves. Rate limiting and the admin check run as middleware.
func HandleAuthWebSocket(deps *AppDeps, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		deps.Hub.Serve(conn)
	}
}
