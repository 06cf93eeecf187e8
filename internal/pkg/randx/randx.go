/*
Package randx generates identifiers for watchers and log correlation.
*/
package randx

import "github.com/google/uuid"

// WatcherIDPrefix marks ids handed to websocket watchers.
const WatcherIDPrefix = "w_"

// WatcherID returns a new random watcher id.
func WatcherID() string {
	return WatcherIDPrefix + uuid.NewString()
}
