package watch

import (
	"encoding/json"
	"time"

	"chatfront/internal/app/authstate"
)

// MessageType identifies frames pushed to the browser.
type MessageType string

const (
	// TypeAuthState carries an authstate.Snapshot.
	TypeAuthState MessageType = "AUTH_STATE"
)

// Message is the frame written to the websocket.
type Message struct {
	Type      MessageType        `json:"type"`
	Payload   authstate.Snapshot `json:"payload"`
	Timestamp int64              `json:"timestamp"`
}

// encodeSnapshot builds the AUTH_STATE frame for snap.
func encodeSnapshot(snap authstate.Snapshot) ([]byte, error) {
	return json.Marshal(Message{
		Type:      TypeAuthState,
		Payload:   snap,
		Timestamp: time.Now().UnixMilli(),
	})
}
