package websocket

import "encoding/json"

type OutgoingMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// IncomingMessage is one frame from a client. From is the connection id,
// Ticket the player name bound by the seat ticket (empty when auth is off).
type IncomingMessage struct {
	From   string          `json:"-"`
	Ticket string          `json:"-"`
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data,omitempty"`
}
