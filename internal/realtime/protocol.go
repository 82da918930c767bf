// Package realtime implements the bidirectional channel: the connection
// registry, the per-connection session loop and the mutation broadcaster.
package realtime

import "encoding/json"

// Frame is the wire shape of every channel message, in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ErrorPayload is the body of an error event.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JoinedPayload acknowledges a granted room membership.
type JoinedPayload struct {
	Room string `json:"room"`
}

type joinRequest struct {
	UserID string `json:"userId"`
}

type chatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// Error codes sent in error events.
const (
	CodeUnauthenticated    = "unauthenticated"
	CodeForbidden          = "forbidden"
	CodeInvalidMessage     = "invalid_message"
	CodeRateLimited        = "rate_limited"
	CodePersistenceFailure = "persistence_failure"
	CodeUnknownEvent       = "unknown_event"
	CodeInternal           = "internal"
)

func encodeFrame(event string, data json.RawMessage) ([]byte, error) {
	return json.Marshal(Frame{Event: event, Data: data})
}
