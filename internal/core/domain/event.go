package domain

import "encoding/json"

// Channel event names, both directions.
const (
	EventJoinRoom           = "joinRoom"
	EventJoinAdminRoom      = "joinAdminRoom"
	EventUserMessage        = "userMessage"
	EventAdminMessage       = "adminMessage"
	EventNewReservation     = "newReservation"
	EventReservationUpdated = "reservationUpdated"
	EventJoined             = "joined"
	EventError              = "error"
)

// AdminRoom is the shared room joined by every admin connection.
const AdminRoom = "adminRoom"

// Envelope is a server-originated event addressed to one room, or to every
// live connection when Room is empty.
type Envelope struct {
	Room  string          `json:"room,omitempty"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Global reports whether the envelope targets all connections.
func (e Envelope) Global() bool { return e.Room == "" }

// NewEnvelope marshals payload into an envelope.
func NewEnvelope(room, event string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Room: room, Event: event, Data: data}, nil
}

// ChatPayload is the body of userMessage events in both directions.
type ChatPayload struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// ReservationUpdate is the body of reservationUpdated events.
type ReservationUpdate struct {
	ID     string            `json:"id"`
	Status ReservationStatus `json:"status"`
}

// NewReservationEvent is the body of newReservation events: the stored
// record plus its id.
type NewReservationEvent struct {
	ID string `json:"id"`
	*Reservation
}
