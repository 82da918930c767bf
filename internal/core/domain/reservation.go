package domain

import "time"

// ReservationStatus represents the lifecycle state of a table booking.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationApproved  ReservationStatus = "approved"
	ReservationCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationApproved, ReservationCancelled:
		return true
	}
	return false
}

// Reservation is a table booking submitted by an authenticated user.
type Reservation struct {
	ID        string            `json:"_id" bson:"_id,omitempty"`
	Email     string            `json:"email" bson:"email"`
	Name      string            `json:"name" bson:"name"`
	Phone     string            `json:"phone,omitempty" bson:"phone,omitempty"`
	Guests    int               `json:"guests" bson:"guests"`
	Date      string            `json:"date" bson:"date"`
	Time      string            `json:"time" bson:"time"`
	Status    ReservationStatus `json:"status" bson:"status"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
}
