package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// CreateReservationInput carries the booking details submitted by a user.
type CreateReservationInput struct {
	Name   string
	Phone  string
	Guests int
	Date   string
	Time   string
}

// ReservationService defines booking use cases. Mutations broadcast only
// after the store commit.
type ReservationService interface {
	CreateReservation(ctx context.Context, owner domain.Identity, input CreateReservationInput) (*domain.Reservation, error)
	ListReservations(ctx context.Context) ([]domain.Reservation, error)
	ListReservationsByEmail(ctx context.Context, email string) ([]domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) (UpdateResult, error)
	DeleteReservation(ctx context.Context, requester domain.Identity, id string) (int64, error)
}
