package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// ReservationRepository defines persistence for bookings.
type ReservationRepository interface {
	Insert(ctx context.Context, r *domain.Reservation) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Reservation, error)
	// UpdateStatus sets the status; Modified is 0 when it already had that value.
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) (UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
}
