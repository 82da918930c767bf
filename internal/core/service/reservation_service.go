package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// ReservationService implements booking use cases and announces committed
// changes through the broadcaster.
type ReservationService struct {
	repo        ports.ReservationRepository
	authz       ports.Authorizer
	broadcaster ports.Broadcaster
	logger      zerolog.Logger
}

func NewReservationService(
	repo ports.ReservationRepository,
	authz ports.Authorizer,
	broadcaster ports.Broadcaster,
	logger zerolog.Logger,
) *ReservationService {
	return &ReservationService{repo: repo, authz: authz, broadcaster: broadcaster, logger: logger}
}

// CreateReservation stores a pending booking owned by the caller and, once the
// insert has committed, broadcasts newReservation to every connection.
func (s *ReservationService) CreateReservation(ctx context.Context, owner domain.Identity, in ports.CreateReservationInput) (*domain.Reservation, error) {
	if owner.Anonymous() {
		return nil, domain.NewAuthError(domain.ReasonMissingCredential, nil)
	}
	if strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Time) == "" {
		return nil, domain.Invalid("date and time are required")
	}
	if in.Guests <= 0 {
		return nil, domain.Invalid("guests must be greater than 0")
	}

	r := &domain.Reservation{
		Email:     owner.Email,
		Name:      in.Name,
		Phone:     in.Phone,
		Guests:    in.Guests,
		Date:      in.Date,
		Time:      in.Time,
		Status:    domain.ReservationPending,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, r)
	if err != nil {
		s.logger.Error().Err(err).Str("email", owner.Email).Msg("failed to create reservation")
		return nil, persistenceErr("create reservation", err)
	}
	r.ID = id

	s.broadcaster.Broadcast(domain.EventNewReservation, domain.NewReservationEvent{ID: id, Reservation: r})
	s.logger.Info().Str("reservation_id", id).Str("email", owner.Email).Msg("reservation created")

	return r, nil
}

func (s *ReservationService) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, persistenceErr("list reservations", err)
	}
	return out, nil
}

func (s *ReservationService) ListReservationsByEmail(ctx context.Context, email string) ([]domain.Reservation, error) {
	out, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, persistenceErr("list reservations by email", err)
	}
	return out, nil
}

// UpdateReservationStatus sets a new status and broadcasts reservationUpdated
// only when the store reports a modified record.
func (s *ReservationService) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) (ports.UpdateResult, error) {
	if !status.Valid() {
		return ports.UpdateResult{}, domain.Invalid("status must be one of: pending approved cancelled")
	}

	res, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error().Err(err).Str("reservation_id", id).Msg("failed to update reservation status")
		return ports.UpdateResult{}, persistenceErr("update reservation status", err)
	}

	if res.Modified > 0 {
		s.broadcaster.Broadcast(domain.EventReservationUpdated, domain.ReservationUpdate{ID: id, Status: status})
		s.logger.Info().Str("reservation_id", id).Str("status", string(status)).Msg("reservation status changed")
	}
	return res, nil
}

// DeleteReservation removes a booking. Only its owner or an admin may do so.
func (s *ReservationService) DeleteReservation(ctx context.Context, requester domain.Identity, id string) (int64, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, persistenceErr("delete reservation", err)
	}
	if r.Email != requester.Email {
		if err := s.authz.RequireAdmin(ctx, requester.Email); err != nil {
			return 0, err
		}
	}

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, persistenceErr("delete reservation", err)
	}
	return n, nil
}
