package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// UpdateResult mirrors the store's updateOne outcome.
type UpdateResult struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (string, error)
	List(ctx context.Context) ([]domain.User, error)
	SetRole(ctx context.Context, id, role string) (UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
}
