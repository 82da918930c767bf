package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// RegisterUserInput carries the fields a client may set on its own account.
type RegisterUserInput struct {
	Email    string
	Name     string
	PhotoURL string
}

// RegisterUserResult reports whether a new account was inserted.
type RegisterUserResult struct {
	InsertedID    string
	AlreadyExists bool
}

// UserService defines account operations.
type UserService interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	PromoteUser(ctx context.Context, id string) (UpdateResult, error)
	DeleteUser(ctx context.Context, id string) (int64, error)
}
