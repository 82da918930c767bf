package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// RoleAuthorizer resolves the admin role from the user store on every call.
type RoleAuthorizer struct {
	users ports.UserRepository
}

func NewRoleAuthorizer(users ports.UserRepository) *RoleAuthorizer {
	return &RoleAuthorizer{users: users}
}

func (a *RoleAuthorizer) IsAdmin(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("resolve role: %w", err)
	}
	return user.IsAdmin(), nil
}

func (a *RoleAuthorizer) RequireAdmin(ctx context.Context, email string) error {
	ok, err := a.IsAdmin(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}
