package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// UserService implements account registration and the admin user operations.
type UserService struct {
	repo   ports.UserRepository
	authz  ports.Authorizer
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, authz ports.Authorizer, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, authz: authz, logger: logger}
}

// RegisterUser inserts the account if its email is new. The role is never
// taken from the caller.
func (s *UserService) RegisterUser(ctx context.Context, in ports.RegisterUserInput) (*ports.RegisterUserResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, domain.Invalid("email is required")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return &ports.RegisterUserResult{AlreadyExists: true}, nil
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, persistenceErr("register user", err)
	}

	id, err := s.repo.Create(ctx, &domain.User{
		Email:     email,
		Name:      in.Name,
		PhotoURL:  in.PhotoURL,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, domain.ErrUserExists) {
			return &ports.RegisterUserResult{AlreadyExists: true}, nil
		}
		return nil, persistenceErr("register user", err)
	}

	s.logger.Info().Str("email", email).Msg("user registered")
	return &ports.RegisterUserResult{InsertedID: id}, nil
}

func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	return s.authz.IsAdmin(ctx, email)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, persistenceErr("list users", err)
	}
	return users, nil
}

// PromoteUser is the only writer of the admin role.
func (s *UserService) PromoteUser(ctx context.Context, id string) (ports.UpdateResult, error) {
	res, err := s.repo.SetRole(ctx, id, domain.RoleAdmin)
	if err != nil {
		return ports.UpdateResult{}, persistenceErr("promote user", err)
	}
	if res.Modified > 0 {
		s.logger.Info().Str("user_id", id).Msg("user promoted to admin")
	}
	return res, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) (int64, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, persistenceErr("delete user", err)
	}
	return n, nil
}
