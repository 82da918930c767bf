package ports

import (
	"context"
	"time"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// TokenIssuer mints signed identity tokens.
type TokenIssuer interface {
	Issue(email string) (token string, expiresAt time.Time, err error)
}

// Authenticator turns an Authorization header value into a trusted identity.
// Failures are *domain.AuthError values.
type Authenticator interface {
	Authenticate(authHeader string) (domain.Identity, error)
	Verify(token string) (domain.Identity, error)
}

// Authorizer decides whether an identity holds the admin role. It is a pure
// read against the user store.
type Authorizer interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
	// RequireAdmin returns domain.ErrForbidden unless email resolves to an admin.
	RequireAdmin(ctx context.Context, email string) error
}
