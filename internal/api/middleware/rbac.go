package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// RequireAdmin lets the request through only when the authenticated identity
// currently holds the admin role. It must run after Auth.
func RequireAdmin(authz ports.Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := CurrentIdentity(c)
			if id.Anonymous() {
				return domain.NewAuthError(domain.ReasonMissingCredential, nil)
			}
			if err := authz.RequireAdmin(c.Request().Context(), id.Email); err != nil {
				return err
			}
			return next(c)
		}
	}
}
