package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// SelfOnly rejects requests whose path or query parameter names an identity
// other than the authenticated one. An absent parameter passes; the handler
// then falls back to the caller's own identity. It must run after Auth.
func SelfOnly(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := CurrentIdentity(c)
			if id.Anonymous() {
				return domain.NewAuthError(domain.ReasonMissingCredential, nil)
			}

			target := c.Param(param)
			if target == "" {
				target = c.QueryParam(param)
			}
			if target != "" && target != id.Email {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
