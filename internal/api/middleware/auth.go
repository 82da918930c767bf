package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/api/metrics"
	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

const identityKey = "identity"

// Auth verifies the bearer token and stores the resulting identity in the
// context. Every failure is returned as a *domain.AuthError so the client
// sees one uniform 401.
func Auth(authn ports.Authenticator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := authn.Authenticate(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				RecordAuthFailure(log, c, err)
				return err
			}
			SetIdentity(c, id)
			return next(c)
		}
	}
}

// RecordAuthFailure logs and counts a rejected credential with its internal
// reason.
func RecordAuthFailure(log zerolog.Logger, c echo.Context, err error) {
	reason := domain.ReasonInvalidToken
	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		reason = authErr.Reason
	}
	metrics.AuthFailuresTotal.WithLabelValues(string(reason)).Inc()
	log.Debug().
		Err(err).
		Str("reason", string(reason)).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request rejected: unauthenticated")
}

func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity returns the identity bound by Auth, or the zero Identity.
func CurrentIdentity(c echo.Context) domain.Identity {
	id, _ := c.Get(identityKey).(domain.Identity)
	return id
}
