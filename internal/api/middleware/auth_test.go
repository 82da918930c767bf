package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/service"
)

const testSecret = "secret"

func newContext(method, target, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	signed, _, err := tokens.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, rec := newContext(http.MethodGet, "/", "Bearer "+signed)

	called := false
	handler := Auth(tokens, zerolog.Nop())(func(c echo.Context) error {
		called = true
		if got := CurrentIdentity(c).Email; got != "alice@example.com" {
			t.Fatalf("identity not set, got %q", got)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	other := service.NewTokenService("other-secret", time.Hour)
	foreign, _, err := other.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	cases := []struct {
		name   string
		header string
		reason domain.AuthReason
	}{
		{"missing header", "", domain.ReasonMissingCredential},
		{"no scheme", foreign, domain.ReasonMalformedHeader},
		{"wrong signature", "Bearer " + foreign, domain.ReasonInvalidToken},
		{"garbage", "Bearer not.a.token", domain.ReasonInvalidToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newContext(http.MethodGet, "/", tc.header)
			handler := Auth(tokens, zerolog.Nop())(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			err := handler(c)
			authErr, ok := err.(*domain.AuthError)
			if !ok {
				t.Fatalf("expected *domain.AuthError, got %v", err)
			}
			if authErr.Reason != tc.reason {
				t.Fatalf("expected reason %s, got %s", tc.reason, authErr.Reason)
			}
			if !CurrentIdentity(c).Anonymous() {
				t.Fatalf("identity must not be bound on failure")
			}
		})
	}
}

func TestCurrentIdentity_Unset(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/", "")
	if !CurrentIdentity(c).Anonymous() {
		t.Fatalf("expected anonymous identity")
	}
}
