package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"missing credential", domain.NewAuthError(domain.ReasonMissingCredential, nil), http.StatusUnauthorized, `{"error":"unauthorized"}`},
		{"expired token", domain.NewAuthError(domain.ReasonExpiredToken, errors.New("exp")), http.StatusUnauthorized, `{"error":"unauthorized"}`},
		{"forbidden", fmt.Errorf("menu: %w", domain.ErrForbidden), http.StatusForbidden, `{"error":"forbidden access"}`},
		{"invalid", domain.Invalid("guests must be positive"), http.StatusBadRequest, `{"error":"invalid input: guests must be positive"}`},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, `{"error":"user not found"}`},
		{"reservation not found", domain.ErrReservationNotFound, http.StatusNotFound, `{"error":"reservation not found"}`},
		{"not found", domain.ErrNotFound, http.StatusNotFound, `{"error":"resource not found"}`},
		{"conflict", domain.ErrUserExists, http.StatusConflict, `{"error":"user already exists"}`},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests, `{"error":"rate limit exceeded"}`},
		{"provider", domain.ErrPaymentProvider, http.StatusBadGateway, `{"error":"payment provider unavailable"}`},
		{"echo", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, `{"error":"nope"}`},
		{"unexpected", fmt.Errorf("insert: %w", domain.ErrPersistence), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tc.body {
				t.Fatalf("expected body %s, got %s", tc.body, got)
			}
		})
	}
}

func TestHTTPErrorHandler_AuthReasonsShareOneBody(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	reasons := []domain.AuthReason{
		domain.ReasonMissingCredential,
		domain.ReasonMalformedHeader,
		domain.ReasonInvalidToken,
		domain.ReasonExpiredToken,
	}

	var first string
	for _, r := range reasons {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		handler(domain.NewAuthError(r, nil), c)

		if first == "" {
			first = rec.Body.String()
			continue
		}
		if rec.Body.String() != first {
			t.Fatalf("reason %s leaked into body: %s", r, rec.Body.String())
		}
	}
}
