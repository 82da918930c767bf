package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

func TestAuthHandler_IssueToken(t *testing.T) {
	issuer := &stubIssuer{}
	h := NewAuthHandler(issuer, &stubUsers{})

	c, rec := newTestContext(http.MethodPost, "/jwt", `{"email":"ana@example.com","role":"admin"}`)
	if err := h.IssueToken(c); err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token != "token-for-ana@example.com" {
		t.Fatalf("unexpected token %q", resp.Token)
	}
	if len(issuer.issued) != 1 || issuer.issued[0] != "ana@example.com" {
		t.Fatalf("issuer called with %v", issuer.issued)
	}
}

func TestAuthHandler_IssueTokenRejectsBadEmail(t *testing.T) {
	issuer := &stubIssuer{}
	h := NewAuthHandler(issuer, &stubUsers{})

	for _, body := range []string{`{}`, `{"email":"not-an-email"}`, `{"email":`} {
		c, _ := newTestContext(http.MethodPost, "/jwt", body)
		if err := h.IssueToken(c); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("body %s: expected ErrInvalidInput, got %v", body, err)
		}
	}
	if len(issuer.issued) != 0 {
		t.Fatalf("no token should be issued, got %v", issuer.issued)
	}
}

func TestAuthHandler_AdminStatus(t *testing.T) {
	h := NewAuthHandler(&stubIssuer{}, &stubUsers{admins: map[string]bool{"boss@example.com": true}})

	cases := map[string]bool{"boss@example.com": true, "ana@example.com": false}
	for email, want := range cases {
		c, rec := newTestContext(http.MethodGet, "/user/admin/"+email, "")
		withIdentity(c, email)

		if err := h.AdminStatus(c); err != nil {
			t.Fatalf("AdminStatus: %v", err)
		}
		var resp adminStatusResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Admin != want {
			t.Fatalf("%s: expected admin=%v, got %v", email, want, resp.Admin)
		}
	}
}

func TestAuthHandler_AdminStatusRequiresIdentity(t *testing.T) {
	h := NewAuthHandler(&stubIssuer{}, &stubUsers{})
	c, _ := newTestContext(http.MethodGet, "/user/admin/x", "")

	if err := h.AdminStatus(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
