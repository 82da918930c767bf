package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

func TestRoleAuthorizer_IsAdmin(t *testing.T) {
	repo := newStubUserRepo(
		domain.User{Email: "boss@example.com", Role: domain.RoleAdmin},
		domain.User{Email: "guest@example.com"},
	)
	authz := NewRoleAuthorizer(repo)

	cases := []struct {
		email string
		want  bool
	}{
		{"boss@example.com", true},
		{"guest@example.com", false},
		{"ghost@example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		got, err := authz.IsAdmin(context.Background(), tc.email)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.email, err)
		}
		if got != tc.want {
			t.Errorf("%q: expected %v, got %v", tc.email, tc.want, got)
		}
	}
}

func TestRoleAuthorizer_ReflectsRoleChangesImmediately(t *testing.T) {
	repo := newStubUserRepo(domain.User{ID: "u1", Email: "ana@example.com"})
	authz := NewRoleAuthorizer(repo)

	if err := authz.RequireAdmin(context.Background(), "ana@example.com"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden before promotion, got %v", err)
	}
	if _, err := repo.SetRole(context.Background(), "u1", domain.RoleAdmin); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if err := authz.RequireAdmin(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("expected admin after promotion, got %v", err)
	}
}

func TestRoleAuthorizer_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("db down")
	authz := NewRoleAuthorizer(repo)

	err := authz.RequireAdmin(context.Background(), "ana@example.com")
	if err == nil || errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("store failure must surface as an error, not a denial: %v", err)
	}
}
