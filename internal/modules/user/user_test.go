package user

import (
	"context"
	"errors"
	"testing"

	"fleetflow/internal/access"
)

func newTestService() *Service {
	return NewService(NewMemoryStore())
}

func TestCreate_HashesPasswordAndValidates(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateCommand{
		Name: "Meera", Email: "Meera@Fleet.Test", Password: "secret1", Role: access.RoleDispatcher,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "secret1" {
		t.Fatal("password must be stored hashed")
	}
	if u.Email != "meera@fleet.test" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}

	cases := []CreateCommand{
		{Email: "a@b.c", Password: "secret1", Role: access.RoleAnalyst}, // no name
		{Name: "X", Password: "secret1", Role: access.RoleAnalyst},      // no email
		{Name: "X", Email: "a@b.c", Password: "short", Role: access.RoleAnalyst},
		{Name: "X", Email: "a@b.c", Password: "secret1", Role: "admin"},
	}
	for i, cmd := range cases {
		if _, err := svc.Create(ctx, cmd); !errors.Is(err, ErrBadRequest) {
			t.Errorf("case %d: expected ErrBadRequest, got %v", i, err)
		}
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	cmd := CreateCommand{Name: "A", Email: "dup@fleet.test", Password: "secret1", Role: access.RoleAnalyst}
	if _, err := svc.Create(ctx, cmd); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, cmd); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.Create(ctx, CreateCommand{
		Name: "Meera", Email: "meera@fleet.test", Password: "secret1", Role: access.RoleManager,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	u, err := svc.Authenticate(ctx, "MEERA@fleet.test", "secret1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.Role != access.RoleManager {
		t.Fatalf("unexpected role %s", u.Role)
	}

	// Wrong password and unknown email report the same error.
	if _, err := svc.Authenticate(ctx, "meera@fleet.test", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost@fleet.test", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}
