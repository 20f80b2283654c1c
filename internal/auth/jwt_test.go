package auth

import (
	"testing"
	"time"

	"fleetflow/internal/access"
)

func TestGenerateVerify_RoundTrip(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	raw, err := m.Generate("u1", "ops@example.com", access.RoleDispatcher)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := m.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "ops@example.com" || claims.Role != "dispatcher" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	m1, _ := NewManager("secret-one", time.Hour)
	m2, _ := NewManager("secret-two", time.Hour)
	raw, err := m1.Generate("u1", "a@b.c", access.RoleManager)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m2.Verify(raw); err == nil {
		t.Fatal("expected verification failure with a different secret")
	}
}

func TestVerify_Expired(t *testing.T) {
	m, _ := NewManager("test-secret", time.Nanosecond)
	raw, err := m.Generate("u1", "a@b.c", access.RoleManager)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := m.Verify(raw); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestVerify_Garbage(t *testing.T) {
	m, _ := NewManager("test-secret", time.Hour)
	if _, err := m.Verify("not.a.token"); err == nil {
		t.Fatal("expected garbage token to fail verification")
	}
}

func TestNewManager_EmptySecret(t *testing.T) {
	if _, err := NewManager("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
