package security

import (
	"errors"
	"testing"
)

func TestHashAndCheck(t *testing.T) {
	h, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(h, "correct horse") {
		t.Fatalf("expected password to verify")
	}
	if CheckPassword(h, "wrong") {
		t.Fatalf("wrong password verified")
	}
	if _, err := HashPassword("short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword, got %v", err)
	}
}

func TestNormalizeRole(t *testing.T) {
	for in, want := range map[string]string{"ADMIN": RoleAdmin, " admin ": RoleAdmin, "viewer": RoleViewer, "root": RoleViewer, "": RoleViewer} {
		if got := NormalizeRole(in); got != want {
			t.Fatalf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewToken(t *testing.T) {
	a, err := NewToken(32)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewToken(32)
	if a == b || len(a) != 43 {
		t.Fatalf("unexpected tokens %q %q", a, b)
	}
}
