package token

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueAndVerifyAccessToken(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), time.Hour, 7*24*time.Hour)
	userID := uuid.New()

	tok, err := issuer.IssueAccessToken(userID, "drhouse", []string{"DOCTOR", "ADMIN"})
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	claims, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != userID.String() {
		t.Fatalf("sub = %q, want %q", claims.Subject, userID.String())
	}
	if claims.Username != "drhouse" {
		t.Fatalf("username = %q", claims.Username)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "DOCTOR" || claims.Roles[1] != "ADMIN" {
		t.Fatalf("roles = %v", claims.Roles)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatal("expected expiry in the future")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer([]byte("secret-a"), time.Hour, time.Hour)
	other := NewIssuer([]byte("secret-b"), time.Hour, time.Hour)

	tok, err := issuer.IssueAccessToken(uuid.New(), "alice", []string{"NURSE"})
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := other.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), -time.Minute, time.Hour)

	tok, err := issuer.IssueAccessToken(uuid.New(), "bob", nil)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := issuer.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), time.Hour, time.Hour)
	for _, bad := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Verify(bad); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify(%q): err = %v, want ErrInvalidToken", bad, err)
		}
	}
}

func TestRefreshTokensAreUniquePerIssue(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), time.Hour, 7*24*time.Hour)
	userID := uuid.New()

	// Same user, same instant: the jti must still make them distinct.
	a, err := issuer.IssueRefreshToken(userID)
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	b, err := issuer.IssueRefreshToken(userID)
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	if a == b {
		t.Fatal("two refresh tokens for the same user are identical")
	}

	claims, err := issuer.Verify(a)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != userID.String() || claims.ID == "" {
		t.Fatalf("claims = %+v, want subject and jti set", claims)
	}
}
