package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	token, err := SignSessionToken(Claims{Sub: "admin-1", Username: "hr-lead"})
	if err != nil {
		t.Fatalf("SignSessionToken: %v", err)
	}

	claims, err := VerifySessionToken(token)
	if err != nil {
		t.Fatalf("VerifySessionToken: %v", err)
	}
	if claims.Sub != "admin-1" || claims.Username != "hr-lead" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Exp <= time.Now().UTC().Unix() {
		t.Fatalf("expected future expiry, got %d", claims.Exp)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	token, err := SignSessionToken(Claims{Sub: "admin-1"})
	if err != nil {
		t.Fatalf("SignSessionToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := VerifySessionToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered signature, got %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three segments, got %d", len(parts))
	}
	if _, err := VerifySessionToken(parts[0] + "." + parts[1]); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing segment, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	token, err := SignSessionToken(Claims{Sub: "admin-1"})
	if err != nil {
		t.Fatalf("SignSessionToken: %v", err)
	}

	t.Setenv("SESSION_SECRET", "another-secret")
	if _, err := VerifySessionToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken with rotated secret, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	past := time.Now().UTC().Add(-time.Hour).Unix()
	token, err := SignSessionToken(Claims{Sub: "admin-1", Exp: past})
	if err != nil {
		t.Fatalf("SignSessionToken: %v", err)
	}
	if _, err := VerifySessionToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
