package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m, err := NewManager("test-secret")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	signed, err := m.NewAccessToken("acc-42", "model", time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not parse as valid: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not a map")
	}
	if claims["account_id"] != "acc-42" {
		t.Errorf("account_id = %v, want acc-42", claims["account_id"])
	}
	if claims["role"] != "model" {
		t.Errorf("role = %v, want model", claims["role"])
	}
}

func TestEmptySigningKeyRejected(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("expected an error for an empty signing key")
	}
}

func TestRefreshTokensDiffer(t *testing.T) {
	m, err := NewManager("test-secret")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	a, err := m.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, err := m.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if a == b {
		t.Error("two refresh tokens are identical")
	}
	if len(a) != 64 {
		t.Errorf("refresh token length = %d, want 64 hex chars", len(a))
	}
}
