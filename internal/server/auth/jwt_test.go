package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse(t *testing.T) {
	secret := []byte("super-secret")

	tokenString, err := GenerateToken("u1", "alice", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if tokenString == "" {
		t.Fatal("empty token")
	}

	userID, username, err := ParseToken(tokenString, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if userID != "u1" || username != "alice" {
		t.Fatalf("unexpected identity: %q %q", userID, username)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	tokenString, err := GenerateToken("u1", "alice", []byte("secret-a"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, _, err := ParseToken(tokenString, []byte("secret-b")); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParse_Expired(t *testing.T) {
	secret := []byte("secret")
	tokenString, err := GenerateToken("u1", "alice", secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, _, err := ParseToken(tokenString, secret); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, _, err := ParseToken("not-a-jwt", []byte("secret")); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestParse_WrongSigningMethod(t *testing.T) {
	// alg=none tokens must be rejected.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
		Username:         "alice",
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, _, err := ParseToken(tokenString, []byte("secret")); err == nil {
		t.Fatal("expected error for unsigned token")
	}
}
