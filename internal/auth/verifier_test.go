package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	token := signToken(t, "test-secret", jwt.MapClaims{
		"email": "someone@example.com",
		"name":  "Someone",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	identity, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity.Email != "someone@example.com" || identity.Name != "Someone" {
		t.Fatalf("identity = %+v", identity)
	}
}

func TestJWTVerifierRejects(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	cases := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": signToken(t, "other-secret", jwt.MapClaims{"email": "a@b.c"}),
		"expired": signToken(t, "test-secret", jwt.MapClaims{
			"email": "a@b.c",
			"exp":   time.Now().Add(-time.Hour).Unix(),
		}),
		"no email claim": signToken(t, "test-secret", jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}),
	}
	for name, token := range cases {
		if _, err := v.Verify(context.Background(), token); err == nil {
			t.Errorf("%s: verification unexpectedly succeeded", name)
		}
	}
}
