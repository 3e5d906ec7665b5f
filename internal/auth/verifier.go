package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified claim set returned by the identity provider.
type Identity struct {
	Email string
	Name  string
}

// Verifier validates a bearer credential and returns the identity it proves.
// The concrete provider is injected so the core stays testable with fakes.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// JWTVerifier verifies HS256 tokens carrying email/name claims.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid token claims")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return Identity{}, errors.New("token carries no email claim")
	}
	name, _ := claims["name"].(string)

	return Identity{Email: email, Name: name}, nil
}

// StaticVerifier maps fixed tokens to identities. Test use only.
type StaticVerifier map[string]Identity

func (v StaticVerifier) Verify(_ context.Context, token string) (Identity, error) {
	id, ok := v[token]
	if !ok {
		return Identity{}, errors.New("unknown token")
	}
	return id, nil
}
