// Package identity implements the token-verifier boundary against the
// identity provider's HS256-signed bearer tokens.
package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	domain "loanmarket-api/internal/domain/identity"
)

// Claims carried by provider tokens. Only the email is consumed.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type JWTVerifier struct{ secret []byte }

var _ domain.Verifier = (*JWTVerifier)(nil)

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(ctx context.Context, token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Email == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Email, nil
}
