package admin

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/jasmine-step/errors"
)

const tokenIssuer = "jasmine-step"

// Claims identify an administrator.
type Claims struct {
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 admin token for subject, valid for ttl.
func IssueToken(secret, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.MissingField("jwt_secret")
	}
	now := time.Now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// TokenValidator verifies bearer tokens against a shared secret.
type TokenValidator struct {
	secret []byte
}

// NewTokenValidator creates a validator for secret.
func NewTokenValidator(secret string) *TokenValidator {
	return &TokenValidator{secret: []byte(secret)}
}

// Validate parses token and returns its claims.
func (v *TokenValidator) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Unauthorized("invalid token").WithCause(err)
	}
	if !parsed.Valid {
		return nil, errors.Unauthorized("invalid token")
	}
	return claims, nil
}
