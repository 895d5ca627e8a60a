// Package auth issues and verifies the JSON Web Tokens used to
// authenticate API requests.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("the token is invalid or has expired")
)

// Claims are the token claims. The user ID is the only custom claim.
type Claims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// Tokens issues and parses tokens with a fixed secret, issuer and expiry.
type Tokens struct {
	secret []byte
	issuer string
	expiry time.Duration
}

// NewTokens returns a token issuer.
func NewTokens(secret, issuer string, expiry time.Duration) Tokens {
	return Tokens{
		secret: []byte(secret),
		issuer: issuer,
		expiry: expiry,
	}
}

// Generate issues a signed token for the user.
func (t Tokens) Generate(userID uuid.UUID) (string, error) {
	now := time.Now().In(time.UTC)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies a token and returns its claims.
func (t Tokens) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(t.issuer))
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == uuid.Nil {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
