// Package utils provides token and password helpers shared by handlers.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ninjabel/SetupCreator/internal/model"
)

// ErrInvalidToken is returned when a token fails signature or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload carried by both token kinds: the user id and role.
// Access tokens additionally set exp/iat; refresh tokens rely on the
// refresh_tokens table for their lifetime, matching the row-level sweep
// performed at login.
type Claims struct {
	UserID uint64     `json:"id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// AccessToken is a signed short-lived JWT along with its expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT proving identity for a
// single session window. Always signed with the access secret.
func NewAccessToken(secret string, userID uint64, role model.Role, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken builds and signs an HS256 JWT used to obtain new access
// tokens without re-authentication. The token itself carries no exp claim;
// expiry is tracked by the refresh_tokens row created alongside it.
func NewRefreshToken(secret string, userID uint64, role model.Role) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
	})
	return t.SignedString([]byte(secret))
}

// ParseToken verifies the signature of a token against the given secret and
// returns its claims. Only HMAC-signed tokens are accepted.
func ParseToken(raw, secret string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
