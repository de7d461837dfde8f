// Package auth gates the admin surface behind a shared PIN. A successful
// login issues a signed, expiring token carried in an HttpOnly cookie.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidPIN   = errors.New("invalid pin")
	ErrUnauthorized = errors.New("admin session required")
)

// CookieName is the cookie the admin token travels in.
const CookieName = "bartab_admin"

// TokenTTL bounds how long an admin login stays valid.
const TokenTTL = 12 * time.Hour

type Service struct {
	pin    string
	secret []byte
}

func NewService(pin, secret string) *Service {
	return &Service{pin: pin, secret: []byte(secret)}
}

// Login checks the PIN in constant time and returns a signed admin token.
func (s *Service) Login(pin string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(pin), []byte(s.pin)) != 1 {
		return "", ErrInvalidPIN
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		ID:        uuid.NewString(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing admin token: %w", err)
	}

	return token, nil
}

// Verify reports whether the token is a valid, unexpired admin token.
func (s *Service) Verify(token string) error {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrUnauthorized
	}

	return nil
}
