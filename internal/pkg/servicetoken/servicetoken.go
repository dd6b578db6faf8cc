// Package servicetoken signs and verifies the short-lived token the gateway attaches to
// every forwarded call, binding it to the acting sharer id.
package servicetoken

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	Header = "X-Service-Token"
	issuer = "shareit-gateway"
)

var (
	ErrInvalidToken = errors.New("invalid service token")
	ErrExpiredToken = errors.New("service token expired")
	ErrSubjectMatch = errors.New("service token does not match sharer id")
)

type Claims struct {
	jwt.RegisteredClaims
}

type Service struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewService(secretKey string, ttl time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Sign issues a token for sharerID. Anonymous calls (user endpoints) pass 0.
func (s *Service) Sign(sharerID int64) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(sharerID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Verify checks the token signature and expiry and that it was issued for sharerID.
func (s *Service) Verify(tokenString string, sharerID int64) error {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return ErrInvalidToken
	}
	if claims.Subject != strconv.FormatInt(sharerID, 10) {
		return ErrSubjectMatch
	}
	return nil
}
