// Package auth is the authentication collaborator: it signs operators
// in against the configured credential and hands out bearer tokens the
// management routes require.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrBadCredentials = errors.New("invalid email or password")
	ErrInvalidToken   = errors.New("invalid token")
)

// Authenticator is the narrow interface handlers depend on, so tests
// can swap in a double.
type Authenticator interface {
	SignIn(email, password string) (string, error)
	SignOut(token string)
	Validate(token string) error
}

type Claims struct {
	jwt.RegisteredClaims
}

// Service issues HS256 bearer tokens for the single configured
// operator. Sign-out revokes the token's jti; revocation lives in
// memory for the process lifetime, matching the session's.
type Service struct {
	secret   []byte
	email    string
	password string
	ttl      time.Duration

	mu      sync.Mutex
	revoked map[string]struct{}
}

func NewService(secret, email, password string, ttl time.Duration) *Service {
	return &Service{
		secret:   []byte(secret),
		email:    email,
		password: password,
		ttl:      ttl,
		revoked:  make(map[string]struct{}),
	}
}

// SignIn checks the credential and returns a signed session token.
// The comparison is constant-time.
func (s *Service) SignIn(email, password string) (string, error) {
	email = strings.TrimSpace(email)

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !emailOK || !passOK {
		return "", ErrBadCredentials
	}

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "catalog-admin",
			Subject:   email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// SignOut revokes the token's session id. An unparseable token is
// ignored; there is no session to end.
func (s *Service) SignOut(token string) {
	claims, err := s.parse(token)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.revoked[claims.ID] = struct{}{}
	s.mu.Unlock()
}

// Validate reports whether the token represents a live session.
func (s *Service) Validate(token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return ErrInvalidToken
	}

	s.mu.Lock()
	_, gone := s.revoked[claims.ID]
	s.mu.Unlock()
	if gone {
		return ErrInvalidToken
	}
	return nil
}

func (s *Service) parse(token string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(30*time.Second),
	)

	tok, err := parser.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
