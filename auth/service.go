package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken signals a token that failed signature or claim checks.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Service resolves bearer tokens to actors. The upstream identity provider
// is an external collaborator; this service only verifies and unpacks the
// claims it minted.
type Service struct {
	jwtSecret []byte
}

// NewService creates an auth service around the shared signing secret.
func NewService(jwtSecret string) *Service {
	return &Service{jwtSecret: []byte(jwtSecret)}
}

type claims struct {
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	StateCode string `json:"state,omitempty"`
	jwt.RegisteredClaims
}

// MintToken issues a signed token for the actor, valid for ttl. Used by
// tests and by the local development bootstrap; production tokens come from
// the identity provider.
func (s *Service) MintToken(actor Actor, ttl time.Duration) (string, error) {
	if !isValidRole(actor.Role) {
		return "", fmt.Errorf("auth: invalid role %q", actor.Role)
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email:     actor.Email,
		Role:      actor.Role,
		StateCode: actor.StateCode,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a token and returns the actor it identifies.
func (s *Service) VerifyToken(tokenString string) (Actor, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return Actor{}, ErrInvalidToken
	}
	if c.Subject == "" || !isValidRole(c.Role) {
		return Actor{}, ErrInvalidToken
	}
	return Actor{
		ID:        c.Subject,
		Email:     c.Email,
		Role:      c.Role,
		StateCode: c.StateCode,
	}, nil
}
