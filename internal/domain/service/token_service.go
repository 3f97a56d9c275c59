package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidToken is the only error Verify returns. Callers cannot tell which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified content of a session token.
type Claims struct {
	Subject   uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies stateless session tokens.
type TokenService interface {
	// Issue mints a signed token for the user. The time is the token's exp claim.
	Issue(userID uuid.UUID, email string) (string, time.Time, error)

	// Verify checks the signature first and then the claims.
	Verify(token string) (*Claims, error)
}
