package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential is the password credential of a user (1:1).
// It is created at registration and never updated.
type Credential struct {
	UserID       uuid.UUID // Owning user, also the primary key.
	PasswordHash string    // Algorithm-tagged bcrypt hash, e.g. "$2a$12$...".
	Cost         int       // Work factor the hash was produced with.
	CreatedAt    time.Time
}
