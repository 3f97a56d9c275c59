// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the account that owns tasks. It never carries credential material.
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	FirstName string    // Given name, at most 100 characters.
	LastName  string    // Family name, at most 100 characters.
	Email     string    // Login identifier. Stored trimmed and lower-cased, unique.
	CreatedAt time.Time // Timestamp of when this user account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this user's data.
}

// FullName joins the first and last name, skipping empty parts.
func (u *User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// NormalizeEmail returns the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
