package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Well-known task categories. Any other value up to 100 characters is accepted.
const (
	CategoryWork     = "Work"
	CategoryPersonal = "Personal"
	CategoryOther    = "Other"
)

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          uuid.UUID
	UserID      uuid.UUID // Owner. Every lookup is scoped by it.
	Title       string
	Description string
	Category    string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizeCategory trims the category and falls back to CategoryOther when empty.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return CategoryOther
	}

	return category
}

// TaskFilter narrows a task listing. Zero values mean "no filter".
type TaskFilter struct {
	Category  string // Case-insensitive exact match.
	Completed *bool
	Search    string // Case-insensitive substring of title or description.
}
