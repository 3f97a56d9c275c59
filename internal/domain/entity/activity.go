package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaskActivity is a recorded task event. It is kept after the task is deleted.
type TaskActivity struct {
	ID         uuid.UUID
	MessageID  string // Delivery ID. A redelivered message is recorded once.
	RequestID  string
	Type       TaskEventType
	TaskID     uuid.UUID
	UserID     uuid.UUID
	OccurredAt time.Time
	RecordedAt time.Time
}
