package service

import (
	"context"
	"time"

	"taskmanager/internal/domain/entity"
)

// TaskEvent is published after a task write has been committed.
type TaskEvent struct {
	RequestID  string               `json:"request_id,omitempty"` // For distributed tracing
	Type       entity.TaskEventType `json:"type"`
	TaskID     string               `json:"task_id"`
	UserID     string               `json:"user_id"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishTaskEvent publishes a task lifecycle event
	PublishTaskEvent(ctx context.Context, event *TaskEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
