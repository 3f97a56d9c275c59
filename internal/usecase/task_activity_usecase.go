package usecase

import (
	"context"

	"taskmanager/internal/domain/entity"
	"taskmanager/internal/domain/service"
	"taskmanager/internal/errors"

	"github.com/google/uuid"
)

// ErrInvalidEvent marks an event that can never be recorded. Redelivery will not help.
var ErrInvalidEvent = errors.New("invalid task event")

// TaskActivityUsecase records task events and serves the per-task history.
type TaskActivityUsecase interface {
	// RecordTaskEvent stores a delivered event. Duplicate deliveries are ignored.
	RecordTaskEvent(ctx context.Context, messageID string, event *service.TaskEvent) error

	ListTaskActivity(ctx context.Context, ownerID, taskID uuid.UUID) ([]*entity.TaskActivity, error)
}
