package repository

import (
	"context"

	"taskmanager/internal/domain/entity"

	"github.com/google/uuid"
)

// TaskActivityRepository stores the task event history.
type TaskActivityRepository interface {
	// Record inserts the activity. It returns false when the message ID was already recorded.
	Record(ctx context.Context, activity *entity.TaskActivity) (bool, error)

	// ListByTask returns the owner's history of one task, oldest first.
	ListByTask(ctx context.Context, ownerID, taskID uuid.UUID) ([]*entity.TaskActivity, error)
}
