package repository

import (
	"context"
	"errors"

	"taskmanager/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when no task with the id exists for the owner.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository persists tasks. Every method is scoped by ownerID: a task that
// belongs to someone else is reported as ErrTaskNotFound.
type TaskRepository interface {
	// ListByOwner returns the owner's tasks, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter entity.TaskFilter) ([]*entity.Task, error)

	FindByID(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error)

	// Create persists task with task.UserID set to ownerID.
	Create(ctx context.Context, ownerID uuid.UUID, task *entity.Task) error

	// Update overwrites the mutable fields of the owner's task.
	Update(ctx context.Context, ownerID uuid.UUID, task *entity.Task) error

	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
}
