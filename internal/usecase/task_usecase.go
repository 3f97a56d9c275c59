package usecase

import (
	"context"

	"taskmanager/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateTaskInput holds the fields of a new task. An empty category becomes "Other".
type CreateTaskInput struct {
	Title       string
	Description string
	Category    string
}

// UpdateTaskInput replaces the mutable fields of a task.
type UpdateTaskInput struct {
	TaskID      uuid.UUID
	Title       string
	Description string
	Category    string
	Completed   bool
}

// TaskUsecase defines task management for a single owner.
type TaskUsecase interface {
	// ListTasks returns the owner's tasks, newest first.
	ListTasks(ctx context.Context, ownerID uuid.UUID, filter entity.TaskFilter) ([]*entity.Task, error)

	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error)

	CreateTask(ctx context.Context, ownerID uuid.UUID, input *CreateTaskInput) (*entity.Task, error)

	UpdateTask(ctx context.Context, ownerID uuid.UUID, input *UpdateTaskInput) (*entity.Task, error)

	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
}
