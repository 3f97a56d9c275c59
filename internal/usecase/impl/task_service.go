package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "taskmanager/internal/delivery/context"
	"taskmanager/internal/domain/entity"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/domain/repository"
	"taskmanager/internal/domain/service"
	"taskmanager/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type taskService struct {
	taskRepo  repository.TaskRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo  repository.TaskRepository
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewTaskService creates a new task service instance
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo:  params.TaskRepo,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

func (s *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// ListTasks retrieves the owner's tasks, newest first
func (s *taskService) ListTasks(ctx context.Context, ownerID uuid.UUID, filter entity.TaskFilter) ([]*entity.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return tasks, nil
}

// GetTask retrieves a single task of the owner
func (s *taskService) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, mapTaskError(err, "failed to find task")
	}

	return task, nil
}

// CreateTask stores a new task for the owner
func (s *taskService) CreateTask(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateTaskInput) (*entity.Task, error) {
	task := &entity.Task{
		UserID:      ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    entity.NormalizeCategory(input.Category),
	}

	if err := s.taskRepo.Create(ctx, ownerID, task); err != nil {
		return nil, mapTaskError(err, "failed to create task")
	}

	s.log(ctx).Debug("Task created", slog.String("task_id", task.ID.String()))
	s.publish(ctx, entity.TaskEventCreated, ownerID, task.ID)

	return task, nil
}

// UpdateTask replaces title, description, category and completion of the owner's task
func (s *taskService) UpdateTask(ctx context.Context, ownerID uuid.UUID, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	task := &entity.Task{
		ID:          input.TaskID,
		UserID:      ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    entity.NormalizeCategory(input.Category),
		Completed:   input.Completed,
	}

	if err := s.taskRepo.Update(ctx, ownerID, task); err != nil {
		return nil, mapTaskError(err, "failed to update task")
	}

	s.log(ctx).Debug("Task updated", slog.String("task_id", task.ID.String()))
	s.publish(ctx, entity.TaskEventUpdated, ownerID, task.ID)

	return task, nil
}

// DeleteTask removes the owner's task
func (s *taskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, ownerID, taskID); err != nil {
		return mapTaskError(err, "failed to delete task")
	}

	s.log(ctx).Debug("Task deleted", slog.String("task_id", taskID.String()))
	s.publish(ctx, entity.TaskEventDeleted, ownerID, taskID)

	return nil
}

// publish emits a task event. The write is already committed, so failures are only logged.
func (s *taskService) publish(ctx context.Context, eventType entity.TaskEventType, ownerID, taskID uuid.UUID) {
	event := &service.TaskEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		TaskID:     taskID.String(),
		UserID:     ownerID.String(),
		OccurredAt: time.Now().UTC(),
	}

	if err := s.publisher.PublishTaskEvent(ctx, event); err != nil {
		s.log(ctx).Warn("Failed to publish task event",
			slog.String("event_type", string(eventType)),
			slog.String("task_id", event.TaskID),
			slog.Any("error", err),
		)
	}
}

// mapTaskError converts the repository's not-found sentinel into the API error.
func mapTaskError(err error, message string) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return errors.Wrap(domainerrors.ErrTaskNotFound, message)
	}

	return errors.Wrap(err, message)
}
