package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "taskmanager/internal/delivery/context"
	"taskmanager/internal/domain/entity"
	"taskmanager/internal/domain/repository"
	"taskmanager/internal/domain/service"
	"taskmanager/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type taskActivityService struct {
	activityRepo repository.TaskActivityRepository
	logger       *slog.Logger
}

// TaskActivityServiceParams holds dependencies for TaskActivityService, injected by Fx.
type TaskActivityServiceParams struct {
	fx.In

	ActivityRepo repository.TaskActivityRepository
	Logger       *slog.Logger
}

// NewTaskActivityService creates a new task activity service instance
func NewTaskActivityService(params TaskActivityServiceParams) usecase.TaskActivityUsecase {
	return &taskActivityService{
		activityRepo: params.ActivityRepo,
		logger:       params.Logger,
	}
}

func (s *taskActivityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// RecordTaskEvent validates the event and stores it once per message ID.
// Malformed events and events of deleted users wrap usecase.ErrInvalidEvent.
func (s *taskActivityService) RecordTaskEvent(ctx context.Context, messageID string, event *service.TaskEvent) error {
	activity, err := toActivity(messageID, event)
	if err != nil {
		return err
	}

	recorded, err := s.activityRepo.Record(ctx, activity)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(usecase.ErrInvalidEvent, "event owner no longer exists")
		}

		return errors.Wrap(err, "failed to record task activity")
	}

	if !recorded {
		s.log(ctx).Info("Duplicate task event ignored", slog.String("message_id", messageID))

		return nil
	}

	s.log(ctx).Debug("Task event recorded",
		slog.String("message_id", messageID),
		slog.String("event_type", string(activity.Type)),
		slog.String("task_id", activity.TaskID.String()),
	)

	return nil
}

// ListTaskActivity returns the owner's history of one task, oldest first.
func (s *taskActivityService) ListTaskActivity(ctx context.Context, ownerID, taskID uuid.UUID) ([]*entity.TaskActivity, error) {
	activities, err := s.activityRepo.ListByTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list task activity")
	}

	return activities, nil
}

func toActivity(messageID string, event *service.TaskEvent) (*entity.TaskActivity, error) {
	messageID = strings.TrimSpace(messageID)
	if messageID == "" {
		return nil, errors.Wrap(usecase.ErrInvalidEvent, "missing message id")
	}
	if event == nil || !event.Type.Valid() {
		return nil, errors.Wrap(usecase.ErrInvalidEvent, "unknown event type")
	}

	taskID, err := uuid.Parse(event.TaskID)
	if err != nil {
		return nil, errors.Wrap(usecase.ErrInvalidEvent, "malformed task id")
	}
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return nil, errors.Wrap(usecase.ErrInvalidEvent, "malformed user id")
	}
	if event.OccurredAt.IsZero() {
		return nil, errors.Wrap(usecase.ErrInvalidEvent, "missing occurrence time")
	}

	return &entity.TaskActivity{
		MessageID:  messageID,
		RequestID:  event.RequestID,
		Type:       event.Type,
		TaskID:     taskID,
		UserID:     userID,
		OccurredAt: event.OccurredAt,
	}, nil
}
