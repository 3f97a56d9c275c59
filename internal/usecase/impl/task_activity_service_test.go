package impl

import (
	"context"
	"testing"
	"time"

	"taskmanager/internal/domain/entity"
	"taskmanager/internal/domain/repository"
	"taskmanager/internal/domain/service"
	mockRepo "taskmanager/internal/mocks/repository"
	"taskmanager/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestTaskActivityService(t *testing.T) (usecase.TaskActivityUsecase, *mockRepo.MockTaskActivityRepository) {
	activityRepo := mockRepo.NewMockTaskActivityRepository(t)

	return NewTaskActivityService(TaskActivityServiceParams{
		ActivityRepo: activityRepo,
		Logger:       newDiscardLogger(),
	}), activityRepo
}

func validEvent() *service.TaskEvent {
	return &service.TaskEvent{
		RequestID:  "req-1",
		Type:       entity.TaskEventCreated,
		TaskID:     uuid.NewString(),
		UserID:     uuid.NewString(),
		OccurredAt: time.Now().UTC(),
	}
}

func TestTaskActivityService_RecordTaskEvent(t *testing.T) {
	svc, activityRepo := createTestTaskActivityService(t)

	ctx := context.Background()
	event := validEvent()

	activityRepo.EXPECT().
		Record(ctx, mock.MatchedBy(func(a *entity.TaskActivity) bool {
			return a.MessageID == "msg-1" &&
				a.Type == entity.TaskEventCreated &&
				a.TaskID.String() == event.TaskID &&
				a.UserID.String() == event.UserID &&
				a.RequestID == "req-1"
		})).
		Return(true, nil)

	require.NoError(t, svc.RecordTaskEvent(ctx, "msg-1", event))
}

func TestTaskActivityService_RecordTaskEvent_DuplicateIsNotAnError(t *testing.T) {
	svc, activityRepo := createTestTaskActivityService(t)

	activityRepo.EXPECT().Record(mock.Anything, mock.Anything).Return(false, nil)

	require.NoError(t, svc.RecordTaskEvent(context.Background(), "msg-1", validEvent()))
}

func TestTaskActivityService_RecordTaskEvent_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		messageID string
		mutate    func(e *service.TaskEvent)
	}{
		{name: "missing message id", messageID: " ", mutate: func(*service.TaskEvent) {}},
		{name: "unknown type", messageID: "m", mutate: func(e *service.TaskEvent) { e.Type = "task.archived" }},
		{name: "malformed task id", messageID: "m", mutate: func(e *service.TaskEvent) { e.TaskID = "42" }},
		{name: "malformed user id", messageID: "m", mutate: func(e *service.TaskEvent) { e.UserID = "" }},
		{name: "missing time", messageID: "m", mutate: func(e *service.TaskEvent) { e.OccurredAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := createTestTaskActivityService(t)

			event := validEvent()
			tt.mutate(event)

			err := svc.RecordTaskEvent(context.Background(), tt.messageID, event)
			require.Error(t, err)
			assert.True(t, errors.Is(err, usecase.ErrInvalidEvent))
		})
	}
}

func TestTaskActivityService_RecordTaskEvent_RepositoryErrors(t *testing.T) {
	t.Run("deleted user is not retried", func(t *testing.T) {
		svc, activityRepo := createTestTaskActivityService(t)
		activityRepo.EXPECT().Record(mock.Anything, mock.Anything).Return(false, repository.ErrUserNotFound)

		err := svc.RecordTaskEvent(context.Background(), "msg-1", validEvent())
		assert.True(t, errors.Is(err, usecase.ErrInvalidEvent))
	})

	t.Run("database failure is retried", func(t *testing.T) {
		svc, activityRepo := createTestTaskActivityService(t)
		activityRepo.EXPECT().Record(mock.Anything, mock.Anything).Return(false, errors.New("connection reset"))

		err := svc.RecordTaskEvent(context.Background(), "msg-1", validEvent())
		require.Error(t, err)
		assert.False(t, errors.Is(err, usecase.ErrInvalidEvent))
	})
}

func TestTaskActivityService_ListTaskActivity(t *testing.T) {
	svc, activityRepo := createTestTaskActivityService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()
	history := []*entity.TaskActivity{
		{ID: uuid.New(), Type: entity.TaskEventCreated, TaskID: taskID, UserID: ownerID},
		{ID: uuid.New(), Type: entity.TaskEventUpdated, TaskID: taskID, UserID: ownerID},
	}
	activityRepo.EXPECT().ListByTask(ctx, ownerID, taskID).Return(history, nil)

	got, err := svc.ListTaskActivity(ctx, ownerID, taskID)

	require.NoError(t, err)
	assert.Equal(t, history, got)
}
