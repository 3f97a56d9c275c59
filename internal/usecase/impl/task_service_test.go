package impl

import (
	"context"
	"testing"
	"time"

	deliverycontext "taskmanager/internal/delivery/context"
	"taskmanager/internal/domain/entity"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/domain/repository"
	"taskmanager/internal/domain/service"
	mockRepo "taskmanager/internal/mocks/repository"
	mockSvc "taskmanager/internal/mocks/service"
	"taskmanager/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type taskServiceFixtures struct {
	service   usecase.TaskUsecase
	taskRepo  *mockRepo.MockTaskRepository
	publisher *mockSvc.MockEventPublisher
}

func createTestTaskService(t *testing.T) taskServiceFixtures {
	taskRepo := mockRepo.NewMockTaskRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	service := NewTaskService(TaskServiceParams{
		TaskRepo:  taskRepo,
		Publisher: publisher,
		Logger:    newDiscardLogger(),
	})

	return taskServiceFixtures{
		service:   service,
		taskRepo:  taskRepo,
		publisher: publisher,
	}
}

func eventOf(eventType entity.TaskEventType, ownerID, taskID uuid.UUID) any {
	return mock.MatchedBy(func(event *service.TaskEvent) bool {
		return event.Type == eventType &&
			event.UserID == ownerID.String() &&
			event.TaskID == taskID.String()
	})
}

func TestTaskService_ListTasks(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	completed := false
	filter := entity.TaskFilter{Category: "work", Completed: &completed, Search: "report"}
	tasks := []*entity.Task{
		{ID: uuid.New(), UserID: ownerID, Title: "newer"},
		{ID: uuid.New(), UserID: ownerID, Title: "older"},
	}

	fx.taskRepo.EXPECT().ListByOwner(ctx, ownerID, filter).Return(tasks, nil)

	got, err := fx.service.ListTasks(ctx, ownerID, filter)

	require.NoError(t, err)
	assert.Equal(t, tasks, got)
}

func TestTaskService_ListTasks_RepositoryError(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	fx.taskRepo.EXPECT().ListByOwner(ctx, ownerID, entity.TaskFilter{}).Return(nil, errors.New("connection refused"))

	_, err := fx.service.ListTasks(ctx, ownerID, entity.TaskFilter{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list tasks")
}

func TestTaskService_GetTask_NotFound(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()
	fx.taskRepo.EXPECT().FindByID(ctx, ownerID, taskID).Return(nil, repository.ErrTaskNotFound)

	task, err := fx.service.GetTask(ctx, ownerID, taskID)

	assert.Nil(t, task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTaskNotFound))
}

func TestTaskService_CreateTask(t *testing.T) {
	tests := []struct {
		name             string
		input            *usecase.CreateTaskInput
		expectedTitle    string
		expectedCategory string
	}{
		{
			name:             "keeps given category",
			input:            &usecase.CreateTaskInput{Title: "Write report", Description: "Q3", Category: "Work"},
			expectedTitle:    "Write report",
			expectedCategory: entity.CategoryWork,
		},
		{
			name:             "empty category defaults to Other",
			input:            &usecase.CreateTaskInput{Title: "  Buy milk  "},
			expectedTitle:    "Buy milk",
			expectedCategory: entity.CategoryOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestTaskService(t)

			ctx := deliverycontext.WithRequestID(context.Background(), "req-123")
			ownerID := uuid.New()
			taskID := uuid.New()

			fx.taskRepo.EXPECT().
				Create(ctx, ownerID, mock.AnythingOfType("*entity.Task")).
				Run(func(_ context.Context, _ uuid.UUID, task *entity.Task) {
					task.ID = taskID
					task.CreatedAt = time.Now()
					task.UpdatedAt = task.CreatedAt
				}).
				Return(nil)
			fx.publisher.EXPECT().
				PublishTaskEvent(ctx, mock.MatchedBy(func(event *service.TaskEvent) bool {
					return event.Type == entity.TaskEventCreated &&
						event.RequestID == "req-123" &&
						event.TaskID == taskID.String()
				})).
				Return(nil)

			task, err := fx.service.CreateTask(ctx, ownerID, tt.input)

			require.NoError(t, err)
			assert.Equal(t, taskID, task.ID)
			assert.Equal(t, ownerID, task.UserID)
			assert.Equal(t, tt.expectedTitle, task.Title)
			assert.Equal(t, tt.expectedCategory, task.Category)
			assert.False(t, task.Completed)
		})
	}
}

func TestTaskService_CreateTask_PublishFailureDoesNotFailRequest(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()

	fx.taskRepo.EXPECT().
		Create(ctx, ownerID, mock.AnythingOfType("*entity.Task")).
		Run(func(_ context.Context, _ uuid.UUID, task *entity.Task) {
			task.ID = taskID
		}).
		Return(nil)
	fx.publisher.EXPECT().
		PublishTaskEvent(ctx, eventOf(entity.TaskEventCreated, ownerID, taskID)).
		Return(errors.New("topic not found"))

	task, err := fx.service.CreateTask(ctx, ownerID, &usecase.CreateTaskInput{Title: "Call mom", Category: "Personal"})

	require.NoError(t, err)
	assert.Equal(t, taskID, task.ID)
}

func TestTaskService_UpdateTask(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()

	fx.taskRepo.EXPECT().
		Update(ctx, ownerID, mock.MatchedBy(func(task *entity.Task) bool {
			return task.ID == taskID &&
				task.UserID == ownerID &&
				task.Title == "Renamed" &&
				task.Category == entity.CategoryOther &&
				task.Completed
		})).
		Return(nil)
	fx.publisher.EXPECT().PublishTaskEvent(ctx, eventOf(entity.TaskEventUpdated, ownerID, taskID)).Return(nil)

	task, err := fx.service.UpdateTask(ctx, ownerID, &usecase.UpdateTaskInput{
		TaskID:    taskID,
		Title:     " Renamed ",
		Completed: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", task.Title)
	assert.True(t, task.Completed)
}

func TestTaskService_UpdateTask_OtherOwnersTaskIsNotFound(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	ownerID := uuid.New()

	fx.taskRepo.EXPECT().Update(ctx, ownerID, mock.AnythingOfType("*entity.Task")).Return(repository.ErrTaskNotFound)

	task, err := fx.service.UpdateTask(ctx, ownerID, &usecase.UpdateTaskInput{TaskID: uuid.New(), Title: "x"})

	assert.Nil(t, task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTaskNotFound))
	fx.publisher.AssertNotCalled(t, "PublishTaskEvent", mock.Anything, mock.Anything)
}

func TestTaskService_DeleteTask(t *testing.T) {
	fx := createTestTaskService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	taskID := uuid.New()
	missingID := uuid.New()

	fx.taskRepo.EXPECT().Delete(ctx, ownerID, taskID).Return(nil)
	fx.taskRepo.EXPECT().Delete(ctx, ownerID, missingID).Return(repository.ErrTaskNotFound)
	fx.publisher.EXPECT().PublishTaskEvent(ctx, eventOf(entity.TaskEventDeleted, ownerID, taskID)).Return(nil)

	require.NoError(t, fx.service.DeleteTask(ctx, ownerID, taskID))

	err := fx.service.DeleteTask(ctx, ownerID, missingID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTaskNotFound))
}
