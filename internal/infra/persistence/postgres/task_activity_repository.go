package postgres

import (
	"context"

	"taskmanager/internal/domain/entity"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/domain/repository"
	"taskmanager/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type taskActivityRepository struct {
	db *gorm.DB
}

// NewTaskActivityRepository is the constructor for taskActivityRepository.
func NewTaskActivityRepository(db *gorm.DB) repository.TaskActivityRepository {
	return &taskActivityRepository{db: db}
}

// Record inserts the activity, ignoring a message ID that is already stored.
// An unknown user yields repository.ErrUserNotFound.
func (repo *taskActivityRepository) Record(ctx context.Context, activity *entity.TaskActivity) (bool, error) {
	if activity.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return false, errors.Wrap(err, "generate activity id")
		}
		activity.ID = id
	}

	activityM := fromTaskActivityDomain(activity)
	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}},
			DoNothing: true,
		}).
		Create(activityM)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return false, repository.ErrUserNotFound
		}

		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to record task activity")
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	activity.RecordedAt = activityM.RecordedAt

	return true, nil
}

// ListByTask returns the owner's history of one task, oldest first.
func (repo *taskActivityRepository) ListByTask(ctx context.Context, ownerID, taskID uuid.UUID) ([]*entity.TaskActivity, error) {
	var activityMs []*model.TaskActivityModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND task_id = ?", ownerID, taskID).
		Order("occurred_at ASC").
		Order("id ASC").
		Find(&activityMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list task activity")
	}

	activities := make([]*entity.TaskActivity, 0, len(activityMs))
	for _, activityM := range activityMs {
		activities = append(activities, toTaskActivityDomain(activityM))
	}

	return activities, nil
}

func toTaskActivityDomain(data *model.TaskActivityModel) *entity.TaskActivity {
	return &entity.TaskActivity{
		ID:         data.ID,
		MessageID:  data.MessageID,
		RequestID:  data.RequestID,
		Type:       entity.TaskEventType(data.Type),
		TaskID:     data.TaskID,
		UserID:     data.UserID,
		OccurredAt: data.OccurredAt,
		RecordedAt: data.RecordedAt,
	}
}

func fromTaskActivityDomain(data *entity.TaskActivity) *model.TaskActivityModel {
	return &model.TaskActivityModel{
		ID:         data.ID,
		MessageID:  data.MessageID,
		RequestID:  data.RequestID,
		Type:       string(data.Type),
		TaskID:     data.TaskID,
		UserID:     data.UserID,
		OccurredAt: data.OccurredAt,
	}
}
