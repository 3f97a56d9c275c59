package postgres

import (
	"context"
	"strings"

	"taskmanager/internal/domain/entity"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/domain/repository"
	"taskmanager/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// taskRepository implements repository.TaskRepository. Every query carries user_id = ownerID.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (repo *taskRepository) owned(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Where("user_id = ?", ownerID)
}

// ListByOwner returns the owner's tasks, newest first.
func (repo *taskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter entity.TaskFilter) ([]*entity.Task, error) {
	query := repo.owned(ctx, ownerID)

	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	var taskMs []*model.TaskModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&taskMs).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list tasks")
	}

	tasks := make([]*entity.Task, 0, len(taskMs))
	for _, taskM := range taskMs {
		tasks = append(tasks, toTaskDomain(taskM))
	}

	return tasks, nil
}

// FindByID returns the owner's task or repository.ErrTaskNotFound.
func (repo *taskRepository) FindByID(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error) {
	var taskM model.TaskModel
	err := repo.owned(ctx, ownerID).
		Where("id = ?", taskID).
		Take(&taskM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find task")
	}

	return toTaskDomain(&taskM), nil
}

// Create inserts the task for ownerID, ignoring any owner already set on it.
func (repo *taskRepository) Create(ctx context.Context, ownerID uuid.UUID, task *entity.Task) error {
	if task.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate task id")
		}
		task.ID = id
	}
	task.UserID = ownerID
	task.Category = entity.NormalizeCategory(task.Category)

	taskM := fromTaskDomain(task)
	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrTaskNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	task.CreatedAt = taskM.CreatedAt
	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// Update overwrites title, description, category and completed of the owner's task.
func (repo *taskRepository) Update(ctx context.Context, ownerID uuid.UUID, task *entity.Task) error {
	task.Category = entity.NormalizeCategory(task.Category)

	result := repo.owned(ctx, ownerID).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"category":    task.Category,
			"completed":   task.Completed,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	updated, err := repo.FindByID(ctx, ownerID, task.ID)
	if err != nil {
		return err
	}
	*task = *updated

	return nil
}

// Delete removes the owner's task.
func (repo *taskRepository) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, taskID).
		Delete(&model.TaskModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toTaskDomain(data *model.TaskModel) *entity.Task {
	if data == nil {
		return nil
	}

	return &entity.Task{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Category:    data.Category,
		Completed:   data.Completed,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromTaskDomain(data *entity.Task) *model.TaskModel {
	if data == nil {
		return nil
	}

	return &model.TaskModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Category:    data.Category,
		Completed:   data.Completed,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
