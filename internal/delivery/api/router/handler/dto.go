package handler

import (
	"time"

	"taskmanager/internal/domain/entity"

	"github.com/google/uuid"
)

// UserResponse is the public projection of a user. It never carries credentials.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// TaskResponse is the JSON form of a task.
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newTaskResponse(task *entity.Task) *TaskResponse {
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func newTaskResponses(tasks []*entity.Task) []*TaskResponse {
	out := make([]*TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, newTaskResponse(task))
	}

	return out
}

// ActivityResponse is one entry of a task's history.
type ActivityResponse struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	RecordedAt time.Time `json:"recordedAt"`
	RequestID  string    `json:"requestId,omitempty"`
}

func newActivityResponses(activities []*entity.TaskActivity) []*ActivityResponse {
	out := make([]*ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		out = append(out, &ActivityResponse{
			ID:         activity.ID,
			Type:       string(activity.Type),
			OccurredAt: activity.OccurredAt,
			RecordedAt: activity.RecordedAt,
			RequestID:  activity.RequestID,
		})
	}

	return out
}
