package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"taskmanager/internal/delivery/api/middleware"
	"taskmanager/internal/delivery/api/response"
	"taskmanager/internal/domain/entity"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const maxSearchLength = 255

// TaskHandlerParams holds dependencies for TaskHandler, injected by Fx.
type TaskHandlerParams struct {
	fx.In

	TaskUC     usecase.TaskUsecase
	ActivityUC usecase.TaskActivityUsecase
	Logger     *slog.Logger
}

// TaskHandler holds dependencies for task handlers. Every route requires authentication.
type TaskHandler struct {
	taskUC     usecase.TaskUsecase
	activityUC usecase.TaskActivityUsecase
	logger     *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler
func NewTaskHandler(params TaskHandlerParams) *TaskHandler {
	return &TaskHandler{
		taskUC:     params.TaskUC,
		activityUC: params.ActivityUC,
		logger:     params.Logger,
	}
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category" validate:"max=100"`
}

// UpdateTaskRequest represents the request body for replacing a task
type UpdateTaskRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category" validate:"max=100"`
	Completed   bool   `json:"completed"`
}

// ListTasks handles GET /api/tasks?category=&completed=&search=
func (h *TaskHandler) ListTasks(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	filter, err := parseTaskFilter(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	tasks, err := h.taskUC.ListTasks(c.Request().Context(), userID, filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newTaskResponses(tasks))
}

// GetTask handles GET /api/tasks/:id
func (h *TaskHandler) GetTask(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrTaskNotFound)
	}

	task, err := h.taskUC.GetTask(c.Request().Context(), userID, taskID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newTaskResponse(task))
}

// CreateTask handles POST /api/tasks
func (h *TaskHandler) CreateTask(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	task, err := h.taskUC.CreateTask(c.Request().Context(), userID, &usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newTaskResponse(task))
}

// UpdateTask handles PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrTaskNotFound)
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	task, err := h.taskUC.UpdateTask(c.Request().Context(), userID, &usecase.UpdateTaskInput{
		TaskID:      taskID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Completed:   req.Completed,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newTaskResponse(task))
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrTaskNotFound)
	}

	if err := h.taskUC.DeleteTask(c.Request().Context(), userID, taskID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

// ListTaskActivity handles GET /api/tasks/:id/activity. History outlives the task.
func (h *TaskHandler) ListTaskActivity(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrTaskNotFound)
	}

	activities, err := h.activityUC.ListTaskActivity(c.Request().Context(), userID, taskID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newActivityResponses(activities))
}

// parseTaskID reads :id. A malformed id is reported as a missing task.
func parseTaskID(c echo.Context) (uuid.UUID, bool) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}

	return taskID, true
}

func parseTaskFilter(c echo.Context) (entity.TaskFilter, error) {
	filter := entity.TaskFilter{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Search:   strings.TrimSpace(c.QueryParam("search")),
	}

	fields := map[string]string{}
	if raw := c.QueryParam("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			fields["completed"] = "must be true or false"
		} else {
			filter.Completed = &completed
		}
	}
	if len(filter.Search) > maxSearchLength {
		fields["search"] = "must be at most " + strconv.Itoa(maxSearchLength) + " characters"
	}

	if len(fields) > 0 {
		return filter, domainerrors.NewValidationError(fields)
	}

	return filter, nil
}

func unauthorized(c echo.Context) error {
	return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), domainerrors.ErrUnauthorized.Message())
}
