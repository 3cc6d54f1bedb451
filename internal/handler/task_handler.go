package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=1000"`
	Status      string     `json:"status"`
	Priority    *int       `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	BoardID     uint       `json:"board_id" validate:"required"`
}

// ListTasks godoc
// @Summary List the caller's tasks, optionally scoped to one board
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param boardId query int false "Board ID"
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	var boardID *uint
	if raw := c.QueryParam("boardId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return httpError(apperrors.NewInvalidInput("invalid boardId"))
		}
		id := uint(parsed)
		boardID = &id
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), callerID(c), boardID)
	if err != nil {
		return h.fail(c, err, "list tasks")
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Get one task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httpError(err)
	}

	task, err := h.taskService.GetTask(c.Request().Context(), callerID(c), id)
	if err != nil {
		return h.fail(c, err, "get task")
	}
	return c.JSON(http.StatusOK, task)
}

// CreateTask godoc
// @Summary Create a task owned by the caller
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return httpError(apperrors.NewInvalidInput("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return httpError(apperrors.NewInvalidInput(err.Error()))
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), callerID(c), &model.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		BoardID:     req.BoardID,
	})
	if err != nil {
		if err == apperrors.ErrUnauthorized {
			return echo.NewHTTPError(http.StatusUnauthorized,
				apperrors.ErrorResponse{Message: "User ID not found from token."})
		}
		return h.fail(c, err, "create task")
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/tasks/%d", task.ID))
	return c.JSON(http.StatusCreated, task)
}

// UpdateTask godoc
// @Summary Replace a task
// @Tags tasks
// @Accept json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body model.Task true "Task state"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httpError(err)
	}

	var task model.Task
	if err := c.Bind(&task); err != nil {
		return httpError(apperrors.NewInvalidInput("invalid request body"))
	}

	if err := h.taskService.UpdateTask(c.Request().Context(), callerID(c), id, &task); err != nil {
		return h.fail(c, err, "update task")
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httpError(err)
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), callerID(c), id); err != nil {
		return h.fail(c, err, "delete task")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TaskHandler) fail(c echo.Context, err error, op string) error {
	he := apperrors.MapToHTTP(err)
	if he.StatusCode == http.StatusInternalServerError {
		log.WithError(err).WithField("op", op).Error("task operation failed")
	}
	return echo.NewHTTPError(he.StatusCode, he.ToResponse())
}
