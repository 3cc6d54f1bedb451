package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
)

// MockTaskService is a mock implementation of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) ListTasks(ctx context.Context, callerID string, boardID *uint) ([]model.Task, error) {
	args := m.Called(ctx, callerID, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) GetTask(ctx context.Context, callerID string, id uint) (*model.Task, error) {
	args := m.Called(ctx, callerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) CreateTask(ctx context.Context, callerID string, task *model.Task) (*model.Task, error) {
	args := m.Called(ctx, callerID, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, callerID string, id uint, task *model.Task) error {
	args := m.Called(ctx, callerID, id, task)
	return args.Error(0)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, callerID string, id uint) error {
	args := m.Called(ctx, callerID, id)
	return args.Error(0)
}

func TestTaskHandler_ListTasksWithBoardFilter(t *testing.T) {
	svc := new(MockTaskService)
	svc.On("ListTasks", mock.Anything, "user-a", mock.MatchedBy(func(boardID *uint) bool {
		return boardID != nil && *boardID == 3
	})).Return([]model.Task{{ID: 1, Title: "Buy milk", BoardID: 3, UserID: "user-a"}}, nil)

	h := NewTaskHandler(svc)
	c, rec := newTestContext(t, http.MethodGet, "/api/tasks?boardId=3", "")
	withCaller(c, "user-a")

	assert.NoError(t, h.ListTasks(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTaskHandler_ListTasksBoardNotOwned(t *testing.T) {
	svc := new(MockTaskService)
	svc.On("ListTasks", mock.Anything, "user-b", mock.Anything).Return(nil, apperrors.ErrBoardNotFound)

	h := NewTaskHandler(svc)
	c, _ := newTestContext(t, http.MethodGet, "/api/tasks?boardId=3", "")
	withCaller(c, "user-b")

	err := h.ListTasks(c)
	code, resp := decodeError(t, err)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Board not found or access denied", resp.Message)
}

func TestTaskHandler_CreateTask(t *testing.T) {
	svc := new(MockTaskService)
	svc.On("CreateTask", mock.Anything, "user-a", mock.AnythingOfType("*model.Task")).
		Return(&model.Task{ID: 9, Title: "Buy milk", BoardID: 1, UserID: "user-a", Status: model.StatusTodo}, nil)

	h := NewTaskHandler(svc)
	c, rec := newTestContext(t, http.MethodPost, "/api/tasks", `{"title":"Buy milk","board_id":1}`)
	withCaller(c, "user-a")

	assert.NoError(t, h.CreateTask(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/tasks/9", rec.Header().Get(echo.HeaderLocation))

	var task model.Task
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, "user-a", task.UserID)
}

func TestTaskHandler_CreateTaskWithoutIdentity(t *testing.T) {
	svc := new(MockTaskService)
	svc.On("CreateTask", mock.Anything, "", mock.AnythingOfType("*model.Task")).
		Return(nil, apperrors.ErrUnauthorized)

	h := NewTaskHandler(svc)
	c, _ := newTestContext(t, http.MethodPost, "/api/tasks", `{"title":"Buy milk","board_id":1}`)
	// no claims in context

	err := h.CreateTask(c)
	code, resp := decodeError(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "User ID not found from token.", resp.Message)
}

func TestTaskHandler_UpdateTaskIDMismatch(t *testing.T) {
	svc := new(MockTaskService)
	svc.On("UpdateTask", mock.Anything, "user-a", uint(1), mock.AnythingOfType("*model.Task")).
		Return(apperrors.NewInvalidInput("Route ID and Task ID do not match."))

	h := NewTaskHandler(svc)
	c, _ := newTestContext(t, http.MethodPut, "/api/tasks/1", `{"id":2,"title":"Buy milk"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	withCaller(c, "user-a")

	err := h.UpdateTask(c)
	code, resp := decodeError(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Route ID and Task ID do not match.", resp.Message)
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	svc := new(MockTaskService)
	svc.On("UpdateTask", mock.Anything, "user-a", uint(1), mock.MatchedBy(func(task *model.Task) bool {
		return task.Status == model.StatusDone
	})).Return(nil)

	h := NewTaskHandler(svc)
	c, rec := newTestContext(t, http.MethodPut, "/api/tasks/1", `{"id":1,"title":"Buy milk","status":"done","is_completed":true}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	withCaller(c, "user-a")

	assert.NoError(t, h.UpdateTask(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTaskHandler_DeleteTaskNotFound(t *testing.T) {
	svc := new(MockTaskService)
	svc.On("DeleteTask", mock.Anything, "user-a", uint(4)).Return(apperrors.ErrNotFound)

	h := NewTaskHandler(svc)
	c, _ := newTestContext(t, http.MethodDelete, "/api/tasks/4", "")
	c.SetParamNames("id")
	c.SetParamValues("4")
	withCaller(c, "user-a")

	err := h.DeleteTask(c)
	code, _ := decodeError(t, err)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestTaskHandler_InvalidBoardIDQuery(t *testing.T) {
	svc := new(MockTaskService)
	h := NewTaskHandler(svc)
	c, _ := newTestContext(t, http.MethodGet, "/api/tasks?boardId=abc", "")
	withCaller(c, "user-a")

	err := h.ListTasks(c)
	code, _ := decodeError(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	svc.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything, mock.Anything)
}
