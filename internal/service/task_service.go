package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// TaskService enforces per-user ownership on all task operations. Status is
// stored as-is: any string is accepted and any transition is permitted.
type TaskService interface {
	ListTasks(ctx context.Context, callerID string, boardID *uint) ([]model.Task, error)
	GetTask(ctx context.Context, callerID string, id uint) (*model.Task, error)
	CreateTask(ctx context.Context, callerID string, task *model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, callerID string, id uint, task *model.Task) error
	DeleteTask(ctx context.Context, callerID string, id uint) error
}

type taskService struct {
	taskRepo  repository.TaskRepository
	boardRepo repository.BoardRepository
}

// NewTaskService builds a TaskService.
func NewTaskService(taskRepo repository.TaskRepository, boardRepo repository.BoardRepository) TaskService {
	return &taskService{taskRepo: taskRepo, boardRepo: boardRepo}
}

// ListTasks returns the caller's tasks. With a board filter the referenced
// board must exist and belong to the caller; that failure is reported
// distinctly from task-level lookups.
func (s *taskService) ListTasks(ctx context.Context, callerID string, boardID *uint) ([]model.Task, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	if boardID == nil {
		return s.taskRepo.ListByOwner(ctx, callerID)
	}

	if _, err := s.boardRepo.FindByIDAndOwner(ctx, *boardID, callerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrBoardNotFound
		}
		return nil, err
	}
	return s.taskRepo.ListByBoardAndOwner(ctx, *boardID, callerID)
}

// GetTask returns the task by id, caller-scoped.
func (s *taskService) GetTask(ctx context.Context, callerID string, id uint) (*model.Task, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	task, err := s.taskRepo.FindByIDAndOwner(ctx, id, callerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

// CreateTask persists a new task owned by the caller. The client-supplied
// owner id is discarded.
func (s *taskService) CreateTask(ctx context.Context, callerID string, task *model.Task) (*model.Task, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if strings.TrimSpace(task.Title) == "" {
		return nil, apperrors.NewInvalidInput("Task title is required")
	}

	task.ID = 0
	task.UserID = callerID
	task.CreatedAt = time.Now()
	task.ModifiedAt = nil
	task.Version = 0
	if task.Status == "" {
		task.Status = model.StatusTodo
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// UpdateTask replaces the stored task with the submitted one (full
// replacement, no field-level merge). An id mismatch fails before any store
// access. A write conflict triggers a single existence recheck.
func (s *taskService) UpdateTask(ctx context.Context, callerID string, id uint, task *model.Task) error {
	if callerID == "" {
		return apperrors.ErrUnauthorized
	}
	if id != task.ID {
		return apperrors.NewInvalidInput("Route ID and Task ID do not match.")
	}

	existing, err := s.taskRepo.FindByIDAndOwner(ctx, id, callerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return err
	}

	now := time.Now()
	task.UserID = existing.UserID
	task.CreatedAt = existing.CreatedAt
	task.ModifiedAt = &now
	task.Version = existing.Version

	if err := s.taskRepo.Save(ctx, task); err != nil {
		if err == apperrors.ErrConflict {
			exists, exErr := s.taskRepo.ExistsByID(ctx, id)
			if exErr != nil {
				return exErr
			}
			if !exists {
				return apperrors.ErrNotFound
			}
		}
		return err
	}
	return nil
}

// DeleteTask removes the caller's task.
func (s *taskService) DeleteTask(ctx context.Context, callerID string, id uint) error {
	if callerID == "" {
		return apperrors.ErrUnauthorized
	}

	task, err := s.taskRepo.FindByIDAndOwner(ctx, id, callerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return err
	}

	if err := s.taskRepo.Delete(ctx, task); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
