package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/cache"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const boardListCacheTTL = time.Minute

// BoardService enforces per-user ownership on all board operations. Every
// method resolves the caller id first and performs no store access when it
// is empty.
type BoardService interface {
	ListBoards(ctx context.Context, callerID string) ([]model.Board, error)
	GetBoard(ctx context.Context, callerID string, id uint) (*model.Board, error)
	CreateBoard(ctx context.Context, callerID string, board *model.Board) (*model.Board, error)
	UpdateBoard(ctx context.Context, callerID string, id uint, board *model.Board) error
	DeleteBoard(ctx context.Context, callerID string, id uint) error
}

type boardService struct {
	repo  repository.BoardRepository
	cache *cache.Client
}

// NewBoardService builds a BoardService with repository and cache.
func NewBoardService(repo repository.BoardRepository, cache *cache.Client) BoardService {
	return &boardService{repo: repo, cache: cache}
}

func (s *boardService) listCacheKey(callerID string) string {
	return fmt.Sprintf("boards:%s", callerID)
}

// ListBoards returns the caller's boards, newest first, with read-through
// caching per user.
func (s *boardService) ListBoards(ctx context.Context, callerID string) ([]model.Board, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	if data, _ := s.cache.Get(ctx, s.listCacheKey(callerID)); data != nil {
		var cached []model.Board
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	boards, err := s.repo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(boards); err == nil {
		_ = s.cache.Set(ctx, s.listCacheKey(callerID), payload, boardListCacheTTL)
	}
	return boards, nil
}

// GetBoard returns the caller's board with its tasks. A wrong id and a
// board owned by someone else are both reported as not found.
func (s *boardService) GetBoard(ctx context.Context, callerID string, id uint) (*model.Board, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	board, err := s.repo.FindByIDAndOwnerWithTasks(ctx, id, callerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return board, nil
}

// CreateBoard persists a new board owned by the caller. Client-supplied
// owner id, timestamps and version are discarded.
func (s *boardService) CreateBoard(ctx context.Context, callerID string, board *model.Board) (*model.Board, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if strings.TrimSpace(board.Name) == "" {
		return nil, apperrors.NewInvalidInput("Board name is required")
	}

	board.ID = 0
	board.UserID = callerID
	board.CreatedAt = time.Now()
	board.ModifiedAt = nil
	board.Version = 0
	board.Tasks = nil

	if err := s.repo.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(callerID))
	return board, nil
}

// UpdateBoard replaces the stored board with the submitted one, preserving
// the original owner and creation timestamp. A write conflict triggers a
// single existence recheck: a vanished row reports not found, anything else
// propagates as fatal.
func (s *boardService) UpdateBoard(ctx context.Context, callerID string, id uint, board *model.Board) error {
	if callerID == "" {
		return apperrors.ErrUnauthorized
	}
	if id != board.ID {
		return apperrors.NewInvalidInput("Route ID and Board ID do not match.")
	}
	if strings.TrimSpace(board.Name) == "" {
		return apperrors.NewInvalidInput("Board name is required")
	}

	existing, err := s.repo.FindByIDAndOwner(ctx, id, callerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return err
	}

	now := time.Now()
	board.UserID = existing.UserID
	board.CreatedAt = existing.CreatedAt
	board.ModifiedAt = &now
	board.Version = existing.Version

	if err := s.repo.Save(ctx, board); err != nil {
		if err == apperrors.ErrConflict {
			exists, exErr := s.repo.ExistsByID(ctx, id)
			if exErr != nil {
				return exErr
			}
			if !exists {
				return apperrors.ErrNotFound
			}
		}
		return err
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(callerID))
	return nil
}

// DeleteBoard removes the caller's board; child tasks go with it through
// the store-level cascade.
func (s *boardService) DeleteBoard(ctx context.Context, callerID string, id uint) error {
	if callerID == "" {
		return apperrors.ErrUnauthorized
	}

	board, err := s.repo.FindByIDAndOwner(ctx, id, callerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, board); err != nil {
		return fmt.Errorf("delete board: %w", err)
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(callerID))
	return nil
}
