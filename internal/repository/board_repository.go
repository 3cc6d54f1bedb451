package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
)

// BoardRepository defines board persistence operations. Every lookup that
// takes an owner id filters by it in the query itself; there is no
// unscoped variant for boards.
type BoardRepository interface {
	Create(ctx context.Context, board *model.Board) error
	Save(ctx context.Context, board *model.Board) error
	ListByOwner(ctx context.Context, userID string) ([]model.Board, error)
	FindByIDAndOwner(ctx context.Context, id uint, userID string) (*model.Board, error)
	FindByIDAndOwnerWithTasks(ctx context.Context, id uint, userID string) (*model.Board, error)
	Delete(ctx context.Context, board *model.Board) error
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository builds a GORM-backed repository.
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// Save writes the board's mutable fields guarded by the version column.
// Zero affected rows means the row was concurrently modified or deleted;
// the caller rechecks existence to tell the two apart.
func (r *boardRepository) Save(ctx context.Context, board *model.Board) error {
	res := r.db.WithContext(ctx).Model(&model.Board{}).
		Where("id = ? AND user_id = ? AND version = ?", board.ID, board.UserID, board.Version).
		Updates(map[string]interface{}{
			"name":        board.Name,
			"description": board.Description,
			"modified_at": board.ModifiedAt,
			"version":     board.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConflict
	}
	board.Version++
	return nil
}

func (r *boardRepository) ListByOwner(ctx context.Context, userID string) ([]model.Board, error) {
	var boards []model.Board
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *boardRepository) FindByIDAndOwner(ctx context.Context, id uint, userID string) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) FindByIDAndOwnerWithTasks(ctx context.Context, id uint, userID string) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).
		Preload("Tasks").
		Where("id = ? AND user_id = ?", id, userID).
		First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// Delete removes the board row; child tasks go with it through the
// store-level cascade constraint.
func (r *boardRepository) Delete(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Delete(board).Error
}

func (r *boardRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Board{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
