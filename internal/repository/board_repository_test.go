package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskboard/internal/db"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
)

// newTestDB opens a named in-memory SQLite database with foreign key
// enforcement on and runs the full schema migration against it, so the
// ON DELETE CASCADE constraint behaves as it does on MySQL.
func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func TestBoardRepository_DeleteCascadesToTasks(t *testing.T) {
	gormDB := newTestDB(t, "board_delete_cascade")
	boardRepo := NewBoardRepository(gormDB)
	taskRepo := NewTaskRepository(gormDB)
	ctx := context.Background()

	board := &model.Board{Name: "Groceries", UserID: "user-a", CreatedAt: time.Now()}
	require.NoError(t, boardRepo.Create(ctx, board))

	milk := &model.Task{Title: "Buy milk", Status: model.StatusTodo, BoardID: board.ID, UserID: "user-a", CreatedAt: time.Now()}
	eggs := &model.Task{Title: "Buy eggs", Status: model.StatusDone, BoardID: board.ID, UserID: "user-a", CreatedAt: time.Now()}
	require.NoError(t, taskRepo.Create(ctx, milk))
	require.NoError(t, taskRepo.Create(ctx, eggs))

	require.NoError(t, boardRepo.Delete(ctx, board))

	exists, err := boardRepo.ExistsByID(ctx, board.ID)
	assert.NoError(t, err)
	assert.False(t, exists)

	// Deleting the board removes its tasks through the foreign key,
	// without any task-level delete being issued.
	_, err = taskRepo.FindByIDAndOwner(ctx, milk.ID, "user-a")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	exists, err = taskRepo.ExistsByID(ctx, eggs.ID)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestBoardRepository_DeleteLeavesOtherBoardsTasksAlone(t *testing.T) {
	gormDB := newTestDB(t, "board_delete_scoped")
	boardRepo := NewBoardRepository(gormDB)
	taskRepo := NewTaskRepository(gormDB)
	ctx := context.Background()

	doomed := &model.Board{Name: "Old plans", UserID: "user-a", CreatedAt: time.Now()}
	kept := &model.Board{Name: "Chores", UserID: "user-a", CreatedAt: time.Now()}
	require.NoError(t, boardRepo.Create(ctx, doomed))
	require.NoError(t, boardRepo.Create(ctx, kept))

	survivor := &model.Task{Title: "Vacuum", Status: model.StatusTodo, BoardID: kept.ID, UserID: "user-a", CreatedAt: time.Now()}
	require.NoError(t, taskRepo.Create(ctx, survivor))
	require.NoError(t, taskRepo.Create(ctx, &model.Task{Title: "Forget this", Status: model.StatusTodo, BoardID: doomed.ID, UserID: "user-a", CreatedAt: time.Now()}))

	require.NoError(t, boardRepo.Delete(ctx, doomed))

	found, err := taskRepo.FindByIDAndOwner(ctx, survivor.ID, "user-a")
	assert.NoError(t, err)
	assert.Equal(t, "Vacuum", found.Title)
}

func TestBoardRepository_SaveRejectsStaleVersion(t *testing.T) {
	gormDB := newTestDB(t, "board_save_conflict")
	boardRepo := NewBoardRepository(gormDB)
	ctx := context.Background()

	board := &model.Board{Name: "Groceries", UserID: "user-a", CreatedAt: time.Now()}
	require.NoError(t, boardRepo.Create(ctx, board))

	fresh, err := boardRepo.FindByIDAndOwner(ctx, board.ID, "user-a")
	require.NoError(t, err)
	stale, err := boardRepo.FindByIDAndOwner(ctx, board.ID, "user-a")
	require.NoError(t, err)

	fresh.Name = "Weekly groceries"
	require.NoError(t, boardRepo.Save(ctx, fresh))
	assert.Equal(t, uint(1), fresh.Version)

	stale.Name = "Stale rename"
	assert.ErrorIs(t, boardRepo.Save(ctx, stale), apperrors.ErrConflict)

	current, err := boardRepo.FindByIDAndOwner(ctx, board.ID, "user-a")
	require.NoError(t, err)
	assert.Equal(t, "Weekly groceries", current.Name)
}

func TestBoardRepository_ListByOwnerIsScoped(t *testing.T) {
	gormDB := newTestDB(t, "board_list_scoped")
	boardRepo := NewBoardRepository(gormDB)
	ctx := context.Background()

	require.NoError(t, boardRepo.Create(ctx, &model.Board{Name: "Mine", UserID: "user-a", CreatedAt: time.Now()}))
	require.NoError(t, boardRepo.Create(ctx, &model.Board{Name: "Theirs", UserID: "user-b", CreatedAt: time.Now()}))

	boards, err := boardRepo.ListByOwner(ctx, "user-a")
	assert.NoError(t, err)
	if assert.Len(t, boards, 1) {
		assert.Equal(t, "Mine", boards[0].Name)
	}
}
