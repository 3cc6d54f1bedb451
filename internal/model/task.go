package model

import "time"

// Conventional status labels rendered as board columns. Status is free-form:
// the service stores any string and applies no transition checks.
const (
	StatusTodo       = "todo"
	StatusInProgress = "inprogress"
	StatusDone       = "done"
)

// Task is a to-do item on a board. UserID is a denormalized copy of the
// board owner so task queries can filter by owner without a board lookup.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Description string     `json:"description,omitempty" gorm:"size:1000"`
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	Status      string     `json:"status" gorm:"size:50;not null;default:'todo'"`
	Priority    *int       `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ModifiedAt  *time.Time `json:"modified_at,omitempty"`
	// Version is the optimistic concurrency token checked on every update.
	Version uint   `json:"version" gorm:"not null;default:0"`
	BoardID uint   `json:"board_id" gorm:"not null;index"`
	UserID  string `json:"user_id" gorm:"type:char(36);not null;index"`
}
