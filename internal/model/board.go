package model

import "time"

// Board is a named collection of tasks owned by exactly one user. A board is
// visible and mutable only through queries filtered by its owner.
type Board struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"size:100;not null"`
	Description string     `json:"description,omitempty" gorm:"size:500"`
	UserID      string     `json:"user_id" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time  `json:"created_at"`
	ModifiedAt  *time.Time `json:"modified_at,omitempty"`
	// Version is the optimistic concurrency token checked on every update.
	Version uint `json:"version" gorm:"not null;default:0"`

	// Tasks are removed with their board.
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}
