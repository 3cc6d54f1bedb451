package model

// Profile carries the application-specific user fields, joined to a
// credential record by user id.
type Profile struct {
	UserID  string `json:"user_id" gorm:"type:char(36);primaryKey"`
	Name    string `json:"name" gorm:"size:255"`
	IsAdmin bool   `json:"is_admin" gorm:"default:false"`
}
