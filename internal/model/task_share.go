package model

import "time"

// Share permission levels. Stored per grant; "view" is the default.
const (
	PermissionView = "view"
	PermissionEdit = "edit"
)

// TaskShare grants a non-owner access to a task.
type TaskShare struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TaskID     uint      `gorm:"index" json:"task_id"`
	UserID     uint      `gorm:"index" json:"user_id"`
	Permission string    `gorm:"size:10" json:"permission"`
	CreatedAt  time.Time `json:"created_at"`
}
