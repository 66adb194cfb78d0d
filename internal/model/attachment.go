package model

import "time"

// Attachment records metadata for a file uploaded against a task.
// Filename is the sanitized client name; FilePath is where the bytes live.
type Attachment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TaskID     uint      `gorm:"index" json:"task_id"`
	Filename   string    `json:"filename"`
	FilePath   string    `json:"-"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
