package model

import "time"

// Priority orders tasks by urgency. Lower value means more urgent.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Task is a single tracked item. The owner is fixed at creation.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index" json:"user_id"`
	CategoryID  *uint      `gorm:"index" json:"category_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Priority    Priority   `gorm:"default:2" json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Shares      []TaskShare  `gorm:"foreignKey:TaskID" json:"-"`
	Attachments []Attachment `gorm:"foreignKey:TaskID" json:"-"`
}
