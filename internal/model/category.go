package model

import "time"

// Category groups a user's tasks. Color is a hex code like "#ff8800".
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `gorm:"size:7" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
	Tasks     []Task    `gorm:"foreignKey:CategoryID" json:"-"`
}

// DefaultColor is used when a category is created without one.
const DefaultColor = "#000000"
