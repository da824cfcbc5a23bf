package model

import "time"

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#3498db"

// Category groups tasks by area (work, home, study, etc.). Categories are shared by all users.
type Category struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:50;not null;uniqueIndex"`
	Description *string   `gorm:"size:200"`
	Color       string    `gorm:"size:7;not null;default:'#3498db'"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
}
