package model

import "time"

// Priority is the task urgency: 1 low, 2 medium, 3 high.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// Task represents a single item owned by a user.
type Task struct {
	ID          uint       `gorm:"primaryKey"`
	Title       string     `gorm:"size:200;not null"`
	Description *string    `gorm:"size:1000"`
	IsCompleted bool       `gorm:"not null;default:false;index"`
	Priority    Priority   `gorm:"not null;default:1"`
	DueDate     *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false"`
	UserID      uint       `gorm:"not null;index"`
	CategoryID  *uint      `gorm:"index"`

	// Only declare the foreign keys; never preloaded.
	User     *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}
