package model

import "time"

// User is an authenticated account. Inactive users are soft-deleted.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"size:50;not null;uniqueIndex"`
	Email     string    `gorm:"size:100;not null;uniqueIndex"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt digest
	IsActive  bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}
