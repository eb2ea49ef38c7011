package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	LastLogin    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
