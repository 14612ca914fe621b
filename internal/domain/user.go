package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleOwner UserRole = "owner"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:120;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	FirstName    string    `json:"first_name" gorm:"size:30"`
	LastName     string    `json:"last_name" gorm:"size:50"`
	Role         UserRole  `json:"role" gorm:"type:varchar(10);not null;default:'user';index"`
	Banned       bool      `json:"banned" gorm:"not null;default:false"`
	Verified     bool      `json:"verified" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
}
