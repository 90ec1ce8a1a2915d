package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleRestaurant UserRole = "restaurant"
	RoleNGO        UserRole = "ngo"
	RoleSociety    UserRole = "society"
	RoleAdmin      UserRole = "admin"
)

// ClaimerRoles are the roles allowed to claim a donation
var ClaimerRoles = []UserRole{RoleNGO, RoleSociety}

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null"`
	Address      *string   `json:"address"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID so ids stay opaque strings over the wire
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// CanClaim reports whether this user's role is allowed to claim donations
func (u *User) CanClaim() bool {
	for _, r := range ClaimerRoles {
		if u.Role == r {
			return true
		}
	}
	return false
}
