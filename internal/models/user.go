package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

type User struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Email     string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username  string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	// bcrypt hash, never serialized
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:seller" json:"role"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
