package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact kinds
const (
	ContactKindCustomer = "customer"
	ContactKindSupplier = "supplier"
)

type Contact struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Kind      string    `gorm:"size:20;not null;default:customer;index" json:"kind"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (c *Contact) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
