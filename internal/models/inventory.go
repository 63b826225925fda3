package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Warehouse struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (w *Warehouse) BeforeCreate(*gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// Inventory holds on-hand quantity for one (warehouse, product) pairing.
// Available stock for a product is the sum over its rows.
type Inventory struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	WarehouseID string    `gorm:"size:36;index" json:"warehouse_id"`
	ProductID   string    `gorm:"size:36;index" json:"product_id"`
	Quantity    float64   `json:"quantity"`
	UpdatedAt   time.Time `json:"-"`
}

func (Inventory) TableName() string { return "inventories" }

func (i *Inventory) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
