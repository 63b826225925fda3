package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bill account types
const (
	BillAccountTypeCash = "cash"
	BillAccountTypeDebt = "debt"
)

// Movement directions for order settlements
const (
	MovementIn  = "in"
	MovementOut = "out"
)

type BillAccount struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Type      string    `gorm:"size:50" json:"type"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (b *BillAccount) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// OrderBillAccount records the money movement produced by completing a sale
// against a bill account.
type OrderBillAccount struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	OrderID       string    `gorm:"size:36;index" json:"order_id"`
	BillAccountID string    `gorm:"size:36;index" json:"bill_account_id"`
	Amount        float64   `json:"amount"`
	MovementType  string    `gorm:"size:20" json:"movement_type"`
	CreatedAt     time.Time `json:"-"`
}

func (m *OrderBillAccount) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
