package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order types. An order starts life as a cart (or purchase cart) and is
// rewritten to sale/purchase when completed; cart lookups filter on type, so
// completed orders are unreachable through cart handles.
const (
	OrderTypeCart         = "cart"
	OrderTypePurchaseCart = "purchase_cart"
	OrderTypeSale         = "sale"
	OrderTypePurchase     = "purchase"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Payment statuses
const (
	PaymentStatusPending = "pending"
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPaid    = "paid"
	PaymentStatusPartial = "partial"
)

// Payment methods
const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCard     = "card"
	PaymentMethodDebt     = "debt"
)

// Order doubles as the in-progress cart and the finalized document.
// While Type is cart/purchase_cart the monetary fields are always the exact
// recomputation over the order's items.
type Order struct {
	ID            string      `gorm:"primaryKey;size:36" json:"id"`
	ContactID     *string     `gorm:"size:36;index" json:"contact_id"`
	Subtotal      float64     `json:"subtotal"`
	Tax           float64     `json:"tax"`
	Discount      float64     `json:"discount"`
	Total         float64     `json:"total"`
	Status        string      `gorm:"size:50" json:"status"`
	PaymentStatus string      `gorm:"size:50" json:"payment_status"`
	PaymentMethod string      `gorm:"size:50" json:"payment_method,omitempty"`
	Type          string      `gorm:"size:50;index" json:"type"`
	ExtraFields   string      `json:"extra_fields,omitempty"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt     time.Time   `json:"-"`
	UpdatedAt     time.Time   `json:"-"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is one cart/order line. Price is captured from the product when
// the line is created and never re-read afterwards; Total = Price * Quantity.
type OrderItem struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OrderID   string    `gorm:"size:36;not null;index" json:"order_id"`
	ProductID string    `gorm:"size:36;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `json:"price"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"-"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
