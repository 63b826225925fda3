package services

import (
	"errors"
	"strings"

	"github.com/avendano/pos-backoffice/internal/models"

	"gorm.io/gorm"
)

// CartService owns the create -> mutate -> complete lifecycle for sale carts
// and purchase carts. Every mutating operation runs inside one transaction so
// the stock check, the item write and the totals recompute commit or roll
// back together. Totals are always recomputed from scratch over the current
// item set; there is no incremental bookkeeping to drift.
type CartService struct {
	DB *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService { return &CartService{DB: db} }

var paymentStatuses = []string{
	models.PaymentStatusPending,
	models.PaymentStatusUnpaid,
	models.PaymentStatusPaid,
	models.PaymentStatusPartial,
}

var paymentMethods = []string{
	models.PaymentMethodCash,
	models.PaymentMethodTransfer,
	models.PaymentMethodCard,
	models.PaymentMethodDebt,
}

func isOneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

type CartInput struct {
	ContactID     string
	PaymentStatus string
}

// UpdateCartInput carries partial updates; nil fields are left untouched.
type UpdateCartInput struct {
	ContactID     *string
	PaymentStatus *string
}

type CompleteSaleInput struct {
	PaymentMethod string
	PaymentStatus string
	BillAccountID string
}

type CartDetail struct {
	Order models.Order       `json:"cart"`
	Items []models.OrderItem `json:"items"`
}

// --- sale side ---

func (s *CartService) CreateCart(in CartInput) (*models.Order, error) {
	return s.createCart(models.OrderTypeCart, in)
}

func (s *CartService) GetCart(id string) (*CartDetail, error) {
	return loadCart(s.DB, id, models.OrderTypeCart)
}

func (s *CartService) UpdateCart(id string, in UpdateCartInput) (*CartDetail, error) {
	return s.updateCart(id, models.OrderTypeCart, in)
}

func (s *CartService) AddItem(cartID, productID string, quantity int) (*CartDetail, error) {
	return s.addItem(models.OrderTypeCart, cartID, productID, quantity)
}

func (s *CartService) UpdateItem(cartID, itemID string, quantity int) (*CartDetail, error) {
	return s.updateItem(models.OrderTypeCart, cartID, itemID, quantity)
}

func (s *CartService) RemoveItem(cartID, itemID string) (*CartDetail, error) {
	return s.removeItem(models.OrderTypeCart, cartID, itemID)
}

// CompleteCart converts a sale cart into a completed sale. Totals are frozen
// as already computed; the chosen bill account is credited with the order
// total and the movement recorded. Inventory is intentionally left untouched
// here; only the purchase side adjusts stock.
func (s *CartService) CompleteCart(cartID string, in CompleteSaleInput) (*models.Order, error) {
	method := strings.TrimSpace(in.PaymentMethod)
	if !isOneOf(method, paymentMethods) {
		return nil, invalidField("payment_method", "unknown_value")
	}
	status := strings.TrimSpace(in.PaymentStatus)
	if status == "" {
		status = models.PaymentStatusPaid
	}
	if !isOneOf(status, paymentStatuses) {
		return nil, invalidField("payment_status", "unknown_value")
	}
	if strings.TrimSpace(in.BillAccountID) == "" {
		return nil, invalidField("bill_account_id", "required")
	}

	var completed *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := cartByID(tx, cartID, models.OrderTypeCart)
		if err != nil {
			return err
		}
		count, err := itemCount(tx, order.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			return invalidField("items", "cart_empty")
		}
		account, err := billAccountByID(tx, in.BillAccountID)
		if err != nil {
			return err
		}
		updates := map[string]any{
			"type":           models.OrderTypeSale,
			"status":         models.OrderStatusCompleted,
			"payment_status": status,
			"payment_method": method,
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return err
		}
		movement := models.OrderBillAccount{
			OrderID:       order.ID,
			BillAccountID: account.ID,
			Amount:        order.Total,
			MovementType:  models.MovementIn,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.BillAccount{}).Where("id = ?", account.ID).
			Update("balance", gorm.Expr("balance + ?", order.Total)).Error; err != nil {
			return err
		}
		order.Type = models.OrderTypeSale
		order.Status = models.OrderStatusCompleted
		order.PaymentStatus = status
		order.PaymentMethod = method
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

// --- purchase side ---

func (s *CartService) CreatePurchaseCart(in CartInput) (*models.Order, error) {
	return s.createCart(models.OrderTypePurchaseCart, in)
}

func (s *CartService) GetPurchaseCart(id string) (*CartDetail, error) {
	return loadCart(s.DB, id, models.OrderTypePurchaseCart)
}

func (s *CartService) UpdatePurchaseCart(id string, in UpdateCartInput) (*CartDetail, error) {
	return s.updateCart(id, models.OrderTypePurchaseCart, in)
}

func (s *CartService) AddPurchaseItem(cartID, productID string, quantity int) (*CartDetail, error) {
	return s.addItem(models.OrderTypePurchaseCart, cartID, productID, quantity)
}

func (s *CartService) UpdatePurchaseItem(cartID, itemID string, quantity int) (*CartDetail, error) {
	return s.updateItem(models.OrderTypePurchaseCart, cartID, itemID, quantity)
}

func (s *CartService) RemovePurchaseItem(cartID, itemID string) (*CartDetail, error) {
	return s.removeItem(models.OrderTypePurchaseCart, cartID, itemID)
}

// CompletePurchaseCart converts a purchase cart into a completed purchase and
// stocks the received quantities into the default warehouse, merging into an
// existing inventory row per product when one exists.
func (s *CartService) CompletePurchaseCart(cartID string) (*models.Order, error) {
	var completed *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := cartByID(tx, cartID, models.OrderTypePurchaseCart)
		if err != nil {
			return err
		}
		var items []models.OrderItem
		if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return invalidField("items", "cart_empty")
		}
		warehouse, err := defaultWarehouse(tx)
		if err != nil {
			return err
		}
		for _, it := range items {
			if err := stockInto(tx, warehouse.ID, it.ProductID, float64(it.Quantity)); err != nil {
				return err
			}
		}
		updates := map[string]any{
			"type":           models.OrderTypePurchase,
			"status":         models.OrderStatusCompleted,
			"payment_status": models.PaymentStatusPaid,
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return err
		}
		order.Type = models.OrderTypePurchase
		order.Status = models.OrderStatusCompleted
		order.PaymentStatus = models.PaymentStatusPaid
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

// --- shared internals ---

func (s *CartService) createCart(cartType string, in CartInput) (*models.Order, error) {
	status := strings.TrimSpace(in.PaymentStatus)
	if status == "" {
		status = models.PaymentStatusPending
	}
	if !isOneOf(status, paymentStatuses) {
		return nil, invalidField("payment_status", "unknown_value")
	}
	contactID := strings.TrimSpace(in.ContactID)

	var created *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			Type:          cartType,
			Status:        models.OrderStatusPending,
			PaymentStatus: status,
		}
		if contactID != "" {
			contact, err := validateCartContact(tx, cartType, contactID)
			if err != nil {
				return err
			}
			order.ContactID = &contact.ID
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		created = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *CartService) updateCart(id, cartType string, in UpdateCartInput) (*CartDetail, error) {
	if in.PaymentStatus != nil && !isOneOf(*in.PaymentStatus, paymentStatuses) {
		return nil, invalidField("payment_status", "unknown_value")
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := cartByID(tx, id, cartType)
		if err != nil {
			return err
		}
		updates := map[string]any{}
		if in.ContactID != nil {
			if cid := strings.TrimSpace(*in.ContactID); cid == "" {
				updates["contact_id"] = nil
			} else {
				contact, err := validateCartContact(tx, cartType, cid)
				if err != nil {
					return err
				}
				updates["contact_id"] = contact.ID
			}
		}
		if in.PaymentStatus != nil {
			updates["payment_status"] = *in.PaymentStatus
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
		// No-op numerically when no items changed, but keeps the totals
		// invariant mechanically enforced on every mutation.
		return recomputeTotals(tx, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return loadCart(s.DB, id, cartType)
}

func (s *CartService) addItem(cartType, cartID, productID string, quantity int) (*CartDetail, error) {
	if quantity <= 0 {
		return nil, invalidField("quantity", "must_be_positive_integer")
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := cartByID(tx, cartID, cartType)
		if err != nil {
			return err
		}
		product, err := productByID(tx, productID)
		if err != nil {
			return err
		}
		price := product.Price
		if cartType == models.OrderTypePurchaseCart {
			// Purchases are priced at cost and add stock rather than
			// depleting it, so no sufficiency guard applies.
			price = product.Cost
		} else {
			if err := checkStock(tx, order.ID, product.ID, quantity, ""); err != nil {
				return err
			}
		}
		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     price,
			Total:     price * float64(quantity),
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return recomputeTotals(tx, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return loadCart(s.DB, cartID, cartType)
}

func (s *CartService) updateItem(cartType, cartID, itemID string, quantity int) (*CartDetail, error) {
	if quantity <= 0 {
		return nil, invalidField("quantity", "must_be_positive_integer")
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := cartByID(tx, cartID, cartType)
		if err != nil {
			return err
		}
		item, err := cartItemByID(tx, order.ID, itemID)
		if err != nil {
			return err
		}
		if cartType != models.OrderTypePurchaseCart {
			// The edited line is excluded from the reserved sum so it does
			// not count against itself.
			if err := checkStock(tx, order.ID, item.ProductID, quantity, item.ID); err != nil {
				return err
			}
		}
		// Price stays the captured point-in-time snapshot; only the
		// quantity and derived total move.
		updates := map[string]any{
			"quantity": quantity,
			"total":    item.Price * float64(quantity),
		}
		if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
			return err
		}
		return recomputeTotals(tx, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return loadCart(s.DB, cartID, cartType)
}

func (s *CartService) removeItem(cartType, cartID, itemID string) (*CartDetail, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := cartByID(tx, cartID, cartType)
		if err != nil {
			return err
		}
		item, err := cartItemByID(tx, order.ID, itemID)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.OrderItem{}, "id = ?", item.ID).Error; err != nil {
			return err
		}
		return recomputeTotals(tx, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return loadCart(s.DB, cartID, cartType)
}

// cartByID resolves an order that is still in the given cart state. A handle
// pointing at a completed order is reported as not found, which blocks
// post-completion mutation through stale references.
func cartByID(db *gorm.DB, id, cartType string) (*models.Order, error) {
	var order models.Order
	err := db.Where("id = ? AND type = ?", id, cartType).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("cart")
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func cartItemByID(db *gorm.DB, orderID, itemID string) (*models.OrderItem, error) {
	var item models.OrderItem
	err := db.Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("item")
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func validateCartContact(db *gorm.DB, cartType, contactID string) (*models.Contact, error) {
	contact, err := contactByID(db, contactID)
	if err != nil {
		return nil, err
	}
	if cartType == models.OrderTypePurchaseCart && contact.Kind != models.ContactKindSupplier {
		return nil, invalidField("contact_id", "must_be_supplier")
	}
	return contact, nil
}

// checkStock enforces the sufficiency guard: quantities already reserved by
// the cart for this product, plus the requested quantity, must fit within
// the stock available right now.
func checkStock(db *gorm.DB, orderID, productID string, quantity int, excludeItemID string) error {
	reserved, err := reservedQuantity(db, orderID, productID, excludeItemID)
	if err != nil {
		return err
	}
	available, err := AvailableStock(db, productID)
	if err != nil {
		return err
	}
	if float64(reserved+quantity) > available {
		return &StockError{ProductID: productID, Requested: reserved + quantity, Available: available}
	}
	return nil
}

// recomputeTotals rewrites the order's monetary fields from its current item
// set. Tax and discount computation is deferred; they stay zero and total
// equals subtotal.
func recomputeTotals(db *gorm.DB, orderID string) error {
	var subtotal float64
	err := db.Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(total), 0)").
		Scan(&subtotal).Error
	if err != nil {
		return err
	}
	return db.Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]any{
		"subtotal": subtotal,
		"tax":      0.0,
		"discount": 0.0,
		"total":    subtotal,
	}).Error
}

func itemCount(db *gorm.DB, orderID string) (int64, error) {
	var count int64
	err := db.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&count).Error
	return count, err
}

func loadCart(db *gorm.DB, id, cartType string) (*CartDetail, error) {
	order, err := cartByID(db, id, cartType)
	if err != nil {
		return nil, err
	}
	var items []models.OrderItem
	if err := db.Where("order_id = ?", order.ID).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return &CartDetail{Order: *order, Items: items}, nil
}

// defaultWarehouse returns the oldest warehouse, creating one when the
// installation has none yet.
func defaultWarehouse(db *gorm.DB) (*models.Warehouse, error) {
	var w models.Warehouse
	err := db.Order("created_at asc").First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		w = models.Warehouse{Name: "Principal"}
		if err := db.Create(&w).Error; err != nil {
			return nil, err
		}
		return &w, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func stockInto(db *gorm.DB, warehouseID, productID string, quantity float64) error {
	var inv models.Inventory
	err := db.Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		inv = models.Inventory{WarehouseID: warehouseID, ProductID: productID, Quantity: quantity}
		return db.Create(&inv).Error
	}
	if err != nil {
		return err
	}
	return db.Model(&models.Inventory{}).Where("id = ?", inv.ID).
		Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
}
