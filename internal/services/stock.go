package services

import (
	"github.com/avendano/pos-backoffice/internal/models"

	"gorm.io/gorm"
)

// AvailableStock sums on-hand quantity for a product across all warehouses.
// Unknown products contribute no rows and yield 0; existence checking is the
// caller's job. Pass the transaction handle when called inside one so the
// read shares its snapshot.
func AvailableStock(db *gorm.DB, productID string) (float64, error) {
	var total float64
	err := db.Model(&models.Inventory{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// reservedQuantity sums the quantities already held by a cart's lines for one
// product. excludeItemID, when non-empty, leaves that line out of the sum so
// an edit does not double-count itself.
func reservedQuantity(db *gorm.DB, orderID, productID, excludeItemID string) (int, error) {
	q := db.Model(&models.OrderItem{}).
		Where("order_id = ? AND product_id = ?", orderID, productID)
	if excludeItemID != "" {
		q = q.Where("id <> ?", excludeItemID)
	}
	var total int
	if err := q.Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
