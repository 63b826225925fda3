package services

import (
	"github.com/avendano/pos-backoffice/internal/models"

	"gorm.io/gorm"
)

// POSProduct is a product row joined with its available stock, shaped for the
// point-of-sale product picker.
type POSProduct struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	SKU            string  `json:"sku,omitempty"`
	Price          float64 `json:"price"`
	Cost           float64 `json:"cost"`
	TaxRate        float64 `json:"tax_rate"`
	StockAvailable float64 `json:"stock_available"`
}

// ListPOSProducts returns all products with their summed on-hand stock.
// Products without inventory rows report zero availability.
func ListPOSProducts(db *gorm.DB) ([]POSProduct, error) {
	var rows []POSProduct
	err := db.Model(&models.Product{}).
		Select("products.id, products.name, products.sku, products.price, products.cost, products.tax_rate, COALESCE(SUM(inventories.quantity), 0) AS stock_available").
		Joins("LEFT JOIN inventories ON inventories.product_id = products.id").
		Group("products.id, products.name, products.sku, products.price, products.cost, products.tax_rate").
		Order("products.name asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
