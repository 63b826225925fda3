package handlers

import (
	"errors"
	"net/http"

	"github.com/avendano/pos-backoffice/internal/httpx"
	"github.com/avendano/pos-backoffice/internal/models"
	"github.com/avendano/pos-backoffice/internal/validation"

	"gorm.io/gorm"
)

// OrderHandler exposes read access to orders of every lifecycle stage.
// Mutation goes through the cart endpoints only.
type OrderHandler struct {
	DB *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler { return &OrderHandler{DB: db} }

var orderTypes = []string{
	models.OrderTypeCart,
	models.OrderTypePurchaseCart,
	models.OrderTypeSale,
	models.OrderTypePurchase,
}

// List: GET /api/orders?type=sale|purchase|cart|purchase_cart
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Order("created_at desc")
	if t := r.URL.Query().Get("type"); t != "" {
		v := validation.Violations{}
		validation.OneOf("type", t, orderTypes, v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		q = q.Where("type = ?", t)
	}
	var orders []models.Order
	if err := q.Preload("Items").Find(&orders).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_orders", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

// Get: GET /api/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	err := h.DB.Preload("Items").First(&order, "id = ?", r.PathValue("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "order_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_order", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}
