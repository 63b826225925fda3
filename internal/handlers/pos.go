package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/avendano/pos-backoffice/internal/httpx"
	"github.com/avendano/pos-backoffice/internal/models"
	"github.com/avendano/pos-backoffice/internal/services"

	"gorm.io/gorm"
)

// POSHandler exposes the sale-cart workflow: product picker, cart lifecycle
// and checkout against a bill account.
type POSHandler struct {
	DB    *gorm.DB
	Carts *services.CartService
}

func NewPOSHandler(db *gorm.DB, carts *services.CartService) *POSHandler {
	return &POSHandler{DB: db, Carts: carts}
}

// Products: GET /api/pos/products
func (h *POSHandler) Products(w http.ResponseWriter, r *http.Request) {
	rows, err := services.ListPOSProducts(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

// BillAccounts: GET /api/pos/bill-accounts?type=cash|debt
func (h *POSHandler) BillAccounts(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Model(&models.BillAccount{}).Order("name asc")
	if t := r.URL.Query().Get("type"); t != "" {
		if t != models.BillAccountTypeCash && t != models.BillAccountTypeDebt {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"type": "unknown_value"})
			return
		}
		q = q.Where("type = ?", t)
	}
	var accounts []models.BillAccount
	if err := q.Find(&accounts).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_bill_accounts", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, accounts)
}

type cartRequest struct {
	ContactID     string `json:"contact_id"`
	PaymentStatus string `json:"payment_status"`
}

type updateCartRequest struct {
	ContactID     *string `json:"contact_id"`
	PaymentStatus *string `json:"payment_status"`
}

type itemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type completeSaleRequest struct {
	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
	BillAccountID string `json:"bill_account_id"`
}

// CreateCart: POST /api/pos/cart
func (h *POSHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	cart, err := h.Carts.CreateCart(services.CartInput{ContactID: req.ContactID, PaymentStatus: req.PaymentStatus})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, cart)
}

// GetCart: GET /api/pos/cart/{id}
func (h *POSHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Carts.GetCart(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

// UpdateCart: PUT /api/pos/cart/{id}
func (h *POSHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	var req updateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	detail, err := h.Carts.UpdateCart(r.PathValue("id"), services.UpdateCartInput{
		ContactID:     req.ContactID,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

// AddItem: POST /api/pos/cart/{id}/items
func (h *POSHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	detail, err := h.Carts.AddItem(r.PathValue("id"), req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, detail)
}

// UpdateItem: PUT /api/pos/cart/{id}/items/{itemID}
func (h *POSHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	detail, err := h.Carts.UpdateItem(r.PathValue("id"), r.PathValue("itemID"), req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

// RemoveItem: DELETE /api/pos/cart/{id}/items/{itemID}
func (h *POSHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Carts.RemoveItem(r.PathValue("id"), r.PathValue("itemID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

// CompleteCart: POST /api/pos/cart/{id}/complete
func (h *POSHandler) CompleteCart(w http.ResponseWriter, r *http.Request) {
	var req completeSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	order, err := h.Carts.CompleteCart(r.PathValue("id"), services.CompleteSaleInput{
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		BillAccountID: req.BillAccountID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}
