package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/avendano/pos-backoffice/internal/httpx"
	"github.com/avendano/pos-backoffice/internal/services"

	"gorm.io/gorm"
)

// PurchaseHandler mirrors the POS cart workflow for stocking inventory from
// suppliers. Purchase lines are priced at product cost and completion
// increments the default warehouse.
type PurchaseHandler struct {
	DB    *gorm.DB
	Carts *services.CartService
}

func NewPurchaseHandler(db *gorm.DB, carts *services.CartService) *PurchaseHandler {
	return &PurchaseHandler{DB: db, Carts: carts}
}

// Products: GET /api/purchases/products
func (h *PurchaseHandler) Products(w http.ResponseWriter, r *http.Request) {
	rows, err := services.ListPOSProducts(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

// CreateCart: POST /api/purchases/cart
func (h *PurchaseHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	cart, err := h.Carts.CreatePurchaseCart(services.CartInput{ContactID: req.ContactID, PaymentStatus: req.PaymentStatus})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, cart)
}

// GetCart: GET /api/purchases/cart/{id}
func (h *PurchaseHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Carts.GetPurchaseCart(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

// UpdateCart: PUT /api/purchases/cart/{id}
func (h *PurchaseHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	var req updateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	detail, err := h.Carts.UpdatePurchaseCart(r.PathValue("id"), services.UpdateCartInput{
		ContactID:     req.ContactID,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

// AddItem: POST /api/purchases/cart/{id}/items
func (h *PurchaseHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	detail, err := h.Carts.AddPurchaseItem(r.PathValue("id"), req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, detail)
}

// UpdateItem: PUT /api/purchases/cart/{id}/items/{itemID}
func (h *PurchaseHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	detail, err := h.Carts.UpdatePurchaseItem(r.PathValue("id"), r.PathValue("itemID"), req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

// RemoveItem: DELETE /api/purchases/cart/{id}/items/{itemID}
func (h *PurchaseHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Carts.RemovePurchaseItem(r.PathValue("id"), r.PathValue("itemID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

// CompleteCart: POST /api/purchases/cart/{id}/complete
func (h *PurchaseHandler) CompleteCart(w http.ResponseWriter, r *http.Request) {
	order, err := h.Carts.CompletePurchaseCart(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}
