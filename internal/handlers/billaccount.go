package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/avendano/pos-backoffice/internal/httpx"
	"github.com/avendano/pos-backoffice/internal/models"
	"github.com/avendano/pos-backoffice/internal/validation"

	"gorm.io/gorm"
)

type BillAccountHandler struct {
	DB *gorm.DB
}

func NewBillAccountHandler(db *gorm.DB) *BillAccountHandler { return &BillAccountHandler{DB: db} }

type billAccountRequest struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Balance float64 `json:"balance"`
}

var billAccountTypes = []string{models.BillAccountTypeCash, models.BillAccountTypeDebt}

// List: GET /api/bill-accounts?type=cash|debt
func (h *BillAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Order("name asc")
	if t := r.URL.Query().Get("type"); t != "" {
		v := validation.Violations{}
		validation.OneOf("type", t, billAccountTypes, v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
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

// Create: POST /api/bill-accounts
func (h *BillAccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req billAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Required("type", req.Type, v)
	validation.OneOf("type", req.Type, billAccountTypes, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	account := models.BillAccount{
		Name:    strings.TrimSpace(req.Name),
		Type:    req.Type,
		Balance: req.Balance,
	}
	if err := h.DB.Create(&account).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_bill_account", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, account)
}

// Update: PUT /api/bill-accounts/{id}
func (h *BillAccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var account models.BillAccount
	if err := h.DB.First(&account, "id = ?", r.PathValue("id")).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "bill_account_not_found", nil)
		return
	}
	var req billAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Name != "" {
		account.Name = strings.TrimSpace(req.Name)
	}
	if req.Type != "" {
		v := validation.Violations{}
		validation.OneOf("type", req.Type, billAccountTypes, v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		account.Type = req.Type
	}
	if err := h.DB.Save(&account).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_bill_account", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, account)
}

// Delete: DELETE /api/bill-accounts/{id}
func (h *BillAccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res := h.DB.Delete(&models.BillAccount{}, "id = ?", r.PathValue("id"))
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_bill_account", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "bill_account_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "bill_account_deleted"})
}
