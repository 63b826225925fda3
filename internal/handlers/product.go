package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avendano/pos-backoffice/internal/httpx"
	"github.com/avendano/pos-backoffice/internal/models"
	"github.com/avendano/pos-backoffice/internal/validation"

	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler { return &ProductHandler{DB: db} }

type productRequest struct {
	Name                  string  `json:"name"`
	SKU                   string  `json:"sku"`
	Price                 float64 `json:"price"`
	Cost                  float64 `json:"cost"`
	Category              string  `json:"category"`
	TaxRate               float64 `json:"tax_rate"`
	TaxonomyID            *string `json:"taxonomy_id"`
	AttributeCombinations string  `json:"attribute_combinations"`
}

func (req *productRequest) validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.NonNegativeFloat("price", req.Price, v)
	validation.NonNegativeFloat("cost", req.Cost, v)
	validation.NonNegativeFloat("tax_rate", req.TaxRate, v)
	return v
}

// List: GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	if err := h.DB.Order("created_at desc").Find(&products).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

// Get: GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := h.DB.First(&product, "id = ?", r.PathValue("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "product_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_product", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

// Create: POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if req.TaxonomyID != nil && *req.TaxonomyID != "" {
		var count int64
		h.DB.Model(&models.Taxonomy{}).Where("id = ?", *req.TaxonomyID).Count(&count)
		if count == 0 {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"taxonomy_id": "unknown_taxonomy"})
			return
		}
	}
	product := models.Product{
		Name:                  req.Name,
		SKU:                   req.SKU,
		Price:                 req.Price,
		Cost:                  req.Cost,
		Category:              req.Category,
		TaxRate:               req.TaxRate,
		TaxonomyID:            req.TaxonomyID,
		AttributeCombinations: req.AttributeCombinations,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_product", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

// Update: PUT /api/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := h.DB.First(&product, "id = ?", r.PathValue("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "product_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_product", nil)
		return
	}
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	product.Name = req.Name
	product.SKU = req.SKU
	product.Price = req.Price
	product.Cost = req.Cost
	product.Category = req.Category
	product.TaxRate = req.TaxRate
	product.TaxonomyID = req.TaxonomyID
	product.AttributeCombinations = req.AttributeCombinations
	if err := h.DB.Save(&product).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_product", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

// Delete: DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res := h.DB.Delete(&models.Product{}, "id = ?", r.PathValue("id"))
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_product", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "product_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "product_deleted"})
}
