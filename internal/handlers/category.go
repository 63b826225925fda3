package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/avendano/pos-backoffice/internal/httpx"
	"github.com/avendano/pos-backoffice/internal/models"

	"gorm.io/gorm"
)

// CategoryHandler manages the category slice of the taxonomy tree. Categories
// are read-only from the cart engine's perspective; deletion is blocked while
// products still reference the taxonomy.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler { return &CategoryHandler{DB: db} }

type categoryRequest struct {
	Label string `json:"label"`
}

type categoryResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(label string) string {
	s := slugUnsafe.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "-")
	return strings.Trim(s, "-")
}

// List: GET /api/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var taxonomies []models.Taxonomy
	if err := h.DB.Where("kind = ?", models.TaxonomyKindCategory).Order("ordering asc, name asc").Find(&taxonomies).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_categories", nil)
		return
	}
	out := make([]categoryResponse, 0, len(taxonomies))
	for _, t := range taxonomies {
		out = append(out, categoryResponse{ID: t.ID, Label: t.Name})
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Create: POST /api/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"label": "required"})
		return
	}
	taxonomy := models.Taxonomy{Name: label, Slug: slugify(label), Kind: models.TaxonomyKindCategory}
	if err := h.DB.Create(&taxonomy).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_category", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, categoryResponse{ID: taxonomy.ID, Label: taxonomy.Name})
}

// Update: PUT /api/categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var taxonomy models.Taxonomy
	err := h.DB.Where("id = ? AND kind = ?", r.PathValue("id"), models.TaxonomyKindCategory).First(&taxonomy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "category_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_category", nil)
		return
	}
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"label": "required"})
		return
	}
	taxonomy.Name = label
	taxonomy.Slug = slugify(label)
	if err := h.DB.Save(&taxonomy).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_category", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, categoryResponse{ID: taxonomy.ID, Label: taxonomy.Name})
}

// Delete: DELETE /api/categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var taxonomy models.Taxonomy
	err := h.DB.Where("id = ? AND kind = ?", id, models.TaxonomyKindCategory).First(&taxonomy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "category_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_category", nil)
		return
	}
	var inUse int64
	if err := h.DB.Model(&models.Product{}).Where("taxonomy_id = ?", id).Count(&inUse).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_category", nil)
		return
	}
	if inUse > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "category_in_use", map[string]any{"products": inUse})
		return
	}
	if err := h.DB.Delete(&taxonomy).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_category", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "category_deleted"})
}
