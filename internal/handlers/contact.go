package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/avendano/pos-backoffice/internal/httpx"
	"github.com/avendano/pos-backoffice/internal/models"
	"github.com/avendano/pos-backoffice/internal/validation"

	"gorm.io/gorm"
)

type ContactHandler struct {
	DB *gorm.DB
}

func NewContactHandler(db *gorm.DB) *ContactHandler { return &ContactHandler{DB: db} }

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Kind    string `json:"kind"`
}

var contactKinds = []string{models.ContactKindCustomer, models.ContactKindSupplier}

func (req *contactRequest) validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.OneOf("kind", req.Kind, contactKinds, v)
	return v
}

// List: GET /api/contacts?kind=customer|supplier
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Order("name asc")
	if kind := r.URL.Query().Get("kind"); kind != "" {
		v := validation.Violations{}
		validation.OneOf("kind", kind, contactKinds, v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		q = q.Where("kind = ?", kind)
	}
	var contacts []models.Contact
	if err := q.Find(&contacts).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_contacts", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, contacts)
}

// Get: GET /api/contacts/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	var contact models.Contact
	if err := h.DB.First(&contact, "id = ?", r.PathValue("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "contact_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_contact", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, contact)
}

// Create: POST /api/contacts
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	kind := req.Kind
	if kind == "" {
		kind = models.ContactKindCustomer
	}
	contact := models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
		Kind:    kind,
	}
	if err := h.DB.Create(&contact).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_contact", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, contact)
}

// Update: PUT /api/contacts/{id}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var contact models.Contact
	if err := h.DB.First(&contact, "id = ?", r.PathValue("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "contact_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_contact", nil)
		return
	}
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	contact.Name = strings.TrimSpace(req.Name)
	contact.Email = strings.TrimSpace(req.Email)
	contact.Phone = strings.TrimSpace(req.Phone)
	contact.Address = strings.TrimSpace(req.Address)
	if req.Kind != "" {
		contact.Kind = req.Kind
	}
	if err := h.DB.Save(&contact).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_contact", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, contact)
}

// Delete: DELETE /api/contacts/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res := h.DB.Delete(&models.Contact{}, "id = ?", r.PathValue("id"))
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_contact", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "contact_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "contact_deleted"})
}
