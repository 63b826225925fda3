package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/avendano/pos-backoffice/internal/httpx"
	"github.com/avendano/pos-backoffice/internal/models"
	"github.com/avendano/pos-backoffice/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler { return &UserHandler{DB: db} }

type userRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

var userRoles = []string{models.RoleAdmin, models.RoleSeller}

// List: GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := h.DB.Order("created_at asc").Find(&users).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_users", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, users)
}

// Get: GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", r.PathValue("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "user_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_user", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// Create: POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("first_name", req.FirstName, v)
	validation.Required("last_name", req.LastName, v)
	validation.Required("email", req.Email, v)
	validation.Required("username", req.Username, v)
	validation.Required("password", req.Password, v)
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = models.RoleSeller
	}
	validation.OneOf("role", role, userRoles, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)
	var count int64
	h.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "email_already_exists", nil)
		return
	}
	h.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "username_already_exists", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_user", nil)
		return
	}
	user := models.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Username:  username,
		Password:  string(hash),
		Role:      role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_user", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

// Update: PUT /api/users/{id} — partial update; empty fields are skipped and
// a provided password is re-hashed.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", r.PathValue("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "user_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_user", nil)
		return
	}
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Role != "" {
		v := validation.Violations{}
		validation.OneOf("role", req.Role, userRoles, v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		user.Role = req.Role
	}
	if req.FirstName != "" {
		user.FirstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		user.LastName = strings.TrimSpace(req.LastName)
	}
	if req.Email != "" {
		email := strings.TrimSpace(req.Email)
		var count int64
		h.DB.Model(&models.User{}).Where("email = ? AND id <> ?", email, user.ID).Count(&count)
		if count > 0 {
			httpx.JSONError(w, http.StatusBadRequest, "email_already_exists", nil)
			return
		}
		user.Email = email
	}
	if req.Username != "" {
		username := strings.TrimSpace(req.Username)
		var count int64
		h.DB.Model(&models.User{}).Where("username = ? AND id <> ?", username, user.ID).Count(&count)
		if count > 0 {
			httpx.JSONError(w, http.StatusBadRequest, "username_already_exists", nil)
			return
		}
		user.Username = username
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_user", nil)
			return
		}
		user.Password = string(hash)
	}
	if err := h.DB.Save(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_user", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// Delete: DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res := h.DB.Delete(&models.User{}, "id = ?", r.PathValue("id"))
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_user", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "user_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "user_deleted"})
}
