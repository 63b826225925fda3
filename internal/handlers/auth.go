package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/avendano/pos-backoffice/internal/auth"
	"github.com/avendano/pos-backoffice/internal/httpx"
	"github.com/avendano/pos-backoffice/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login: POST /api/auth/login — accepts username or email plus password and
// issues a signed bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	login := strings.TrimSpace(req.Username)
	if login == "" {
		login = strings.TrimSpace(req.Email)
	}
	if login == "" || req.Password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"username": "required", "password": "required"})
		return
	}
	var user models.User
	err := h.DB.Where("username = ? OR email = ?", login, login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "login_failed", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	token := auth.IssueToken(user.ID, auth.DefaultTokenTTL)
	httpx.JSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}
