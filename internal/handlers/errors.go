package handlers

import (
	"errors"
	"net/http"

	"github.com/avendano/pos-backoffice/internal/httpx"
	"github.com/avendano/pos-backoffice/internal/services"
)

// writeServiceError maps the service error taxonomy onto HTTP responses.
// StockError is checked before ValidationError so the caller gets the
// specific insufficient-stock payload rather than a generic failure.
func writeServiceError(w http.ResponseWriter, err error) {
	var stockErr *services.StockError
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	switch {
	case errors.As(err, &stockErr):
		httpx.JSONError(w, http.StatusBadRequest, "insufficient_stock", map[string]any{
			"product_id": stockErr.ProductID,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
			"message":    stockErr.Error(),
		})
	case errors.As(err, &validationErr):
		httpx.JSONError(w, http.StatusBadRequest, validationErr.Code, validationErr.Fields)
	case errors.As(err, &notFoundErr):
		httpx.JSONError(w, http.StatusNotFound, notFoundErr.Error(), nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
