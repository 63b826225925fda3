package services

import "fmt"

// ValidationError reports malformed or missing input. Callers can resubmit
// corrected input; the operation had no effect.
type ValidationError struct {
	Code   string
	Fields map[string]string
}

func (e *ValidationError) Error() string { return e.Code }

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Code: "validation_failed", Fields: map[string]string{field: reason}}
}

// NotFoundError reports a referenced entity that does not exist or is not in
// the expected state (e.g. a cart that was already completed).
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + "_not_found" }

func notFound(entity string) *NotFoundError { return &NotFoundError{Entity: entity} }

// StockError reports a quantity that would exceed available stock. It is a
// validation failure, kept distinct so the caller can render an
// insufficient-stock message with the exact numbers.
type StockError struct {
	ProductID string
	Requested int
	Available float64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %g", e.ProductID, e.Requested, e.Available)
}
