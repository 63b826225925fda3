package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error envelope every endpoint answers with: a
// machine-readable code plus optional detail, typically a field->reason map.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload as an application/json body with the given status.
// The payload is marshalled before any headers go out, so an encode failure
// cannot leave a half-written body behind a success status.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes an ErrorResponse. Pass nil details to omit the field.
func JSONError(w http.ResponseWriter, status int, code string, details any) {
	JSON(w, status, ErrorResponse{Error: code, Details: details})
}
