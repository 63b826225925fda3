package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusCreated, map[string]string{"hello": "world"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	if rr.Body.String() != `{"hello":"world"}` {
		t.Fatalf("body %q", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	JSON(rr, http.StatusOK, nil)
	if rr.Body.String() != `null` {
		t.Fatalf("nil payload should encode as null, got %q", rr.Body.String())
	}
}

func TestJSONError(t *testing.T) {
	rr := httptest.NewRecorder()
	JSONError(rr, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
	want := `{"error":"validation_failed","details":{"name":"required"}}`
	if rr.Body.String() != want {
		t.Fatalf("body %q, want %q", rr.Body.String(), want)
	}

	rr = httptest.NewRecorder()
	JSONError(rr, http.StatusNotFound, "not_found", nil)
	if rr.Body.String() != `{"error":"not_found"}` {
		t.Fatalf("details must be omitted when nil, got %q", rr.Body.String())
	}
}
