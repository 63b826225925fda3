package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avendano/pos-backoffice/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Taxonomy{}, &models.Product{}, &models.Warehouse{}, &models.Inventory{},
		&models.Contact{}, &models.Order{}, &models.OrderItem{},
		&models.BillAccount{}, &models.OrderBillAccount{}, &models.User{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

type errorBody struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details"`
}

type cartDetailBody struct {
	Cart  models.Order       `json:"cart"`
	Items []models.OrderItem `json:"items"`
}
