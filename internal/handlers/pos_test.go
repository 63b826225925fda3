package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/avendano/pos-backoffice/internal/models"
	"github.com/avendano/pos-backoffice/internal/services"

	"gorm.io/gorm"
)

func newPOSMux(db *gorm.DB) *http.ServeMux {
	h := NewPOSHandler(db, services.NewCartService(db))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pos/products", h.Products)
	mux.HandleFunc("GET /api/pos/bill-accounts", h.BillAccounts)
	mux.HandleFunc("POST /api/pos/cart", h.CreateCart)
	mux.HandleFunc("GET /api/pos/cart/{id}", h.GetCart)
	mux.HandleFunc("PUT /api/pos/cart/{id}", h.UpdateCart)
	mux.HandleFunc("POST /api/pos/cart/{id}/items", h.AddItem)
	mux.HandleFunc("PUT /api/pos/cart/{id}/items/{itemID}", h.UpdateItem)
	mux.HandleFunc("DELETE /api/pos/cart/{id}/items/{itemID}", h.RemoveItem)
	mux.HandleFunc("POST /api/pos/cart/{id}/complete", h.CompleteCart)
	return mux
}

func TestPOSCartFlow(t *testing.T) {
	db := setupTestDB(t)
	mux := newPOSMux(db)

	warehouse := models.Warehouse{Name: "Principal"}
	if err := db.Create(&warehouse).Error; err != nil {
		t.Fatalf("seed warehouse: %v", err)
	}
	product := models.Product{Name: "Café molido 500g", Price: 10.00, Cost: 6.00}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if err := db.Create(&models.Inventory{WarehouseID: warehouse.ID, ProductID: product.ID, Quantity: 5}).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}
	account := models.BillAccount{Name: "Caja", Type: models.BillAccountTypeCash}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}

	rr := doJSON(t, mux, http.MethodPost, "/api/pos/cart", `{}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create cart: status %d body %s", rr.Code, rr.Body.String())
	}
	var cart models.Order
	decode(t, rr, &cart)
	if cart.ID == "" || cart.Type != models.OrderTypeCart {
		t.Fatalf("unexpected cart: %+v", cart)
	}
	base := "/api/pos/cart/" + cart.ID

	rr = doJSON(t, mux, http.MethodPost, base+"/items", fmt.Sprintf(`{"product_id":%q,"quantity":3}`, product.ID))
	if rr.Code != http.StatusCreated {
		t.Fatalf("add item: status %d body %s", rr.Code, rr.Body.String())
	}
	var detail cartDetailBody
	decode(t, rr, &detail)
	if len(detail.Items) != 1 || detail.Cart.Total != 30.00 {
		t.Fatalf("unexpected detail after add: %+v", detail)
	}
	itemID := detail.Items[0].ID

	// Over-stock add: specific insufficient_stock payload, cart untouched.
	rr = doJSON(t, mux, http.MethodPost, base+"/items", fmt.Sprintf(`{"product_id":%q,"quantity":3}`, product.ID))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body %s", rr.Code, rr.Body.String())
	}
	var errResp errorBody
	decode(t, rr, &errResp)
	if errResp.Error != "insufficient_stock" {
		t.Fatalf("expected insufficient_stock got %q", errResp.Error)
	}
	if errResp.Details["available"] != 5.0 || errResp.Details["requested"] != 6.0 {
		t.Fatalf("unexpected stock details: %+v", errResp.Details)
	}

	rr = doJSON(t, mux, http.MethodGet, base, "")
	decode(t, rr, &detail)
	if detail.Cart.Total != 30.00 || len(detail.Items) != 1 {
		t.Fatalf("rejected add must leave cart untouched: %+v", detail)
	}

	rr = doJSON(t, mux, http.MethodPut, base+"/items/"+itemID, `{"quantity":5}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("update item: status %d body %s", rr.Code, rr.Body.String())
	}
	decode(t, rr, &detail)
	if detail.Cart.Total != 50.00 {
		t.Fatalf("expected total 50 got %g", detail.Cart.Total)
	}

	rr = doJSON(t, mux, http.MethodDelete, base+"/items/"+itemID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("remove item: status %d body %s", rr.Code, rr.Body.String())
	}
	decode(t, rr, &detail)
	if len(detail.Items) != 0 || detail.Cart.Total != 0 {
		t.Fatalf("expected empty cart got %+v", detail)
	}

	// Empty-cart completion is rejected and the cart stays open.
	rr = doJSON(t, mux, http.MethodPost, base+"/complete", fmt.Sprintf(`{"payment_method":"cash","bill_account_id":%q}`, account.ID))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 completing empty cart, got %d", rr.Code)
	}

	rr = doJSON(t, mux, http.MethodPost, base+"/items", fmt.Sprintf(`{"product_id":%q,"quantity":2}`, product.ID))
	if rr.Code != http.StatusCreated {
		t.Fatalf("re-add item: status %d", rr.Code)
	}
	rr = doJSON(t, mux, http.MethodPost, base+"/complete", fmt.Sprintf(`{"payment_method":"cash","bill_account_id":%q}`, account.ID))
	if rr.Code != http.StatusOK {
		t.Fatalf("complete: status %d body %s", rr.Code, rr.Body.String())
	}
	var completed models.Order
	decode(t, rr, &completed)
	if completed.Type != models.OrderTypeSale || completed.Status != models.OrderStatusCompleted {
		t.Fatalf("unexpected completed order: %+v", completed)
	}

	// The cart handle is gone once completed.
	rr = doJSON(t, mux, http.MethodGet, base, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for completed cart, got %d", rr.Code)
	}

	var refreshed models.BillAccount
	db.First(&refreshed, "id = ?", account.ID)
	if refreshed.Balance != 20.00 {
		t.Fatalf("expected credited balance 20.00 got %.2f", refreshed.Balance)
	}
}

func TestPOSProductsIncludeStock(t *testing.T) {
	db := setupTestDB(t)
	mux := newPOSMux(db)

	warehouse := models.Warehouse{Name: "Principal"}
	db.Create(&warehouse)
	product := models.Product{Name: "Té negro", Price: 3.50, Cost: 2.00}
	db.Create(&product)
	db.Create(&models.Inventory{WarehouseID: warehouse.ID, ProductID: product.ID, Quantity: 9})

	rr := doJSON(t, mux, http.MethodGet, "/api/pos/products", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var rows []services.POSProduct
	decode(t, rr, &rows)
	if len(rows) != 1 || rows[0].StockAvailable != 9 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestPOSBillAccountsFilter(t *testing.T) {
	db := setupTestDB(t)
	mux := newPOSMux(db)
	db.Create(&models.BillAccount{Name: "Caja", Type: models.BillAccountTypeCash})
	db.Create(&models.BillAccount{Name: "Crédito", Type: models.BillAccountTypeDebt})

	rr := doJSON(t, mux, http.MethodGet, "/api/pos/bill-accounts?type=cash", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var accounts []models.BillAccount
	decode(t, rr, &accounts)
	if len(accounts) != 1 || accounts[0].Type != models.BillAccountTypeCash {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}

	rr = doJSON(t, mux, http.MethodGet, "/api/pos/bill-accounts?type=wallet", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type got %d", rr.Code)
	}
}
