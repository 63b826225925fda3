package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/avendano/pos-backoffice/internal/auth"
	"github.com/avendano/pos-backoffice/internal/handlers"
	"github.com/avendano/pos-backoffice/internal/httpx"
	"github.com/avendano/pos-backoffice/internal/models"
	"github.com/avendano/pos-backoffice/internal/services"

	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// Configure a user verifier so RequireAuth can ensure the user still exists.
	auth.SetUserVerifier(func(_ context.Context, uid string) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Lightweight DB check (SELECT 1) – ignore detailed errors in body
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth
	ah := handlers.NewAuthHandler(db)
	mux.HandleFunc("POST /api/auth/login", ah.Login)

	// Catalog
	ph := handlers.NewProductHandler(db)
	mux.HandleFunc("GET /api/products", ph.List)
	mux.Handle("POST /api/products", guard(ph.Create))
	mux.HandleFunc("GET /api/products/{id}", ph.Get)
	mux.Handle("PUT /api/products/{id}", guard(ph.Update))
	mux.Handle("DELETE /api/products/{id}", guard(ph.Delete))

	ch := handlers.NewCategoryHandler(db)
	mux.HandleFunc("GET /api/categories", ch.List)
	mux.Handle("POST /api/categories", guard(ch.Create))
	mux.Handle("PUT /api/categories/{id}", guard(ch.Update))
	mux.Handle("DELETE /api/categories/{id}", guard(ch.Delete))

	// Contacts
	cth := handlers.NewContactHandler(db)
	mux.HandleFunc("GET /api/contacts", cth.List)
	mux.Handle("POST /api/contacts", guard(cth.Create))
	mux.HandleFunc("GET /api/contacts/{id}", cth.Get)
	mux.Handle("PUT /api/contacts/{id}", guard(cth.Update))
	mux.Handle("DELETE /api/contacts/{id}", guard(cth.Delete))

	// Users (admin area: every route requires auth)
	uh := handlers.NewUserHandler(db)
	mux.Handle("GET /api/users", guard(uh.List))
	mux.Handle("POST /api/users", guard(uh.Create))
	mux.Handle("GET /api/users/{id}", guard(uh.Get))
	mux.Handle("PUT /api/users/{id}", guard(uh.Update))
	mux.Handle("DELETE /api/users/{id}", guard(uh.Delete))

	// Bill accounts
	bh := handlers.NewBillAccountHandler(db)
	mux.HandleFunc("GET /api/bill-accounts", bh.List)
	mux.Handle("POST /api/bill-accounts", guard(bh.Create))
	mux.Handle("PUT /api/bill-accounts/{id}", guard(bh.Update))
	mux.Handle("DELETE /api/bill-accounts/{id}", guard(bh.Delete))

	// Orders (read-only; mutation happens through the carts)
	oh := handlers.NewOrderHandler(db)
	mux.HandleFunc("GET /api/orders", oh.List)
	mux.HandleFunc("GET /api/orders/{id}", oh.Get)

	// POS sale carts. Cart mutation moves stock reservations and, on
	// completion, money; it is guarded like every other mutating route.
	carts := services.NewCartService(db)
	pos := handlers.NewPOSHandler(db, carts)
	mux.HandleFunc("GET /api/pos/products", pos.Products)
	mux.HandleFunc("GET /api/pos/bill-accounts", pos.BillAccounts)
	mux.Handle("POST /api/pos/cart", guard(pos.CreateCart))
	mux.HandleFunc("GET /api/pos/cart/{id}", pos.GetCart)
	mux.Handle("PUT /api/pos/cart/{id}", guard(pos.UpdateCart))
	mux.Handle("POST /api/pos/cart/{id}/items", guard(pos.AddItem))
	mux.Handle("PUT /api/pos/cart/{id}/items/{itemID}", guard(pos.UpdateItem))
	mux.Handle("DELETE /api/pos/cart/{id}/items/{itemID}", guard(pos.RemoveItem))
	mux.Handle("POST /api/pos/cart/{id}/complete", guard(pos.CompleteCart))

	// Purchase carts
	pur := handlers.NewPurchaseHandler(db, carts)
	mux.HandleFunc("GET /api/purchases/products", pur.Products)
	mux.Handle("POST /api/purchases/cart", guard(pur.CreateCart))
	mux.HandleFunc("GET /api/purchases/cart/{id}", pur.GetCart)
	mux.Handle("PUT /api/purchases/cart/{id}", guard(pur.UpdateCart))
	mux.Handle("POST /api/purchases/cart/{id}/items", guard(pur.AddItem))
	mux.Handle("PUT /api/purchases/cart/{id}/items/{itemID}", guard(pur.UpdateItem))
	mux.Handle("DELETE /api/purchases/cart/{id}/items/{itemID}", guard(pur.RemoveItem))
	mux.Handle("POST /api/purchases/cart/{id}/complete", guard(pur.CompleteCart))

	return auth.Middleware(withRecover(withLogging(mux)))
}

func guard(h http.HandlerFunc) http.Handler {
	return auth.RequireAuth(h)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
