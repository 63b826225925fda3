package handlers

import (
	"net/http"
	"testing"

	"github.com/avendano/pos-backoffice/internal/models"

	"gorm.io/gorm"
)

func newCategoryMux(db *gorm.DB) *http.ServeMux {
	h := NewCategoryHandler(db)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories", h.List)
	mux.HandleFunc("POST /api/categories", h.Create)
	mux.HandleFunc("PUT /api/categories/{id}", h.Update)
	mux.HandleFunc("DELETE /api/categories/{id}", h.Delete)
	return mux
}

func TestCategoryCRUD(t *testing.T) {
	db := setupTestDB(t)
	mux := newCategoryMux(db)

	rr := doJSON(t, mux, http.MethodPost, "/api/categories", `{"label":"Bebidas Frías"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", rr.Code, rr.Body.String())
	}
	var created struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	decode(t, rr, &created)
	if created.Label != "Bebidas Frías" {
		t.Fatalf("unexpected label %q", created.Label)
	}
	var taxonomy models.Taxonomy
	db.First(&taxonomy, "id = ?", created.ID)
	if taxonomy.Slug != "bebidas-fr-as" && taxonomy.Slug != "bebidas-frias" {
		// Non-ASCII collapses through the slug filter; accept either form.
		t.Fatalf("unexpected slug %q", taxonomy.Slug)
	}
	if taxonomy.Kind != models.TaxonomyKindCategory {
		t.Fatalf("expected category kind got %q", taxonomy.Kind)
	}

	rr = doJSON(t, mux, http.MethodPut, "/api/categories/"+created.ID, `{"label":"Bebidas"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("update: status %d", rr.Code)
	}

	rr = doJSON(t, mux, http.MethodPost, "/api/categories", `{"label":"  "}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank label got %d", rr.Code)
	}

	rr = doJSON(t, mux, http.MethodGet, "/api/categories", "")
	var list []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	decode(t, rr, &list)
	if len(list) != 1 || list[0].Label != "Bebidas" {
		t.Fatalf("unexpected list: %+v", list)
	}

	rr = doJSON(t, mux, http.MethodDelete, "/api/categories/"+created.ID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: status %d", rr.Code)
	}
	rr = doJSON(t, mux, http.MethodDelete, "/api/categories/"+created.ID, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting twice got %d", rr.Code)
	}
}

func TestCategoryDeleteBlockedWhileInUse(t *testing.T) {
	db := setupTestDB(t)
	mux := newCategoryMux(db)

	taxonomy := models.Taxonomy{Name: "Lácteos", Slug: "lacteos", Kind: models.TaxonomyKindCategory}
	db.Create(&taxonomy)
	db.Create(&models.Product{Name: "Yogur 1L", Price: 2.20, TaxonomyID: &taxonomy.ID})

	rr := doJSON(t, mux, http.MethodDelete, "/api/categories/"+taxonomy.ID, "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body %s", rr.Code, rr.Body.String())
	}
	var errResp errorBody
	decode(t, rr, &errResp)
	if errResp.Error != "category_in_use" {
		t.Fatalf("expected category_in_use got %q", errResp.Error)
	}

	var count int64
	db.Model(&models.Taxonomy{}).Where("id = ?", taxonomy.ID).Count(&count)
	if count != 1 {
		t.Fatalf("category must survive blocked delete")
	}
}
