package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Taxonomy classifies products. Categories are taxonomies with Kind "category";
// the tree nests through ParentID.
type Taxonomy struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Value     string    `json:"value,omitempty"`
	Slug      string    `gorm:"size:255;index" json:"slug,omitempty"`
	Kind      string    `gorm:"size:50;index" json:"kind,omitempty"`
	Ordering  int       `json:"ordering,omitempty"`
	Icon      string    `gorm:"size:255" json:"icon,omitempty"`
	Color     string    `gorm:"size:50" json:"color,omitempty"`
	Image     string    `gorm:"size:255" json:"image,omitempty"`
	ParentID  *string   `gorm:"size:36" json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

const TaxonomyKindCategory = "category"

func (t *Taxonomy) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type Product struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
	SKU  string `gorm:"column:sku;size:100;index" json:"sku,omitempty"`
	// Price is what the product sells for; Cost is what it is purchased at.
	// Purchase carts capture Cost, sale carts capture Price.
	Price                 float64   `json:"price"`
	Cost                  float64   `json:"cost"`
	Category              string    `gorm:"size:100" json:"category,omitempty"`
	TaxRate               float64   `json:"tax_rate"`
	TaxonomyID            *string   `gorm:"size:36" json:"taxonomy_id,omitempty"`
	AttributeCombinations string    `json:"attribute_combinations,omitempty"`
	CreatedAt             time.Time `json:"-"`
	UpdatedAt             time.Time `json:"-"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
