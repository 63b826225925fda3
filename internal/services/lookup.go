package services

import (
	"errors"

	"github.com/avendano/pos-backoffice/internal/models"

	"gorm.io/gorm"
)

// Thin read accessors the cart controller depends on. Each translates
// gorm.ErrRecordNotFound into the service-level NotFoundError so handlers
// never see GORM sentinels.

func productByID(db *gorm.DB, id string) (*models.Product, error) {
	var p models.Product
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("product")
		}
		return nil, err
	}
	return &p, nil
}

func contactByID(db *gorm.DB, id string) (*models.Contact, error) {
	var c models.Contact
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("contact")
		}
		return nil, err
	}
	return &c, nil
}

func billAccountByID(db *gorm.DB, id string) (*models.BillAccount, error) {
	var b models.BillAccount
	if err := db.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("bill_account")
		}
		return nil, err
	}
	return &b, nil
}
