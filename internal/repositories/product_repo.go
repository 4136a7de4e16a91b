package repositories

import (
	"tokoshop/internal/listing"
	"tokoshop/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// Query filters, sorts and paginates in the store itself.
	Query(params listing.Params) (*listing.Page, error)
}
