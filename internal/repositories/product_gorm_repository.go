package repositories

import (
	"errors"
	"fmt"

	"tokoshop/internal/listing"
	"tokoshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// insertion order, so equal sort keys come back in the same order GetAll returns them
const naturalOrder = "created_at ASC, id ASC"

var sortClauses = map[listing.SortMode]string{
	listing.SortBestSelling:  "sales ASC",
	listing.SortPriceLowHigh: "price ASC",
	listing.SortPriceHighLow: "price DESC",
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order(naturalOrder).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	// Save upserts, so existence is checked first.
	var existing models.Product
	if err := r.db.Select("id", "created_at").First(&existing, "id = ?", product.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product with ID %s for update: %w", product.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to load product %s for update: %w", product.ID, err)
	}
	product.CreatedAt = existing.CreatedAt
	if err := r.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// Query filters, sorts and paginates products in SQL.
func (r *GORMProductRepository) Query(params listing.Params) (*listing.Page, error) {
	var total int64
	if err := r.filtered(params).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	page := &listing.Page{
		Products:   []models.Product{},
		Page:       params.Page,
		PageSize:   listing.PageSize,
		TotalPages: listing.TotalPages(int(total)),
		Total:      int(total),
	}
	offset := listing.Offset(params.Page)
	if offset < 0 || int64(offset) >= total {
		return page, nil
	}

	query := r.filtered(params)
	if clause, ok := sortClauses[params.Sort]; ok {
		query = query.Order(clause)
	}
	if err := query.Order(naturalOrder).Offset(offset).Limit(listing.PageSize).Find(&page.Products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return page, nil
}

func (r *GORMProductRepository) filtered(params listing.Params) *gorm.DB {
	scope := r.db.Model(&models.Product{})
	if params.Availability != "" {
		scope = scope.Where("availability = ?", params.Availability)
	}
	if params.Price != nil {
		scope = scope.Where("price = ?", *params.Price)
	}
	return scope
}
