package app

import (
	"fmt"

	"go.uber.org/zap"

	"tokoshop/internal/models"
	"tokoshop/internal/repositories"
)

var seedCatalog = []models.Product{
	{ID: "prod-1", Name: "Handwoven Jute Basket", Description: "Natural jute storage basket", FeaturedImage: "https://cdn.toko.example/products/jute-basket.webp", Price: 1200, SalePrice: 999, Availability: models.AvailabilityInStock, Sales: 42, Stock: 10},
	{ID: "prod-2", Name: "Terracotta Planter", Description: "Hand thrown terracotta planter", FeaturedImage: "https://cdn.toko.example/products/terracotta-planter.webp", Price: 750, SalePrice: 699, Availability: models.AvailabilityInStock, Sales: 18, Stock: 25},
	{ID: "prod-3", Name: "Block Print Cushion Cover", Description: "Cotton cushion cover, indigo block print", FeaturedImage: "https://cdn.toko.example/products/cushion-cover.webp", Price: 450, SalePrice: 399, Availability: models.AvailabilityOutOfStock, Sales: 65, Stock: 0},
	{ID: "prod-4", Name: "Brass Diya Set", Description: "Set of four brass oil lamps", FeaturedImage: "https://cdn.toko.example/products/brass-diya.webp", Price: 1500, SalePrice: 1299, Availability: models.AvailabilityInStock, Sales: 7, Stock: 12},
}

// seedProducts inserts the demo catalog into an empty store.
func seedProducts(repo repositories.ProductRepository, log *zap.Logger) error {
	existing, err := repo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to check catalog before seeding: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for i := range seedCatalog {
		product := seedCatalog[i]
		if err := repo.Create(&product); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", product.Name, err)
		}
		log.Debug("Seeded product", zap.String("id", product.ID), zap.String("name", product.Name))
	}
	return nil
}
