package repositories_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"tokoshop/internal/listing"
	"tokoshop/internal/models"
	"tokoshop/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}, &models.ContactMessage{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seed(t *testing.T, repo repositories.ProductRepository, n int) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		availability := models.AvailabilityInStock
		if i%4 == 0 {
			availability = models.AvailabilityOutOfStock
		}
		p := &models.Product{
			ID:           fmt.Sprintf("prod-%02d", i),
			Name:         fmt.Sprintf("Product %02d", i),
			Price:        float64(i%5+1) * 10,
			SalePrice:    float64(i%5+1) * 9,
			Availability: availability,
			Sales:        (i * 7) % 6,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(p))
	}
}

func repos(t *testing.T) map[string]repositories.ProductRepository {
	return map[string]repositories.ProductRepository{
		"gorm":   repositories.NewGORMProductRepository(openDB(t)),
		"memory": repositories.NewMockProductRepository(),
	}
}

func TestProductRepository_CRUD(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			p := &models.Product{Name: "Laptop", Price: 1200, Stock: 3}
			require.NoError(t, repo.Create(p))
			assert.NotEmpty(t, p.ID)

			got, err := repo.GetByID(p.ID)
			require.NoError(t, err)
			assert.Equal(t, "Laptop", got.Name)

			got.Name = "Laptop Pro"
			require.NoError(t, repo.Update(got))
			got, err = repo.GetByID(p.ID)
			require.NoError(t, err)
			assert.Equal(t, "Laptop Pro", got.Name)

			require.NoError(t, repo.Delete(p.ID))
			_, err = repo.GetByID(p.ID)
			assert.ErrorIs(t, err, repositories.ErrNotFound)
		})
	}
}

func TestProductRepository_MissingRecords(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.GetByID("missing")
			assert.ErrorIs(t, err, repositories.ErrNotFound)

			err = repo.Update(&models.Product{ID: "missing", Name: "Ghost", Price: 1})
			assert.ErrorIs(t, err, repositories.ErrNotFound)

			err = repo.Delete("missing")
			assert.ErrorIs(t, err, repositories.ErrNotFound)
		})
	}
}

func TestProductRepository_QueryMatchesReduce(t *testing.T) {
	tests := []struct {
		name   string
		params listing.Params
	}{
		{"best selling first page", listing.Params{Sort: listing.SortBestSelling, Page: 1}},
		{"price asc second page", listing.Params{Sort: listing.SortPriceLowHigh, Page: 2}},
		{"price desc last page", listing.Params{Sort: listing.SortPriceHighLow, Page: 3}},
		{"in stock only", listing.Params{Availability: models.AvailabilityInStock, Sort: listing.SortPriceLowHigh, Page: 1}},
		{"price filter", listing.Params{Price: ptr(30), Sort: listing.SortBestSelling, Page: 1}},
		{"unknown sort", listing.Params{Sort: "newest", Page: 1}},
		{"page past end", listing.Params{Sort: listing.SortBestSelling, Page: 9}},
		{"page zero", listing.Params{Page: 0}},
	}

	for name, repo := range repos(t) {
		seed(t, repo, 22)
		all, err := repo.GetAll()
		require.NoError(t, err)
		require.Len(t, all, 22)

		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				want := listing.Reduce(all, tt.params)

				got, err := repo.Query(tt.params)
				require.NoError(t, err)

				assert.Equal(t, want.Total, got.Total)
				assert.Equal(t, want.TotalPages, got.TotalPages)
				assert.Equal(t, productIDs(want.Products), productIDs(got.Products))
			})
		}
	}
}

func TestContactRepository_CreateAndList(t *testing.T) {
	repo := repositories.NewGORMContactRepository(openDB(t))

	first := &models.ContactMessage{FirstName: "Asha", Email: "asha@example.com", Message: "Hello", CreatedAt: time.Now().Add(-time.Hour)}
	second := &models.ContactMessage{FirstName: "Ravi", Email: "ravi@example.com", Message: "Order query"}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))
	assert.NotEmpty(t, second.ID)
	assert.False(t, second.CreatedAt.IsZero())

	msgs, err := repo.List(10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, second.ID, msgs[0].ID)
}

func TestUserRepository_Lookup(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openDB(t))

	user := &models.User{Username: "admin", Email: "admin@example.com", Password: "hash"}
	require.NoError(t, repo.Create(user))

	byName, err := repo.GetByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.GetByEmail("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByID("nobody")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func ptr(v float64) *float64 { return &v }

func productIDs(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
