package listing_test

import (
	"fmt"
	"math"
	"testing"

	"tokoshop/internal/listing"
	"tokoshop/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProducts(n int) []models.Product {
	products := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		availability := models.AvailabilityInStock
		if i%3 == 0 {
			availability = models.AvailabilityOutOfStock
		}
		products = append(products, models.Product{
			ID:           fmt.Sprintf("prod-%d", i),
			Name:         fmt.Sprintf("Product %d", i),
			Price:        float64((i*7)%5 + 1),
			SalePrice:    float64((i*7)%5) + 0.5,
			Availability: availability,
			Sales:        (i * 13) % 11,
		})
	}
	return products
}

func price(v float64) *float64 { return &v }

func TestFilter_Availability(t *testing.T) {
	products := makeProducts(20)

	filtered := listing.Filter(products, listing.Params{Availability: models.AvailabilityOutOfStock})

	require.NotEmpty(t, filtered)
	for _, p := range filtered {
		assert.Equal(t, models.AvailabilityOutOfStock, p.Availability)
	}
	assert.Len(t, filtered, 7)
}

func TestFilter_PriceComparesRawPrice(t *testing.T) {
	products := []models.Product{
		{ID: "a", Price: 10, SalePrice: 8},
		{ID: "b", Price: 8, SalePrice: 6},
	}

	filtered := listing.Filter(products, listing.Params{Price: price(8)})

	require.Len(t, filtered, 1)
	assert.Equal(t, "b", filtered[0].ID)
}

func TestFilter_EmptyParamsKeepsEverything(t *testing.T) {
	products := makeProducts(5)
	assert.Equal(t, products, listing.Filter(products, listing.Params{}))
}

func TestSort_PriceIsMonotonicAndStable(t *testing.T) {
	products := makeProducts(30)

	asc := append([]models.Product(nil), products...)
	listing.Sort(asc, listing.SortPriceLowHigh)
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Price, asc[i].Price)
	}

	desc := append([]models.Product(nil), products...)
	listing.Sort(desc, listing.SortPriceHighLow)
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Price, desc[i].Price)
	}

	// equal prices keep their input order
	index := make(map[string]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}
	for i := 1; i < len(asc); i++ {
		if asc[i-1].Price == asc[i].Price {
			assert.Less(t, index[asc[i-1].ID], index[asc[i].ID])
		}
	}
}

func TestSort_BestSellingIsSalesAscending(t *testing.T) {
	products := []models.Product{{ID: "a", Sales: 30}, {ID: "b", Sales: 10}, {ID: "c", Sales: 20}}

	listing.Sort(products, listing.SortBestSelling)

	assert.Equal(t, []string{"b", "c", "a"}, ids(products))
}

func TestSort_UnknownModeIsNoop(t *testing.T) {
	products := makeProducts(10)
	sorted := append([]models.Product(nil), products...)

	listing.Sort(sorted, listing.SortMode("newest"))

	assert.Equal(t, products, sorted)
}

func TestPaginate(t *testing.T) {
	products := makeProducts(20)

	assert.Len(t, listing.Paginate(products, 1), listing.PageSize)
	assert.Len(t, listing.Paginate(products, 2), listing.PageSize)
	last := listing.Paginate(products, 3)
	assert.Len(t, last, 2)
	assert.Equal(t, products[18:], last)
	assert.Empty(t, listing.Paginate(products, 4))
	assert.Empty(t, listing.Paginate(products, 0))
	assert.Empty(t, listing.Paginate(products, -1))
	assert.Empty(t, listing.Paginate(products, 2049638230412172403))
	assert.Empty(t, listing.Paginate(products, math.MaxInt))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, listing.Offset(1))
	assert.Equal(t, 18, listing.Offset(3))
	assert.Equal(t, -1, listing.Offset(0))
	assert.Equal(t, -1, listing.Offset(math.MaxInt))
	assert.Equal(t, -1, listing.Offset(math.MaxInt/listing.PageSize+2))
	assert.GreaterOrEqual(t, listing.Offset(math.MaxInt/listing.PageSize+1), 0)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 0},
		{1, 1},
		{9, 1},
		{10, 2},
		{27, 3},
		{28, 4},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, listing.TotalPages(tt.total))
		})
	}
}

func TestReduce_EmptyCollection(t *testing.T) {
	page := listing.Reduce(nil, listing.Params{Sort: listing.DefaultSort, Page: 1})

	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 0, page.Total)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	products := makeProducts(15)
	original := append([]models.Product(nil), products...)

	page := listing.Reduce(products, listing.Params{Sort: listing.SortPriceHighLow, Page: 2})

	assert.Equal(t, original, products)
	assert.Len(t, page.Products, 6)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 15, page.Total)
	assert.Equal(t, listing.PageSize, page.PageSize)
}

func TestReduce_NeverExceedsPageSize(t *testing.T) {
	for n := 0; n < 40; n++ {
		products := makeProducts(n)
		pages := listing.TotalPages(n)
		seen := 0
		for p := 1; p <= pages; p++ {
			page := listing.Reduce(products, listing.Params{Page: p})
			assert.LessOrEqual(t, len(page.Products), listing.PageSize)
			seen += len(page.Products)
		}
		assert.Equal(t, n, seen)
	}
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
