// Package listing reduces a fetched product collection to the single page a
// storefront listing renders: filter, then sort, then paginate.
package listing

import (
	"math"
	"sort"

	"tokoshop/internal/models"
)

// PageSize is the number of product cards shown per listing page.
const PageSize = 9

// SortMode selects the listing order.
type SortMode string

const (
	// SortBestSelling orders by sales ascending.
	// TODO: confirm with merchandising whether best-selling should be descending.
	SortBestSelling  SortMode = "best-selling"
	SortPriceLowHigh SortMode = "price-low-high"
	SortPriceHighLow SortMode = "price-high-low"
)

// DefaultSort is the mode a listing opens with.
const DefaultSort = SortBestSelling

// Params are the user-controlled inputs of a listing page.
// An empty Availability or a nil Price disables that filter.
type Params struct {
	Availability string   `json:"availability,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Sort         SortMode `json:"sort"`
	Page         int      `json:"page"`
}

// Page is one rendered listing page.
type Page struct {
	Products   []models.Product `json:"products"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
	Total      int              `json:"total"`
}

// Match reports whether p passes the availability and price filters.
// Price is compared against the raw price field, not the displayed sale price.
func (params Params) Match(p models.Product) bool {
	if params.Availability != "" && p.Availability != params.Availability {
		return false
	}
	if params.Price != nil && p.Price != *params.Price {
		return false
	}
	return true
}

// Filter returns the products matching params, in input order.
func Filter(products []models.Product, params Params) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if params.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Sort orders products in place by mode. The sort is stable; an unknown mode
// leaves the order untouched.
func Sort(products []models.Product, mode SortMode) {
	var less func(a, b models.Product) bool
	switch mode {
	case SortBestSelling:
		less = func(a, b models.Product) bool { return a.Sales < b.Sales }
	case SortPriceLowHigh:
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case SortPriceHighLow:
		less = func(a, b models.Product) bool { return a.Price > b.Price }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}

// TotalPages is the number of pages needed to show total products.
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

// Offset is the index of the first product on page, or -1 for pages below 1
// and pages whose offset does not fit in an int.
func Offset(page int) int {
	if page < 1 || page-1 > math.MaxInt/PageSize {
		return -1
	}
	return (page - 1) * PageSize
}

// Paginate returns the products of the 1-based page. Pages below 1 or past
// the end are empty.
func Paginate(products []models.Product, page int) []models.Product {
	start := Offset(page)
	if start < 0 || start >= len(products) {
		return []models.Product{}
	}
	end := start + PageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

// Reduce runs filter, sort and paginate over products without mutating it.
func Reduce(products []models.Product, params Params) Page {
	filtered := Filter(products, params)
	Sort(filtered, params.Sort)
	return Page{
		Products:   Paginate(filtered, params.Page),
		Page:       params.Page,
		PageSize:   PageSize,
		TotalPages: TotalPages(len(filtered)),
		Total:      len(filtered),
	}
}
