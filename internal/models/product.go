package models

import (
	"time"

	"gorm.io/gorm"
)

// Availability values a storefront filter can select.
const (
	AvailabilityInStock    = "in-stock"
	AvailabilityOutOfStock = "out-of-stock"
)

// Product represents a product in the store.
// Price is the raw price tier used by filters and sorting, SalePrice is what the storefront card shows.
type Product struct {
	ID            string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string         `json:"name" validate:"required,min=3,max=100"`
	Description   string         `json:"description" validate:"omitempty,max=500"`
	FeaturedImage string         `json:"featuredImage" validate:"omitempty,url"`
	Price         float64        `json:"price" gorm:"index" validate:"required,gt=0"`
	SalePrice     float64        `json:"salePrice" validate:"gte=0"`
	Availability  string         `json:"availability" gorm:"index;type:varchar(32)" validate:"omitempty,oneof=in-stock out-of-stock"`
	Sales         int            `json:"sales" validate:"gte=0"`
	Stock         int            `json:"stock" validate:"gte=0"`
	CreatedAt     time.Time      `json:"-"`
	UpdatedAt     time.Time      `json:"-"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// Normalize fills derived fields left empty by the caller.
func (p *Product) Normalize() {
	if p.Availability == "" {
		if p.Stock > 0 {
			p.Availability = AvailabilityInStock
		} else {
			p.Availability = AvailabilityOutOfStock
		}
	}
	if p.SalePrice == 0 {
		p.SalePrice = p.Price
	}
}
