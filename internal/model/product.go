package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxUnitPrice is the highest price a product may carry. A full line at
// MaxLineQuantity still fits the NUMERIC(12,2) order columns.
var MaxUnitPrice = decimal.RequireFromString("999999.99")

// Product represents a product document in the catalogue.
type Product struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Price        decimal.Decimal   `json:"price"`
	Category     string            `json:"category"`
	Brand        string            `json:"brand"`
	Availability string            `json:"availability"`
	Stock        int               `json:"stock"`
	Images       []string          `json:"images"`
	Attributes   ProductAttributes `json:"attributes"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// ProductAttributes holds the descriptive fields entered in the admin console.
// They are stored as a single JSON document.
type ProductAttributes struct {
	Size             string `json:"size,omitempty"`
	Color            string `json:"color,omitempty"`
	Fit              string `json:"fit,omitempty"`
	Pattern          string `json:"pattern,omitempty"`
	Neck             string `json:"neck,omitempty"`
	Sleeve           string `json:"sleeve,omitempty"`
	Discount         string `json:"discount,omitempty"`
	Material         string `json:"material,omitempty"`
	CareInstructions string `json:"careInstructions,omitempty"`
	Occasion         string `json:"occasion,omitempty"`
	Gender           string `json:"gender,omitempty"`
}

// ProductRequest is the payload of the admin product-entry form.
type ProductRequest struct {
	ID           string            `json:"id,omitempty" validate:"omitempty,max=64"`
	Name         string            `json:"name" validate:"required,max=200"`
	Description  string            `json:"description" validate:"max=4000"`
	Price        decimal.Decimal   `json:"price"`
	Category     string            `json:"category" validate:"required,max=100"`
	Brand        string            `json:"brand" validate:"max=100"`
	Availability string            `json:"availability" validate:"omitempty,oneof='In Stock' 'Out of Stock' 'Pre-order'"`
	Stock        int               `json:"stock" validate:"gte=0"`
	Images       []string          `json:"images" validate:"dive,url"`
	Attributes   ProductAttributes `json:"attributes"`
}

// Sort orders accepted by the product listing.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// Price ranges accepted by the product listing.
const (
	PriceRangeAll        = "all"
	PriceRangeUnder1000  = "under-1000"
	PriceRange1000To3000 = "1000-3000"
	PriceRangeAbove3000  = "above-3000"
)

// ProductFilter narrows and orders a product listing.
type ProductFilter struct {
	Search     string
	Category   string
	Brand      string
	Color      string
	PriceRange string
	Sort       string
	Limit      int
	Offset     int
}

// DefaultAvailability is used when the product form leaves availability blank.
const DefaultAvailability = "In Stock"

// ToProduct builds the product document described by the form.
func (r ProductRequest) ToProduct() Product {
	availability := r.Availability
	if availability == "" {
		availability = DefaultAvailability
	}
	images := r.Images
	if images == nil {
		images = []string{}
	}

	return Product{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		Category:     r.Category,
		Brand:        r.Brand,
		Availability: availability,
		Stock:        r.Stock,
		Images:       images,
		Attributes:   r.Attributes,
	}
}
