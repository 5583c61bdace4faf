package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	base
	service service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		base:    base{logger: logger.With().Str("handler", "product").Logger()},
		service: service,
	}
}

// List handles GET /api/products requests.
//
// Query parameters: q, category, brand, color, price (all, under-1000,
// 1000-3000, above-3000), sort (relevance, price-asc, price-desc), limit, offset.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := h.pageParams(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	priceRange := q.Get("price")
	switch priceRange {
	case "", model.PriceRangeAll, model.PriceRangeUnder1000, model.PriceRange1000To3000, model.PriceRangeAbove3000:
	default:
		middleware.WriteError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "Invalid price parameter", h.logger)
		return
	}

	products, err := h.service.List(r.Context(), model.ProductFilter{
		Search:     q.Get("q"),
		Category:   q.Get("category"),
		Brand:      q.Get("brand"),
		Color:      q.Get("color"),
		PriceRange: priceRange,
		Sort:       q.Get("sort"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}
