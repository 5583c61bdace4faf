package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles the signed-in user's cart.
type CartHandler struct {
	base
	service service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, loginPath string, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		base:    base{loginPath: loginPath, logger: logger.With().Str("handler", "cart").Logger()},
		service: service,
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	cart, err := h.service.Get(r.Context(), id.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Add handles POST /api/cart requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req model.AddCartItemRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		middleware.WriteError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "Product ID is required", h.logger)
		return
	}

	item, err := h.service.Add(r.Context(), id.UserID, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PATCH /api/cart/{productId} requests.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req model.UpdateCartItemRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateQuantity(r.Context(), id.UserID, r.PathValue("productId"), req.Quantity); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Remove handles DELETE /api/cart/{productId} requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), id.UserID, r.PathValue("productId")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.service.Clear(r.Context(), id.UserID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
