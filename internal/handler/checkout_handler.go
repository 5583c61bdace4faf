package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout requests. The service reads the caller's
// identity from the request context.
type CheckoutHandler struct {
	base
	service service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, loginPath string, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		base:    base{loginPath: loginPath, logger: logger.With().Str("handler", "checkout").Logger()},
		service: service,
	}
}

// Quote handles POST /api/checkout/quote requests. An empty body prices the whole cart.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req model.QuoteRequest
	if r.ContentLength != 0 && !h.decodeJSON(w, r, &req) {
		return
	}

	quote, err := h.service.Quote(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// PlaceOrder handles POST /api/checkout requests.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/account/orders/"+resp.Order.ID.String())
	writeJSON(w, http.StatusCreated, resp)
}
