package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AccountHandler handles the signed-in user's profile, orders and address book.
type AccountHandler struct {
	base
	service service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(service service.AccountService, loginPath string, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		base:    base{loginPath: loginPath, logger: logger.With().Str("handler", "account").Logger()},
		service: service,
	}
}

// Profile handles GET /api/account/profile requests.
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	user, err := h.service.Profile(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/account/profile requests.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req model.ProfileUpdateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ListOrders handles GET /api/account/orders requests.
func (h *AccountHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	limit, offset, ok := h.pageParams(w, r)
	if !ok {
		return
	}

	orders, err := h.service.ListOrders(r.Context(), id.UserID, limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /api/account/orders/{id} requests.
func (h *AccountHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), id.UserID, orderID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ListAddresses handles GET /api/account/addresses requests.
func (h *AccountHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	addresses, err := h.service.ListAddresses(r.Context(), id.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, addresses)
}

// CreateAddress handles POST /api/account/addresses requests.
func (h *AccountHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	var details model.ShippingDetails
	if !h.decodeJSON(w, r, &details) {
		return
	}

	address, err := h.service.CreateAddress(r.Context(), id.UserID, details)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, address)
}

// UpdateAddress handles PUT /api/account/addresses/{id} requests.
func (h *AccountHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	addressID, ok := h.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var details model.ShippingDetails
	if !h.decodeJSON(w, r, &details) {
		return
	}

	address, err := h.service.UpdateAddress(r.Context(), id.UserID, addressID, details)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, address)
}

// DeleteAddress handles DELETE /api/account/addresses/{id} requests.
func (h *AccountHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	addressID, ok := h.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteAddress(r.Context(), id.UserID, addressID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		middleware.WriteError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "Invalid "+name+" format", h.logger)
		return uuid.Nil, false
	}
	return parsed, true
}
