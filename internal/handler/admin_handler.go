package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// AdminHandler serves the admin console endpoints.
type AdminHandler struct {
	base
	products      service.ProductService
	accounts      service.AccountService
	maxImageBytes int64
}

// NewAdminHandler creates a new admin handler. Uploaded images larger than
// maxImageBytes are rejected.
func NewAdminHandler(products service.ProductService, accounts service.AccountService, maxImageBytes int64, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		base:          base{logger: logger.With().Str("handler", "admin").Logger()},
		products:      products,
		accounts:      accounts,
		maxImageBytes: maxImageBytes,
	}
}

// CreateProduct handles POST /api/admin/products requests.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	product, err := h.products.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/products/"+product.ID)
	writeJSON(w, http.StatusCreated, product)
}

// ImageUploadResponse is returned after an image is stored.
type ImageUploadResponse struct {
	URL string `json:"url"`
}

// UploadImage handles POST /api/admin/images requests. The body is the raw image.
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxImageBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.WriteError(w, r, http.StatusRequestEntityTooLarge, model.ErrCodeImageTooLarge,
				fmt.Sprintf("Image must not exceed %d bytes", h.maxImageBytes), h.logger)
			return
		}
		middleware.WriteError(w, r, http.StatusBadRequest, model.ErrCodeUnsupportedImage, "Failed to read image", h.logger)
		return
	}
	if len(data) == 0 {
		middleware.WriteError(w, r, http.StatusBadRequest, model.ErrCodeUnsupportedImage, "Image is required", h.logger)
		return
	}

	url, err := h.products.UploadImage(r.Context(), data)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ImageUploadResponse{URL: url})
}

// ListUsers handles GET /api/admin/users requests.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := h.pageParams(w, r)
	if !ok {
		return
	}

	users, err := h.accounts.ListUsers(r.Context(), limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
