package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"storefront/internal/auth"
	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// maxJSONBody caps request bodies decoded as JSON.
const maxJSONBody = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// statusFor maps a domain error code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case model.ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case model.ErrCodeProductNotFound, model.ErrCodeCartItemNotFound, model.ErrCodeOrderNotFound,
		model.ErrCodeAddressNotFound, model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeImageTooLarge:
		return http.StatusRequestEntityTooLarge
	case model.ErrCodeInvalidJSON, model.ErrCodeValidation, model.ErrCodeEmptyCart,
		model.ErrCodeInvalidQuantity, model.ErrCodeInvalidPrice, model.ErrCodeUnsupportedImage,
		model.ErrCodeOrderTooLarge:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes the response for an error returned by a service.
// Domain errors keep their code and message; anything else is reported as an
// internal error without details.
func (b base) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		b.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		middleware.WriteError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "Internal server error", b.logger)
		return
	}

	if domainErr.Code == model.ErrCodeUnauthenticated {
		middleware.Unauthenticated(w, r, b.loginPath, b.logger)
		return
	}

	middleware.WriteError(w, r, statusFor(domainErr.Code), domainErr.Code, domainErr.Message, b.logger)
}

// base holds what every handler needs.
type base struct {
	loginPath string
	logger    zerolog.Logger
}

// identity returns the signed-in user or answers 401.
func (b base) identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		middleware.Unauthenticated(w, r, b.loginPath, b.logger)
	}
	return id, ok
}

// decodeJSON reads the request body into v, answering 400 on malformed input.
func (b base) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			middleware.WriteError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "Request body is required", b.logger)
			return false
		}
		middleware.WriteError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "Invalid request body", b.logger)
		return false
	}
	return true
}

// pageParams parses the limit and offset query parameters. Missing values are zero.
func (b base) pageParams(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &limit}, {"offset", &offset}} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.WriteError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "Invalid "+p.name+" parameter", b.logger)
			return 0, 0, false
		}
		*p.dst = n
	}
	return limit, offset, true
}
