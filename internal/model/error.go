package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidation       = "VALIDATION_FAILED"
	ErrCodeEmptyCart        = "EMPTY_CART"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeCartItemNotFound = "CART_ITEM_NOT_FOUND"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeAddressNotFound  = "ADDRESS_NOT_FOUND"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeInvalidPrice     = "INVALID_PRICE"
	ErrCodeOrderTooLarge    = "ORDER_TOO_LARGE"
	ErrCodeUnauthenticated  = "UNAUTHENTICATED"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeImageTooLarge    = "IMAGE_TOO_LARGE"
	ErrCodeUnsupportedImage = "UNSUPPORTED_IMAGE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrUnauthenticated  = NewDomainError(ErrCodeUnauthenticated, "Sign in is required to continue")
	ErrEmptyCart        = NewDomainError(ErrCodeEmptyCart, "Order must contain at least one item")
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrCartItemNotFound = NewDomainError(ErrCodeCartItemNotFound, "Item is not in the cart")
	ErrOrderNotFound    = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrAddressNotFound  = NewDomainError(ErrCodeAddressNotFound, "Address not found")
	ErrInvalidQuantity  = NewDomainError(ErrCodeInvalidQuantity, fmt.Sprintf("Quantity must be between 1 and %d", MaxLineQuantity))
	ErrInvalidPrice     = NewDomainError(ErrCodeInvalidPrice, "Price must be between 0 and "+MaxUnitPrice.String())
	ErrOrderTooLarge    = NewDomainError(ErrCodeOrderTooLarge, "Order total exceeds the maximum order amount")
	ErrUnsupportedImage = NewDomainError(ErrCodeUnsupportedImage, "Image must be a JPEG, PNG, GIF or WebP file")
)
