package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressType classifies a saved shipping address.
type AddressType string

const (
	AddressTypeHome  AddressType = "Home"
	AddressTypeWork  AddressType = "Work"
	AddressTypeOther AddressType = "Other"
)

// ShippingDetails holds the shipping form fields captured at checkout.
type ShippingDetails struct {
	Name     string      `json:"name" validate:"required,max=120"`
	Mobile   string      `json:"mobile" validate:"required,e164|numeric,min=7,max=15"`
	Email    string      `json:"email" validate:"omitempty,email"`
	Line1    string      `json:"line1" validate:"required,max=200"`
	Line2    string      `json:"line2" validate:"max=200"`
	Landmark string      `json:"landmark" validate:"max=200"`
	City     string      `json:"city" validate:"required,max=100"`
	State    string      `json:"state" validate:"required,max=100"`
	Zip      string      `json:"zip" validate:"required,alphanum,min=3,max=10"`
	Type     AddressType `json:"type" validate:"required,oneof=Home Work Other"`
}

// ShippingAddress is an entry in a user's address book.
type ShippingAddress struct {
	ID     uuid.UUID `json:"id"`
	UserID string    `json:"userId"`
	ShippingDetails
	CreatedAt time.Time `json:"createdAt"`
}
