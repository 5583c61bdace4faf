package model

import "time"

// User is the profile stored for a signed-in identity.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProfileUpdateRequest represents the request payload for updating a profile.
type ProfileUpdateRequest struct {
	DisplayName string `json:"displayName" validate:"max=120"`
	Phone       string `json:"phone" validate:"omitempty,min=7,max=15"`
}
