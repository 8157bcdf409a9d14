package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds per-user preferences. ID equals the authenticated user id.
type Profile struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Email              string    `json:"email" db:"email"`
	CurrencyPreference string    `json:"currency_preference" db:"currency_preference"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
}

type UpdateCurrencyRequest struct {
	Code string `json:"code" validate:"required,len=3"`
}
