package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contact is a person the user lends to or borrows from.
type Contact struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	ReferralName *string   `json:"referral_name,omitempty" db:"referral_name"`
	Address      *string   `json:"address,omitempty" db:"address"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type ContactRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	ReferralName *string `json:"referral_name" validate:"omitempty,max=200"`
	Address      *string `json:"address" validate:"omitempty,max=500"`
	Phone        *string `json:"phone" validate:"omitempty,max=50"`
}

// ContactFilter selects and orders a page of contacts. Search matches name,
// referral name, address and phone case-insensitively.
type ContactFilter struct {
	Search string
	Sort   Sort
	Page   Page
}

type ContactPage struct {
	Contacts   []*Contact `json:"contacts"`
	TotalCount int        `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}

// ContactDetails is a contact with its debts and principal totals.
type ContactDetails struct {
	Contact     *Contact        `json:"contact"`
	Debts       []*Debt         `json:"debts"`
	TotalOwed   decimal.Decimal `json:"total_owed"`
	TotalOwing  decimal.Decimal `json:"total_owing"`
	ActiveDebts int             `json:"active_debts"`
}

var ContactSortColumns = map[string]string{
	"name":          "name",
	"referral_name": "referral_name",
	"created_at":    "created_at",
	"phone":         "phone",
}
