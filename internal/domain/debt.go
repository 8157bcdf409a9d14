package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DebtStatusActive    = "active"
	DebtStatusCompleted = "completed"
)

const (
	DebtTypeIOwe  = "I Owe"
	DebtTypeOweMe = "Owe Me"
)

// Debt represents money lent to or borrowed from a contact. InterestRate is a
// simple monthly percentage of the principal.
type Debt struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	ContactID       uuid.UUID       `json:"contact_id" db:"contact_id"`
	ContactName     string          `json:"contact_name" db:"contact_name"`
	PrincipalAmount decimal.Decimal `json:"principal_amount" db:"principal_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	DebtDate        time.Time       `json:"debt_date" db:"debt_date"`
	Type            string          `json:"type" db:"type"`
	Status          string          `json:"status" db:"status"`
	Notes           *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

func (d *Debt) IsActive() bool {
	return d.Status == DebtStatusActive
}

// DTOs for requests and responses

type CreateDebtRequest struct {
	ContactID       uuid.UUID       `json:"contact_id" validate:"required"`
	PrincipalAmount decimal.Decimal `json:"principal_amount" validate:"decimal_gt=0"`
	InterestRate    decimal.Decimal `json:"interest_rate" validate:"decimal_gte=0"`
	DebtDate        string          `json:"debt_date" validate:"required,datetime=2006-01-02"`
	Type            string          `json:"type" validate:"required,oneof='I Owe' 'Owe Me'"`
	Status          string          `json:"status" validate:"omitempty,oneof=active completed"`
	Notes           *string         `json:"notes"`
}

type UpdateDebtRequest = CreateDebtRequest

// DebtFilter selects and orders a page of debts.
type DebtFilter struct {
	Types     []string
	Statuses  []string
	ContactID *uuid.UUID
	Sort      Sort
	Page      Page
}

type DebtPage struct {
	Debts      []*Debt `json:"debts"`
	TotalCount int     `json:"total_count"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
}

// DebtSortColumns maps accepted sort keys to SQL expressions.
var DebtSortColumns = map[string]string{
	"debt_date":        "d.debt_date",
	"principal_amount": "d.principal_amount",
	"interest_rate":    "d.interest_rate",
	"created_at":       "d.created_at",
	"contact_name":     "c.name",
	"status":           "d.status",
	"type":             "d.type",
}
