package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ActivityTypeInterest       = "Interest"
	ActivityTypeNote           = "Note"
	ActivityTypePayment        = "Payment"
	ActivityTypeAdditionalLoan = "Additional Loan"
)

// Activity is an entry in a debt's history. Only Interest activities carry
// Months and count toward interest already paid.
type Activity struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	DebtID       uuid.UUID       `json:"debt_id" db:"debt_id"`
	UserID       uuid.UUID       `json:"user_id" db:"user_id"`
	ActivityType string          `json:"activity_type" db:"activity_type"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	ActivityDate time.Time       `json:"activity_date" db:"activity_date"`
	Notes        *string         `json:"notes,omitempty" db:"notes"`
	Months       *int            `json:"months,omitempty" db:"months"`
	ClosingDebt  bool            `json:"closing_debt" db:"closing_debt"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

func (a *Activity) IsInterest() bool {
	return a.ActivityType == ActivityTypeInterest
}

// MonthsPaid returns the months an activity covers, zero when unset.
func (a *Activity) MonthsPaid() int {
	if a.Months == nil {
		return 0
	}
	return *a.Months
}

// DTOs for requests and responses

type InterestActivityRequest struct {
	Months       int             `json:"months" validate:"gt=0"`
	Amount       decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	ActivityDate string          `json:"activity_date" validate:"required,datetime=2006-01-02"`
	ClosingDebt  bool            `json:"closing_debt"`
	Notes        *string         `json:"notes"`
}

type NoteActivityRequest struct {
	ActivityDate string `json:"activity_date" validate:"required,datetime=2006-01-02"`
	Notes        string `json:"notes" validate:"required"`
}

// ActivityView pairs an activity with its debt's type and contact for feeds.
type ActivityView struct {
	Activity
	DebtType    string `json:"debt_type" db:"debt_type"`
	ContactName string `json:"contact_name" db:"contact_name"`
}

// UpdateActivityRequest edits an existing activity. Months, Amount and
// ClosingDebt only apply to Interest activities; nil fields keep their value.
type UpdateActivityRequest struct {
	ActivityDate string           `json:"activity_date" validate:"required,datetime=2006-01-02"`
	Months       *int             `json:"months" validate:"omitempty,gt=0"`
	Amount       *decimal.Decimal `json:"amount" validate:"omitempty,decimal_gt=0"`
	ClosingDebt  bool             `json:"closing_debt"`
	Notes        *string          `json:"notes"`
}
