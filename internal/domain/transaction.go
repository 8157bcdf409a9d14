package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransactionKindDebt     = "debt"
	TransactionKindActivity = "activity"
)

// Date range presets for the transaction history.
const (
	RangeToday     = "today"
	RangeYesterday = "yesterday"
	RangeThisWeek  = "this_week"
	RangeLastWeek  = "last_week"
	RangeThisMonth = "this_month"
	RangeLastMonth = "last_month"
	RangeThisYear  = "this_year"
	RangeCustom    = "custom"
)

// Transaction is one row of the merged history: a debt being opened or an
// activity recorded against one.
type Transaction struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	ContactName  string          `json:"contact_name"`
	DebtID       uuid.UUID       `json:"debt_id"`
	ActivityID   *uuid.UUID      `json:"activity_id,omitempty"`
	DebtType     string          `json:"debt_type"`
	ActivityType string          `json:"activity_type,omitempty"`
	Status       string          `json:"status,omitempty"`
}

type TransactionQuery struct {
	Range  string
	Start  *time.Time
	End    *time.Time
	Search string
	Sort   Sort
	Page   Page
}

type TransactionPage struct {
	Transactions []*Transaction  `json:"transactions"`
	TotalCount   int             `json:"total_count"`
	Page         int             `json:"page"`
	PageSize     int             `json:"page_size"`
	RangeStart   time.Time       `json:"range_start"`
	RangeEnd     time.Time       `json:"range_end"`
	MoneyIn      decimal.Decimal `json:"money_in"`
	MoneyOut     decimal.Decimal `json:"money_out"`
}
