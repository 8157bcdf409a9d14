package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpcomingPayment is the next month of interest due on an active debt.
type UpcomingPayment struct {
	DebtID      uuid.UUID       `json:"debt_id"`
	ContactName string          `json:"contact_name"`
	DueDate     time.Time       `json:"due_date"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	IsOverdue   bool            `json:"is_overdue"`
}

type HighestDebt struct {
	DebtID      uuid.UUID       `json:"debt_id"`
	Amount      decimal.Decimal `json:"amount"`
	ContactName string          `json:"contact_name"`
	Type        string          `json:"type"`
}

type OldestActiveDebt struct {
	DebtID      uuid.UUID `json:"debt_id"`
	DebtDate    time.Time `json:"debt_date"`
	ContactName string    `json:"contact_name"`
	DaysActive  int       `json:"days_active"`
}

type CountByType struct {
	IOwe  int `json:"i_owe"`
	OweMe int `json:"owe_me"`
}

type CountByStatus struct {
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// DashboardSummary aggregates a user's debts as of GeneratedAt.
type DashboardSummary struct {
	TotalContacts            int                `json:"total_contacts"`
	TotalDebts               int                `json:"total_debts"`
	TotalOwed                decimal.Decimal    `json:"total_owed"`
	TotalOwing               decimal.Decimal    `json:"total_owing"`
	DebtsByType              CountByType        `json:"debts_by_type"`
	DebtsByStatus            CountByStatus      `json:"debts_by_status"`
	MonthlyInterestDue       decimal.Decimal    `json:"monthly_interest_due"`
	MonthlyInterestEarned    decimal.Decimal    `json:"monthly_interest_earned"`
	HighestDebt              *HighestDebt       `json:"highest_debt,omitempty"`
	OldestActiveDebt         *OldestActiveDebt  `json:"oldest_active_debt,omitempty"`
	RecentDebts              []*Debt            `json:"recent_debts"`
	RecentActivities         []*ActivityView    `json:"recent_activities"`
	UpcomingInterestPayments []*UpcomingPayment `json:"upcoming_interest_payments"`
	GeneratedAt              time.Time          `json:"generated_at"`
}
