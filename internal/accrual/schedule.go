package accrual

import (
	"time"

	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/segyhp/debt-tracker/pkg/utils"

	"github.com/shopspring/decimal"
)

// MonthlyInterest is one month of simple interest on principal.
func MonthlyInterest(principal, ratePercent decimal.Decimal) decimal.Decimal {
	return utils.SimpleInterest(principal, ratePercent, 1)
}

// LastInterestDate returns the most recent Interest activity date.
func LastInterestDate(activities []*domain.Activity) (time.Time, bool) {
	var last time.Time
	found := false
	for _, a := range activities {
		if !a.IsInterest() {
			continue
		}
		if !found || a.ActivityDate.After(last) {
			last = a.ActivityDate
			found = true
		}
	}
	return last, found
}

// NextDueDate is one month after the last interest payment, or one month after
// the debt date when nothing has been paid yet.
func NextDueDate(debt *domain.Debt, activities []*domain.Activity) time.Time {
	from := debt.DebtDate
	if last, ok := LastInterestDate(activities); ok {
		from = last
	}
	return utils.AddMonths(from, 1)
}

// Upcoming returns the next interest payment for an active debt when it falls
// due within a month of now. Payments due before today are flagged overdue.
func Upcoming(debt *domain.Debt, activities []*domain.Activity, now time.Time) (*domain.UpcomingPayment, bool) {
	if !debt.IsActive() {
		return nil, false
	}

	due := NextDueDate(debt, activities)
	if !utils.CivilBefore(due, utils.AddMonths(now, 1)) {
		return nil, false
	}

	return &domain.UpcomingPayment{
		DebtID:      debt.ID,
		ContactName: debt.ContactName,
		DueDate:     due,
		Amount:      MonthlyInterest(debt.PrincipalAmount, debt.InterestRate),
		Type:        debt.Type,
		IsOverdue:   utils.CivilBefore(due, now),
	}, true
}
