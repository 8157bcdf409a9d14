package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/segyhp/debt-tracker/pkg/currency"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type fixedCurrency struct {
	f currency.Formatter
}

func (c fixedCurrency) Formatter(context.Context, uuid.UUID) (currency.Formatter, error) {
	return c.f, nil
}

func testDebt(userID uuid.UUID, debtType, status, principal, rate string, debtDate time.Time) *domain.Debt {
	return &domain.Debt{
		ID:              uuid.New(),
		UserID:          userID,
		ContactID:       uuid.New(),
		ContactName:     "Alice",
		PrincipalAmount: decimal.RequireFromString(principal),
		InterestRate:    decimal.RequireFromString(rate),
		DebtDate:        debtDate,
		Type:            debtType,
		Status:          status,
		CreatedAt:       debtDate,
	}
}

func interestActivity(debtID uuid.UUID, on time.Time, months int, closing bool) *domain.Activity {
	return &domain.Activity{
		ID:           uuid.New(),
		DebtID:       debtID,
		ActivityType: domain.ActivityTypeInterest,
		Amount:       decimal.NewFromInt(20),
		ActivityDate: on,
		Months:       &months,
		ClosingDebt:  closing,
	}
}

func strPtr(s string) *string {
	return &s
}
