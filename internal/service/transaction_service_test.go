package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/segyhp/debt-tracker/internal/mocks"
	customError "github.com/segyhp/debt-tracker/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolveRange(t *testing.T) {
	// Wednesday.
	now := time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC)
	start, end := date(2024, 2, 27), date(2024, 3, 2)

	tests := []struct {
		preset        string
		customStart   *time.Time
		customEnd     *time.Time
		expectedStart time.Time
		expectedEnd   time.Time
		expectedErr   bool
	}{
		{preset: domain.RangeToday, expectedStart: date(2024, 4, 10), expectedEnd: date(2024, 4, 11)},
		{preset: domain.RangeYesterday, expectedStart: date(2024, 4, 9), expectedEnd: date(2024, 4, 10)},
		{preset: domain.RangeThisWeek, expectedStart: date(2024, 4, 8), expectedEnd: date(2024, 4, 11)},
		{preset: domain.RangeLastWeek, expectedStart: date(2024, 4, 1), expectedEnd: date(2024, 4, 8)},
		{preset: domain.RangeThisMonth, expectedStart: date(2024, 4, 1), expectedEnd: date(2024, 4, 11)},
		{preset: "", expectedStart: date(2024, 4, 1), expectedEnd: date(2024, 4, 11)},
		{preset: domain.RangeLastMonth, expectedStart: date(2024, 3, 1), expectedEnd: date(2024, 4, 1)},
		{preset: domain.RangeThisYear, expectedStart: date(2024, 1, 1), expectedEnd: date(2024, 4, 11)},
		{preset: domain.RangeCustom, customStart: &start, customEnd: &end, expectedStart: start, expectedEnd: date(2024, 3, 3)},
		{preset: domain.RangeCustom, customStart: &start, customEnd: &start, expectedStart: start, expectedEnd: date(2024, 2, 28)},
		{preset: domain.RangeCustom, customStart: &end, customEnd: &start, expectedErr: true},
		{preset: domain.RangeCustom, customStart: &start, expectedErr: true},
		{preset: "fortnight", expectedErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			gotStart, gotEnd, err := ResolveRange(tt.preset, tt.customStart, tt.customEnd, now)

			if tt.expectedErr {
				assert.Equal(t, customError.ErrCodeValidation, customError.Code(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStart, gotStart)
			assert.Equal(t, tt.expectedEnd, gotEnd)
		})
	}
}

func TestResolveRange_WeekStartsOnMonday(t *testing.T) {
	sunday := date(2024, 4, 14)

	start, end, err := ResolveRange(domain.RangeThisWeek, nil, nil, sunday)

	require.NoError(t, err)
	assert.Equal(t, date(2024, 4, 8), start)
	assert.Equal(t, date(2024, 4, 15), end)
}

func view(debtType, activityType, contact string, amount string, on time.Time, notes *string) *domain.ActivityView {
	return &domain.ActivityView{
		Activity: domain.Activity{
			ID:           uuid.New(),
			DebtID:       uuid.New(),
			ActivityType: activityType,
			Amount:       decimal.RequireFromString(amount),
			ActivityDate: on,
			Notes:        notes,
		},
		DebtType:    debtType,
		ContactName: contact,
	}
}

type transactionFixture struct {
	svc    *TransactionService
	userID uuid.UUID
}

func newTransactionFixture() *transactionFixture {
	userID := uuid.New()
	debts := &mocks.MockDebtRepository{}
	activities := &mocks.MockActivityRepository{}

	lent := testDebt(userID, domain.DebtTypeOweMe, domain.DebtStatusActive, "1000", "2", date(2024, 4, 2))
	lent.ContactName = "Alice"
	borrowed := testDebt(userID, domain.DebtTypeIOwe, domain.DebtStatusActive, "300", "1", date(2024, 4, 5))
	borrowed.ContactName = "Bob"

	start, end := date(2024, 4, 1), date(2024, 4, 11)
	debts.On("ListCreatedBetween", mock.Anything, userID, start, end).Return([]*domain.Debt{lent, borrowed}, nil)
	activities.On("ListBetween", mock.Anything, userID, start, end).Return([]*domain.ActivityView{
		view(domain.DebtTypeOweMe, domain.ActivityTypeInterest, "Alice", "20", date(2024, 4, 8), nil),
		view(domain.DebtTypeIOwe, domain.ActivityTypeInterest, "Bob", "3", date(2024, 4, 9), strPtr("april")),
		view(domain.DebtTypeOweMe, domain.ActivityTypeNote, "Alice", "0", date(2024, 4, 3), strPtr("promised friday")),
	}, nil)

	svc := NewTransactionService(debts, activities)
	svc.Now = fixedClock(time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC))
	return &transactionFixture{svc: svc, userID: userID}
}

func TestTransactionService_List(t *testing.T) {
	f := newTransactionFixture()

	page, err := f.svc.List(context.Background(), f.userID, domain.TransactionQuery{
		Range: domain.RangeThisMonth,
		Page:  domain.Page{Number: 1, Size: 10},
	})

	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalCount)
	require.Len(t, page.Transactions, 5)

	// Newest first by default.
	assert.Equal(t, "Interest payment: april", page.Transactions[0].Description)
	assert.Equal(t, "Interest payment", page.Transactions[1].Description)
	assert.Equal(t, "New I Owe debt created", page.Transactions[2].Description)
	assert.Equal(t, "promised friday", page.Transactions[3].Description)
	assert.Equal(t, domain.TransactionKindDebt, page.Transactions[4].Kind)

	assert.True(t, page.MoneyIn.Equal(decimal.NewFromInt(1020)), page.MoneyIn.String())
	assert.True(t, page.MoneyOut.Equal(decimal.NewFromInt(303)), page.MoneyOut.String())
	assert.Equal(t, date(2024, 4, 1), page.RangeStart)
	assert.Equal(t, date(2024, 4, 11), page.RangeEnd)
}

func TestTransactionService_List_SearchSortAndPage(t *testing.T) {
	f := newTransactionFixture()

	page, err := f.svc.List(context.Background(), f.userID, domain.TransactionQuery{
		Search: "ALICE",
		Sort:   domain.Sort{Key: "amount", Ascending: true},
		Page:   domain.Page{Number: 2, Size: 2},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	require.Len(t, page.Transactions, 1)
	assert.True(t, page.Transactions[0].Amount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, page.MoneyIn.Equal(decimal.NewFromInt(1020)))
	assert.True(t, page.MoneyOut.IsZero())
}

func TestTransactionService_List_PagePastEnd(t *testing.T) {
	f := newTransactionFixture()

	page, err := f.svc.List(context.Background(), f.userID, domain.TransactionQuery{
		Page: domain.Page{Number: 9, Size: 10},
	})

	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalCount)
	assert.NotNil(t, page.Transactions)
	assert.Empty(t, page.Transactions)
}

func TestTransactionService_List_InvalidRange(t *testing.T) {
	svc := NewTransactionService(&mocks.MockDebtRepository{}, &mocks.MockActivityRepository{})

	_, err := svc.List(context.Background(), uuid.New(), domain.TransactionQuery{Range: "forever"})

	assert.Equal(t, customError.ErrCodeValidation, customError.Code(err))
}
