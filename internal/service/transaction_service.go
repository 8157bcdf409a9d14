package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/segyhp/debt-tracker/internal/repository"
	customError "github.com/segyhp/debt-tracker/pkg/errors"
	"github.com/segyhp/debt-tracker/pkg/utils"

	"github.com/shopspring/decimal"
)

type TransactionService struct {
	debts      repository.DebtRepository
	activities repository.ActivityRepository
	Now        Clock
}

func NewTransactionService(debts repository.DebtRepository, activities repository.ActivityRepository) *TransactionService {
	return &TransactionService{
		debts:      debts,
		activities: activities,
		Now:        systemClock,
	}
}

// ResolveRange turns a preset into a half-open [start, end) interval of whole
// days in now's location. Weeks start on Monday. RangeCustom uses the given
// start and end dates, both inclusive.
func ResolveRange(preset string, customStart, customEnd *time.Time, now time.Time) (time.Time, time.Time, error) {
	today := utils.DateOnly(now)
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	switch preset {
	case domain.RangeToday:
		return today, tomorrow, nil
	case domain.RangeYesterday:
		return today.AddDate(0, 0, -1), today, nil
	case domain.RangeThisWeek:
		return weekStart, tomorrow, nil
	case domain.RangeLastWeek:
		return weekStart.AddDate(0, 0, -7), weekStart, nil
	case "", domain.RangeThisMonth:
		return monthStart, tomorrow, nil
	case domain.RangeLastMonth:
		return monthStart.AddDate(0, -1, 0), monthStart, nil
	case domain.RangeThisYear:
		return time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location()), tomorrow, nil
	case domain.RangeCustom:
		if customStart == nil || customEnd == nil {
			return time.Time{}, time.Time{}, customError.NewBusinessError(customError.ErrCodeValidation,
				"custom range requires start and end dates", customError.ErrValidation)
		}
		start, end := utils.DateOnly(*customStart), utils.DateOnly(*customEnd)
		if end.Before(start) {
			return time.Time{}, time.Time{}, customError.NewBusinessError(customError.ErrCodeValidation,
				"end date cannot be before start date", customError.ErrValidation)
		}
		return start, end.AddDate(0, 0, 1), nil
	default:
		return time.Time{}, time.Time{}, customError.NewBusinessError(customError.ErrCodeValidation,
			"unknown date range "+preset, customError.ErrValidation)
	}
}

// List merges debts created and activities dated within the range into one
// history, then searches, sorts and pages it. Money in and out are totalled
// over every matching transaction, not just the page.
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, q domain.TransactionQuery) (*domain.TransactionPage, error) {
	start, end, err := ResolveRange(q.Range, q.Start, q.End, s.Now())
	if err != nil {
		return nil, err
	}

	debts, err := s.debts.ListCreatedBetween(ctx, userID, start, end)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	views, err := s.activities.ListBetween(ctx, userID, start, end)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	all := make([]*domain.Transaction, 0, len(debts)+len(views))
	for _, d := range debts {
		all = append(all, fromDebt(d))
	}
	for _, v := range views {
		all = append(all, fromActivity(v))
	}

	matched := search(all, q.Search)
	sortTransactions(matched, q.Sort)

	page := q.Page.Normalize()
	result := &domain.TransactionPage{
		Transactions: []*domain.Transaction{},
		TotalCount:   len(matched),
		Page:         page.Number,
		PageSize:     page.Size,
		RangeStart:   start,
		RangeEnd:     end,
		MoneyIn:      decimal.Zero,
		MoneyOut:     decimal.Zero,
	}

	for _, t := range matched {
		if t.Kind == domain.TransactionKindActivity && t.ActivityType != domain.ActivityTypeInterest {
			continue
		}
		switch t.DebtType {
		case domain.DebtTypeOweMe:
			result.MoneyIn = result.MoneyIn.Add(t.Amount)
		case domain.DebtTypeIOwe:
			result.MoneyOut = result.MoneyOut.Add(t.Amount)
		}
	}

	if offset := page.Offset(); offset < len(matched) {
		result.Transactions = matched[offset:min(offset+page.Size, len(matched))]
	}
	return result, nil
}

func fromDebt(d *domain.Debt) *domain.Transaction {
	return &domain.Transaction{
		ID:          "debt-" + d.ID.String(),
		Kind:        domain.TransactionKindDebt,
		Date:        d.CreatedAt,
		Amount:      d.PrincipalAmount,
		Description: "New " + d.Type + " debt created",
		ContactName: d.ContactName,
		DebtID:      d.ID,
		DebtType:    d.Type,
		Status:      d.Status,
	}
}

func fromActivity(v *domain.ActivityView) *domain.Transaction {
	notes := ""
	if v.Notes != nil {
		notes = *v.Notes
	}

	description := notes
	switch {
	case v.IsInterest() && notes != "":
		description = "Interest payment: " + notes
	case v.IsInterest():
		description = "Interest payment"
	case notes == "":
		description = "Note added"
	}

	id := v.ID
	return &domain.Transaction{
		ID:           "activity-" + v.ID.String(),
		Kind:         domain.TransactionKindActivity,
		Date:         v.ActivityDate,
		Amount:       v.Amount,
		Description:  description,
		ContactName:  v.ContactName,
		DebtID:       v.DebtID,
		ActivityID:   &id,
		DebtType:     v.DebtType,
		ActivityType: v.ActivityType,
	}
}

func search(all []*domain.Transaction, term string) []*domain.Transaction {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all
	}

	matched := make([]*domain.Transaction, 0, len(all))
	for _, t := range all {
		for _, field := range []string{t.ContactName, t.Description, t.DebtType, t.ActivityType} {
			if strings.Contains(strings.ToLower(field), term) {
				matched = append(matched, t)
				break
			}
		}
	}
	return matched
}

func sortTransactions(list []*domain.Transaction, s domain.Sort) {
	var less func(a, b *domain.Transaction) bool
	switch s.Key {
	case "amount":
		less = func(a, b *domain.Transaction) bool { return a.Amount.LessThan(b.Amount) }
	case "contact_name":
		less = func(a, b *domain.Transaction) bool { return a.ContactName < b.ContactName }
	case "description":
		less = func(a, b *domain.Transaction) bool { return a.Description < b.Description }
	default:
		less = func(a, b *domain.Transaction) bool { return a.Date.Before(b.Date) }
	}

	sort.SliceStable(list, func(i, j int) bool {
		if s.Ascending {
			return less(list[i], list[j])
		}
		return less(list[j], list[i])
	})
}
