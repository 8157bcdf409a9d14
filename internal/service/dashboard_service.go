package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/accrual"
	"github.com/segyhp/debt-tracker/internal/cache"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/segyhp/debt-tracker/internal/metrics"
	"github.com/segyhp/debt-tracker/internal/repository"
	customError "github.com/segyhp/debt-tracker/pkg/errors"
	"github.com/segyhp/debt-tracker/pkg/utils"

	"github.com/shopspring/decimal"
)

// DashboardLimits caps the lists shown on the dashboard.
type DashboardLimits struct {
	Recent   int
	Upcoming int
}

type DashboardService struct {
	contacts   repository.ContactRepository
	debts      repository.DebtRepository
	activities repository.ActivityRepository
	cache      cache.SummaryCache
	metrics    *metrics.Metrics
	limits     DashboardLimits
	Now        Clock
}

func NewDashboardService(
	contacts repository.ContactRepository,
	debts repository.DebtRepository,
	activities repository.ActivityRepository,
	summaryCache cache.SummaryCache,
	m *metrics.Metrics,
	limits DashboardLimits,
) *DashboardService {
	return &DashboardService{
		contacts:   contacts,
		debts:      debts,
		activities: activities,
		cache:      summaryCache,
		metrics:    m,
		limits:     limits,
		Now:        systemClock,
	}
}

// Summary returns the user's dashboard, from cache when possible. Cache
// failures fall through to a fresh computation.
func (s *DashboardService) Summary(ctx context.Context, userID uuid.UUID) (*domain.DashboardSummary, error) {
	cached, ok, err := s.cache.Get(ctx, userID)
	switch {
	case err != nil:
		s.metrics.ObserveCache("error")
		slog.WarnContext(ctx, "dashboard cache read failed", "user_id", userID, "error", err)
	case ok:
		s.metrics.ObserveCache("hit")
		return cached, nil
	default:
		s.metrics.ObserveCache("miss")
	}

	summary, err := s.Compute(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, userID, summary); err != nil {
		slog.WarnContext(ctx, "dashboard cache write failed", "user_id", userID, "error", err)
	}
	return summary, nil
}

// Compute builds the dashboard from the database.
func (s *DashboardService) Compute(ctx context.Context, userID uuid.UUID) (*domain.DashboardSummary, error) {
	now := s.Now()

	totalContacts, err := s.contacts.Count(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	// Newest first.
	debts, err := s.debts.ListAll(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	recent, err := s.activities.ListRecent(ctx, userID, s.limits.Recent)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	summary := &domain.DashboardSummary{
		TotalContacts:            totalContacts,
		TotalDebts:               len(debts),
		TotalOwed:                decimal.Zero,
		TotalOwing:               decimal.Zero,
		MonthlyInterestDue:       decimal.Zero,
		MonthlyInterestEarned:    decimal.Zero,
		RecentDebts:              debts[:min(len(debts), s.limits.Recent)],
		RecentActivities:         recent,
		UpcomingInterestPayments: []*domain.UpcomingPayment{},
		GeneratedAt:              now,
	}

	var active []*domain.Debt
	var highest, oldest *domain.Debt
	for _, d := range debts {
		monthly := accrual.MonthlyInterest(d.PrincipalAmount, d.InterestRate)
		switch d.Type {
		case domain.DebtTypeOweMe:
			summary.TotalOwed = summary.TotalOwed.Add(d.PrincipalAmount)
			summary.DebtsByType.OweMe++
			if d.IsActive() {
				summary.MonthlyInterestEarned = summary.MonthlyInterestEarned.Add(monthly)
			}
		case domain.DebtTypeIOwe:
			summary.TotalOwing = summary.TotalOwing.Add(d.PrincipalAmount)
			summary.DebtsByType.IOwe++
			if d.IsActive() {
				summary.MonthlyInterestDue = summary.MonthlyInterestDue.Add(monthly)
			}
		}

		if highest == nil || d.PrincipalAmount.GreaterThan(highest.PrincipalAmount) {
			highest = d
		}

		if !d.IsActive() {
			summary.DebtsByStatus.Completed++
			continue
		}
		summary.DebtsByStatus.Active++
		active = append(active, d)
		if oldest == nil || d.DebtDate.Before(oldest.DebtDate) {
			oldest = d
		}
	}

	if highest != nil {
		summary.HighestDebt = &domain.HighestDebt{
			DebtID:      highest.ID,
			Amount:      highest.PrincipalAmount,
			ContactName: highest.ContactName,
			Type:        highest.Type,
		}
	}
	if oldest != nil {
		summary.OldestActiveDebt = &domain.OldestActiveDebt{
			DebtID:      oldest.ID,
			DebtDate:    oldest.DebtDate,
			ContactName: oldest.ContactName,
			DaysActive:  utils.DaysBetween(oldest.DebtDate, now),
		}
	}

	upcoming, err := s.upcoming(ctx, active, now)
	if err != nil {
		return nil, err
	}
	summary.UpcomingInterestPayments = upcoming

	return summary, nil
}

func (s *DashboardService) upcoming(ctx context.Context, active []*domain.Debt, now time.Time) ([]*domain.UpcomingPayment, error) {
	payments := []*domain.UpcomingPayment{}
	if len(active) == 0 {
		return payments, nil
	}

	byDebt, err := interestByDebt(ctx, s.activities, active)
	if err != nil {
		return nil, err
	}

	for _, d := range active {
		if p, ok := accrual.Upcoming(d, byDebt[d.ID], now); ok {
			payments = append(payments, p)
		}
	}

	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].DueDate.Before(payments[j].DueDate)
	})
	return payments[:min(len(payments), s.limits.Upcoming)], nil
}

// interestByDebt loads the Interest activities of debts grouped by debt id.
func interestByDebt(ctx context.Context, activities repository.ActivityRepository, debts []*domain.Debt) (map[uuid.UUID][]*domain.Activity, error) {
	ids := make([]uuid.UUID, len(debts))
	for i, d := range debts {
		ids[i] = d.ID
	}

	list, err := activities.ListInterestByDebts(ctx, ids)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	grouped := make(map[uuid.UUID][]*domain.Activity, len(debts))
	for _, a := range list {
		grouped[a.DebtID] = append(grouped[a.DebtID], a)
	}
	return grouped, nil
}
