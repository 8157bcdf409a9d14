package service

import (
	"context"
	"log/slog"

	"github.com/segyhp/debt-tracker/internal/accrual"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/segyhp/debt-tracker/internal/metrics"
	"github.com/segyhp/debt-tracker/internal/repository"
	customError "github.com/segyhp/debt-tracker/pkg/errors"
	"github.com/segyhp/debt-tracker/pkg/utils"
)

// SweepReport summarises one reminder sweep.
type SweepReport struct {
	DebtsChecked int
	Upcoming     int
	Overdue      []*domain.UpcomingPayment
}

type ReminderService struct {
	debts      repository.DebtRepository
	activities repository.ActivityRepository
	metrics    *metrics.Metrics
	Now        Clock
}

func NewReminderService(debts repository.DebtRepository, activities repository.ActivityRepository, m *metrics.Metrics) *ReminderService {
	return &ReminderService{
		debts:      debts,
		activities: activities,
		metrics:    m,
		Now:        systemClock,
	}
}

// Sweep checks every active debt for interest falling due within a month and
// logs the ones already overdue.
func (s *ReminderService) Sweep(ctx context.Context) (*SweepReport, error) {
	debts, err := s.debts.ListActive(ctx)
	if err != nil {
		s.metrics.ReminderRuns.WithLabelValues("error").Inc()
		return nil, customError.WrapDatabaseError(err)
	}

	report := &SweepReport{DebtsChecked: len(debts)}
	if len(debts) == 0 {
		s.metrics.OverduePayments.Set(0)
		s.metrics.ReminderRuns.WithLabelValues("success").Inc()
		return report, nil
	}

	byDebt, err := interestByDebt(ctx, s.activities, debts)
	if err != nil {
		s.metrics.ReminderRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	now := s.Now()
	for _, d := range debts {
		p, ok := accrual.Upcoming(d, byDebt[d.ID], now)
		if !ok {
			continue
		}
		report.Upcoming++
		if !p.IsOverdue {
			continue
		}
		report.Overdue = append(report.Overdue, p)
		slog.InfoContext(ctx, "interest payment overdue",
			"user_id", d.UserID,
			"debt_id", d.ID,
			"contact", d.ContactName,
			"type", d.Type,
			"due_date", p.DueDate.Format(utils.DateLayout),
			"amount", p.Amount.String(),
		)
	}

	s.metrics.OverduePayments.Set(float64(len(report.Overdue)))
	s.metrics.ReminderRuns.WithLabelValues("success").Inc()
	slog.InfoContext(ctx, "reminder sweep finished",
		"debts_checked", report.DebtsChecked,
		"upcoming", report.Upcoming,
		"overdue", len(report.Overdue),
	)
	return report, nil
}
