package service

import (
	"context"
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

// FormattedAccrual holds the accrual amounts rendered in the user's currency.
type FormattedAccrual struct {
	Principal         string `json:"principal"`
	ExactInterest     string `json:"exact_interest"`
	RoundUpInterest   string `json:"round_up_interest"`
	RoundDownInterest string `json:"round_down_interest"`
}

// AccrualReport is an accrual result for one debt, with display amounts.
type AccrualReport struct {
	DebtID   uuid.UUID `json:"debt_id"`
	Currency string    `json:"currency"`
	AsOf     string    `json:"as_of"`
	accrual.Result
	Formatted *FormattedAccrual `json:"formatted,omitempty"`
}

type DebtService struct {
	debts         repository.DebtRepository
	contacts      repository.ContactRepository
	activities    repository.ActivityRepository
	currencies    CurrencyResolver
	cache         cache.SummaryCache
	metrics       *metrics.Metrics
	defaultPolicy accrual.Policy
	Now           Clock
}

func NewDebtService(
	debts repository.DebtRepository,
	contacts repository.ContactRepository,
	activities repository.ActivityRepository,
	currencies CurrencyResolver,
	summaryCache cache.SummaryCache,
	m *metrics.Metrics,
	defaultPolicy accrual.Policy,
) *DebtService {
	return &DebtService{
		debts:         debts,
		contacts:      contacts,
		activities:    activities,
		currencies:    currencies,
		cache:         summaryCache,
		metrics:       m,
		defaultPolicy: defaultPolicy,
		Now:           systemClock,
	}
}

func (s *DebtService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateDebtRequest) (*domain.Debt, error) {
	debt := &domain.Debt{
		ID:     uuid.New(),
		UserID: userID,
		Status: domain.DebtStatusActive,
	}
	if err := s.apply(ctx, debt, req); err != nil {
		return nil, err
	}

	now := s.Now()
	debt.CreatedAt = now
	debt.UpdatedAt = now

	if err := s.debts.Create(ctx, debt); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	invalidateSummary(ctx, s.cache, userID)
	return debt, nil
}

func (s *DebtService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Debt, error) {
	debt, err := s.debts.GetByID(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err, func() error { return customError.WrapDebtNotFound(id.String()) })
	}
	return debt, nil
}

func (s *DebtService) Update(ctx context.Context, userID, id uuid.UUID, req *domain.UpdateDebtRequest) (*domain.Debt, error) {
	debt, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, debt, req); err != nil {
		return nil, err
	}
	debt.UpdatedAt = s.Now()

	if err := s.debts.Update(ctx, debt); err != nil {
		return nil, mapNotFound(err, func() error { return customError.WrapDebtNotFound(id.String()) })
	}

	invalidateSummary(ctx, s.cache, userID)
	return debt, nil
}

// apply copies a create/update request onto debt after checking the contact
// belongs to the user.
func (s *DebtService) apply(ctx context.Context, debt *domain.Debt, req *domain.CreateDebtRequest) error {
	debtDate, err := parseDate("debt_date", req.DebtDate)
	if err != nil {
		return err
	}

	contact, err := s.contacts.GetByID(ctx, debt.UserID, req.ContactID)
	if err != nil {
		return mapNotFound(err, func() error { return customError.WrapContactNotFound(req.ContactID.String()) })
	}

	debt.ContactID = contact.ID
	debt.ContactName = contact.Name
	debt.PrincipalAmount = req.PrincipalAmount
	debt.InterestRate = req.InterestRate
	debt.DebtDate = debtDate
	debt.Type = req.Type
	debt.Notes = req.Notes
	if req.Status != "" {
		debt.Status = req.Status
	}

	return accrual.Validate(debt)
}

func (s *DebtService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.debts.Delete(ctx, userID, id); err != nil {
		return mapNotFound(err, func() error { return customError.WrapDebtNotFound(id.String()) })
	}

	invalidateSummary(ctx, s.cache, userID)
	return nil
}

func (s *DebtService) List(ctx context.Context, userID uuid.UUID, filter domain.DebtFilter) (*domain.DebtPage, error) {
	filter.Page = filter.Page.Normalize()

	debts, total, err := s.debts.List(ctx, userID, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.DebtPage{
		Debts:      debts,
		TotalCount: total,
		Page:       filter.Page.Number,
		PageSize:   filter.Page.Size,
	}, nil
}

// Activities returns a debt's history, latest first.
func (s *DebtService) Activities(ctx context.Context, userID, debtID uuid.UUID) ([]*domain.Activity, error) {
	if _, err := s.Get(ctx, userID, debtID); err != nil {
		return nil, err
	}

	activities, err := s.activities.ListByDebt(ctx, userID, debtID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return activities, nil
}

// AddInterest records an interest payment. A closing payment completes the
// debt in the same transaction.
func (s *DebtService) AddInterest(ctx context.Context, userID, debtID uuid.UUID, req *domain.InterestActivityRequest) (*domain.Activity, error) {
	if req.Months <= 0 {
		return nil, customError.WrapInvalidActivity("months must be greater than 0")
	}
	if !req.Amount.IsPositive() {
		return nil, customError.WrapInvalidActivity("amount must be greater than 0")
	}
	date, err := parseDate("activity_date", req.ActivityDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, userID, debtID); err != nil {
		return nil, err
	}

	months := req.Months
	activity := s.newActivity(userID, debtID, domain.ActivityTypeInterest, date, req.Notes)
	activity.Amount = req.Amount
	activity.Months = &months
	activity.ClosingDebt = req.ClosingDebt

	status := ""
	if req.ClosingDebt {
		status = domain.DebtStatusCompleted
	}

	if err := s.activities.Create(ctx, activity, status); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	invalidateSummary(ctx, s.cache, userID)
	return activity, nil
}

func (s *DebtService) AddNote(ctx context.Context, userID, debtID uuid.UUID, req *domain.NoteActivityRequest) (*domain.Activity, error) {
	if req.Notes == "" {
		return nil, customError.WrapInvalidActivity("notes are required")
	}
	date, err := parseDate("activity_date", req.ActivityDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, userID, debtID); err != nil {
		return nil, err
	}

	notes := req.Notes
	activity := s.newActivity(userID, debtID, domain.ActivityTypeNote, date, &notes)
	activity.Amount = decimal.Zero

	if err := s.activities.Create(ctx, activity, ""); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	invalidateSummary(ctx, s.cache, userID)
	return activity, nil
}

// UpdateActivity edits an activity of the debt. For Interest activities the
// debt is completed when ClosingDebt is set and reactivated otherwise.
func (s *DebtService) UpdateActivity(ctx context.Context, userID, debtID, activityID uuid.UUID, req *domain.UpdateActivityRequest) (*domain.Activity, error) {
	date, err := parseDate("activity_date", req.ActivityDate)
	if err != nil {
		return nil, err
	}

	activity, err := s.activityOf(ctx, userID, debtID, activityID)
	if err != nil {
		return nil, err
	}

	activity.ActivityDate = date
	activity.Notes = req.Notes
	activity.UpdatedAt = s.Now()

	status := ""
	if activity.IsInterest() {
		if req.Months != nil {
			if *req.Months <= 0 {
				return nil, customError.WrapInvalidActivity("months must be greater than 0")
			}
			months := *req.Months
			activity.Months = &months
		}
		if req.Amount != nil {
			if !req.Amount.IsPositive() {
				return nil, customError.WrapInvalidActivity("amount must be greater than 0")
			}
			activity.Amount = *req.Amount
		}
		activity.ClosingDebt = req.ClosingDebt
		status = domain.DebtStatusActive
		if req.ClosingDebt {
			status = domain.DebtStatusCompleted
		}
	} else if activity.Notes == nil || *activity.Notes == "" {
		return nil, customError.WrapInvalidActivity("notes are required")
	}

	if err := s.activities.Update(ctx, activity, status); err != nil {
		return nil, mapNotFound(err, func() error { return customError.WrapActivityNotFound(activityID.String()) })
	}

	invalidateSummary(ctx, s.cache, userID)
	return activity, nil
}

// DeleteActivity removes an activity; deleting a closing payment reopens the debt.
func (s *DebtService) DeleteActivity(ctx context.Context, userID, debtID, activityID uuid.UUID) error {
	activity, err := s.activityOf(ctx, userID, debtID, activityID)
	if err != nil {
		return err
	}

	status := ""
	if activity.IsInterest() && activity.ClosingDebt {
		status = domain.DebtStatusActive
	}

	if err := s.activities.Delete(ctx, activity, status); err != nil {
		return mapNotFound(err, func() error { return customError.WrapActivityNotFound(activityID.String()) })
	}

	invalidateSummary(ctx, s.cache, userID)
	return nil
}

// SuggestedInterest is the amount an interest payment covering months would be.
func (s *DebtService) SuggestedInterest(ctx context.Context, userID, debtID uuid.UUID, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, customError.WrapInvalidActivity("months must be greater than 0")
	}
	debt, err := s.Get(ctx, userID, debtID)
	if err != nil {
		return decimal.Zero, err
	}
	return utils.SimpleInterest(debt.PrincipalAmount, debt.InterestRate, int64(months)), nil
}

// Accrual computes the interest accrued on a debt as of now under policy, or
// the configured default policy when policy is empty.
func (s *DebtService) Accrual(ctx context.Context, userID, debtID uuid.UUID, policy accrual.Policy) (*AccrualReport, error) {
	if policy == "" {
		policy = s.defaultPolicy
	}

	debt, err := s.Get(ctx, userID, debtID)
	if err != nil {
		return nil, err
	}

	activities, err := s.activities.ListByDebt(ctx, userID, debtID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	now := s.Now()
	result, err := accrual.NewCalculator(policy).Calculate(debt, activities, now)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveAccrual(string(policy), result.Applicable)

	f, err := s.currencies.Formatter(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &AccrualReport{
		DebtID:   debt.ID,
		Currency: f.Code(),
		AsOf:     now.Format(utils.DateLayout),
		Result:   result,
	}
	if result.Applicable {
		report.Formatted = &FormattedAccrual{
			Principal:         f.Format(debt.PrincipalAmount),
			ExactInterest:     f.Format(result.ExactInterest),
			RoundUpInterest:   f.Format(result.RoundUpInterest),
			RoundDownInterest: f.Format(result.RoundDownInterest),
		}
	}
	return report, nil
}

func (s *DebtService) activityOf(ctx context.Context, userID, debtID, activityID uuid.UUID) (*domain.Activity, error) {
	activity, err := s.activities.GetByID(ctx, userID, activityID)
	if err != nil {
		return nil, mapNotFound(err, func() error { return customError.WrapActivityNotFound(activityID.String()) })
	}
	if activity.DebtID != debtID {
		return nil, customError.WrapActivityNotFound(activityID.String())
	}
	return activity, nil
}

func (s *DebtService) newActivity(userID, debtID uuid.UUID, activityType string, date time.Time, notes *string) *domain.Activity {
	now := s.Now()
	return &domain.Activity{
		ID:           uuid.New(),
		DebtID:       debtID,
		UserID:       userID,
		ActivityType: activityType,
		ActivityDate: date,
		Notes:        notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
