// Package accrual computes unpaid simple interest on a debt from its start date
// and its history of interest payments. Everything here is pure: callers pass
// the current time in.
package accrual

import (
	"fmt"
	"time"

	"github.com/segyhp/debt-tracker/internal/domain"
	customError "github.com/segyhp/debt-tracker/pkg/errors"
	"github.com/segyhp/debt-tracker/pkg/utils"

	"github.com/shopspring/decimal"
)

// Policy selects the date elapsed time is measured from.
type Policy string

const (
	// SinceStartMinusPaidMonths measures from the debt date and subtracts the
	// months already covered by interest payments.
	SinceStartMinusPaidMonths Policy = "since_start"
	// SinceLastPayment measures from the most recent interest payment (or the
	// debt date when there is none) without subtracting paid months.
	SinceLastPayment Policy = "since_last_payment"

	DefaultPolicy = SinceStartMinusPaidMonths
)

// ParsePolicy maps a query value to a Policy. Empty selects the default.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return DefaultPolicy, nil
	case SinceStartMinusPaidMonths, SinceLastPayment:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown accrual policy %q", s)
	}
}

// Result describes interest owed as of a point in time. When Applicable is
// false the debt is not accruing and every other field is zero.
type Result struct {
	Applicable        bool            `json:"applicable"`
	Policy            Policy          `json:"policy"`
	ElapsedMonths     int             `json:"elapsed_months"`
	ElapsedDays       int             `json:"elapsed_days"`
	FractionalPeriod  decimal.Decimal `json:"fractional_period"`
	RoundUpMonths     int             `json:"round_up_months"`
	RoundDownMonths   int             `json:"round_down_months"`
	ExactInterest     decimal.Decimal `json:"exact_interest"`
	RoundUpInterest   decimal.Decimal `json:"round_up_interest"`
	RoundDownInterest decimal.Decimal `json:"round_down_interest"`
	LastPaymentDate   *time.Time      `json:"last_payment_date,omitempty"`
}

// NotApplicable is the result for a debt that is not active.
func NotApplicable(policy Policy) Result {
	return Result{Policy: policy}
}

// Calculator is safe for concurrent use.
type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) Calculator {
	if policy == "" {
		policy = DefaultPolicy
	}
	return Calculator{policy: policy}
}

func (c Calculator) Policy() Policy {
	return c.policy
}

// Calculate returns the interest accrued on debt as of now. Activities may be
// in any order; only Interest activities are considered. A debt that is not
// active yields NotApplicable. A non-positive principal or a negative rate
// fails with INVALID_DEBT_PARAMETERS.
func (c Calculator) Calculate(debt *domain.Debt, activities []*domain.Activity, now time.Time) (Result, error) {
	if !debt.IsActive() {
		return NotApplicable(c.policy), nil
	}
	if err := Validate(debt); err != nil {
		return Result{}, err
	}

	monthsPaid := 0
	for _, a := range activities {
		if a.IsInterest() {
			monthsPaid += a.MonthsPaid()
		}
	}
	var lastPayment *time.Time
	if last, ok := LastInterestDate(activities); ok {
		lastPayment = &last
	}

	from := debt.DebtDate
	if c.policy == SinceLastPayment {
		if lastPayment != nil {
			from = *lastPayment
		}
		monthsPaid = 0
	}

	months, days := 0, 0
	if !utils.CivilBefore(now, from) {
		months, days = utils.MonthsAndDaysBetween(from, now)
	}

	elapsed := months - monthsPaid
	if elapsed < 0 {
		// Prepaid past now: the partial month is covered as well.
		elapsed, days = 0, 0
	}

	// The remainder is a fraction of the current month. Borrowed days can only
	// reach its length when it is shorter than the month borrowed from, in
	// which case the borrowed month's length keeps the fraction below one.
	denominator := utils.DaysInMonth(now.Year(), now.Month())
	if days >= denominator {
		denominator = utils.DaysInPreviousMonth(now)
	}
	fraction := decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(int64(denominator)))
	period := decimal.NewFromInt(int64(elapsed)).Add(fraction)

	roundUp := int(period.Ceil().IntPart())
	roundDown := int(period.Floor().IntPart())

	return Result{
		Applicable:        true,
		Policy:            c.policy,
		ElapsedMonths:     elapsed,
		ElapsedDays:       days,
		FractionalPeriod:  period.Round(4),
		RoundUpMonths:     roundUp,
		RoundDownMonths:   roundDown,
		ExactInterest:     utils.SimpleInterest(debt.PrincipalAmount, debt.InterestRate, int64(elapsed)),
		RoundUpInterest:   utils.SimpleInterest(debt.PrincipalAmount, debt.InterestRate, int64(roundUp)),
		RoundDownInterest: utils.SimpleInterest(debt.PrincipalAmount, debt.InterestRate, int64(roundDown)),
		LastPaymentDate:   lastPayment,
	}, nil
}

// Validate checks the parameters interest is computed from.
func Validate(debt *domain.Debt) error {
	if !debt.PrincipalAmount.IsPositive() {
		return customError.WrapInvalidDebtParameters(
			fmt.Sprintf("principal amount must be greater than 0, got %s", debt.PrincipalAmount))
	}
	if debt.InterestRate.IsNegative() {
		return customError.WrapInvalidDebtParameters(
			fmt.Sprintf("interest rate must not be negative, got %s", debt.InterestRate))
	}
	return nil
}
