package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Contact, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockContactRepository) List(ctx context.Context, userID uuid.UUID, filter domain.ContactFilter) ([]*domain.Contact, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Contact), args.Int(1), args.Error(2)
}

func (m *MockContactRepository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) Create(ctx context.Context, debt *domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Debt, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) Update(ctx context.Context, debt *domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockDebtRepository) List(ctx context.Context, userID uuid.UUID, filter domain.DebtFilter) ([]*domain.Debt, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Debt), args.Int(1), args.Error(2)
}

func (m *MockDebtRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Debt, error) {
	return m.debts(m.Called(ctx, userID))
}

func (m *MockDebtRepository) ListByContact(ctx context.Context, userID, contactID uuid.UUID) ([]*domain.Debt, error) {
	return m.debts(m.Called(ctx, userID, contactID))
}

func (m *MockDebtRepository) ListCreatedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Debt, error) {
	return m.debts(m.Called(ctx, userID, start, end))
}

func (m *MockDebtRepository) ListActive(ctx context.Context) ([]*domain.Debt, error) {
	return m.debts(m.Called(ctx))
}

func (m *MockDebtRepository) debts(args mock.Arguments) ([]*domain.Debt, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Debt), args.Error(1)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity, debtStatus string) error {
	args := m.Called(ctx, activity, debtStatus)
	return args.Error(0)
}

func (m *MockActivityRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Activity, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) Update(ctx context.Context, activity *domain.Activity, debtStatus string) error {
	args := m.Called(ctx, activity, debtStatus)
	return args.Error(0)
}

func (m *MockActivityRepository) Delete(ctx context.Context, activity *domain.Activity, debtStatus string) error {
	args := m.Called(ctx, activity, debtStatus)
	return args.Error(0)
}

func (m *MockActivityRepository) ListByDebt(ctx context.Context, userID, debtID uuid.UUID) ([]*domain.Activity, error) {
	return m.activities(m.Called(ctx, userID, debtID))
}

func (m *MockActivityRepository) ListInterestByDebts(ctx context.Context, debtIDs []uuid.UUID) ([]*domain.Activity, error) {
	return m.activities(m.Called(ctx, debtIDs))
}

func (m *MockActivityRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ActivityView, error) {
	return m.views(m.Called(ctx, userID, limit))
}

func (m *MockActivityRepository) ListBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.ActivityView, error) {
	return m.views(m.Called(ctx, userID, start, end))
}

func (m *MockActivityRepository) activities(args mock.Arguments) ([]*domain.Activity, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) views(args mock.Arguments) ([]*domain.ActivityView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ActivityView), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) CreateIfMissing(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) Get(ctx context.Context, userID uuid.UUID) (*domain.DashboardSummary, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Bool(1), args.Error(2)
}

func (m *MockSummaryCache) Set(ctx context.Context, userID uuid.UUID, summary *domain.DashboardSummary) error {
	args := m.Called(ctx, userID, summary)
	return args.Error(0)
}

func (m *MockSummaryCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
