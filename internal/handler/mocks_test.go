package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/accrual"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/segyhp/debt-tracker/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockContactService struct {
	mock.Mock
}

func (m *mockContactService) Create(ctx context.Context, userID uuid.UUID, req *domain.ContactRequest) (*domain.Contact, error) {
	args := m.Called(ctx, userID, req)
	return contactOrNil(args.Get(0)), args.Error(1)
}

func (m *mockContactService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Contact, error) {
	args := m.Called(ctx, userID, id)
	return contactOrNil(args.Get(0)), args.Error(1)
}

func (m *mockContactService) Update(ctx context.Context, userID, id uuid.UUID, req *domain.ContactRequest) (*domain.Contact, error) {
	args := m.Called(ctx, userID, id, req)
	return contactOrNil(args.Get(0)), args.Error(1)
}

func (m *mockContactService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockContactService) List(ctx context.Context, userID uuid.UUID, filter domain.ContactFilter) (*domain.ContactPage, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactPage), args.Error(1)
}

func (m *mockContactService) Details(ctx context.Context, userID, id uuid.UUID) (*domain.ContactDetails, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactDetails), args.Error(1)
}

func contactOrNil(v interface{}) *domain.Contact {
	if v == nil {
		return nil
	}
	return v.(*domain.Contact)
}

type mockDebtService struct {
	mock.Mock
}

func (m *mockDebtService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateDebtRequest) (*domain.Debt, error) {
	args := m.Called(ctx, userID, req)
	return debtOrNil(args.Get(0)), args.Error(1)
}

func (m *mockDebtService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Debt, error) {
	args := m.Called(ctx, userID, id)
	return debtOrNil(args.Get(0)), args.Error(1)
}

func (m *mockDebtService) Update(ctx context.Context, userID, id uuid.UUID, req *domain.UpdateDebtRequest) (*domain.Debt, error) {
	args := m.Called(ctx, userID, id, req)
	return debtOrNil(args.Get(0)), args.Error(1)
}

func (m *mockDebtService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockDebtService) List(ctx context.Context, userID uuid.UUID, filter domain.DebtFilter) (*domain.DebtPage, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtPage), args.Error(1)
}

func (m *mockDebtService) Activities(ctx context.Context, userID, debtID uuid.UUID) ([]*domain.Activity, error) {
	args := m.Called(ctx, userID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Activity), args.Error(1)
}

func (m *mockDebtService) AddInterest(ctx context.Context, userID, debtID uuid.UUID, req *domain.InterestActivityRequest) (*domain.Activity, error) {
	args := m.Called(ctx, userID, debtID, req)
	return activityOrNil(args.Get(0)), args.Error(1)
}

func (m *mockDebtService) AddNote(ctx context.Context, userID, debtID uuid.UUID, req *domain.NoteActivityRequest) (*domain.Activity, error) {
	args := m.Called(ctx, userID, debtID, req)
	return activityOrNil(args.Get(0)), args.Error(1)
}

func (m *mockDebtService) UpdateActivity(ctx context.Context, userID, debtID, activityID uuid.UUID, req *domain.UpdateActivityRequest) (*domain.Activity, error) {
	args := m.Called(ctx, userID, debtID, activityID, req)
	return activityOrNil(args.Get(0)), args.Error(1)
}

func (m *mockDebtService) DeleteActivity(ctx context.Context, userID, debtID, activityID uuid.UUID) error {
	return m.Called(ctx, userID, debtID, activityID).Error(0)
}

func (m *mockDebtService) SuggestedInterest(ctx context.Context, userID, debtID uuid.UUID, months int) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, debtID, months)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockDebtService) Accrual(ctx context.Context, userID, debtID uuid.UUID, policy accrual.Policy) (*service.AccrualReport, error) {
	args := m.Called(ctx, userID, debtID, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AccrualReport), args.Error(1)
}

func debtOrNil(v interface{}) *domain.Debt {
	if v == nil {
		return nil
	}
	return v.(*domain.Debt)
}

func activityOrNil(v interface{}) *domain.Activity {
	if v == nil {
		return nil
	}
	return v.(*domain.Activity)
}

type mockDashboardService struct {
	mock.Mock
}

func (m *mockDashboardService) Summary(ctx context.Context, userID uuid.UUID) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) List(ctx context.Context, userID uuid.UUID, q domain.TransactionQuery) (*domain.TransactionPage, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionPage), args.Error(1)
}

type mockProfileService struct {
	mock.Mock
}

func (m *mockProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	return profileOrNil(args.Get(0)), args.Error(1)
}

func (m *mockProfileService) Update(ctx context.Context, userID uuid.UUID, req *domain.UpdateProfileRequest) (*domain.Profile, error) {
	args := m.Called(ctx, userID, req)
	return profileOrNil(args.Get(0)), args.Error(1)
}

func (m *mockProfileService) UpdateCurrency(ctx context.Context, userID uuid.UUID, code string) (*domain.Profile, error) {
	args := m.Called(ctx, userID, code)
	return profileOrNil(args.Get(0)), args.Error(1)
}

func profileOrNil(v interface{}) *domain.Profile {
	if v == nil {
		return nil
	}
	return v.(*domain.Profile)
}
