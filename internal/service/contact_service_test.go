package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/segyhp/debt-tracker/internal/mocks"
	"github.com/segyhp/debt-tracker/internal/repository"
	customError "github.com/segyhp/debt-tracker/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newContactService() (*ContactService, *mocks.MockContactRepository, *mocks.MockDebtRepository, *mocks.MockSummaryCache) {
	contacts := &mocks.MockContactRepository{}
	debts := &mocks.MockDebtRepository{}
	summaries := &mocks.MockSummaryCache{}
	svc := NewContactService(contacts, debts, summaries)
	svc.Now = fixedClock(date(2024, 5, 1))
	return svc, contacts, debts, summaries
}

func TestContactService_Create(t *testing.T) {
	svc, contacts, _, summaries := newContactService()
	userID := uuid.New()

	contacts.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Contact) bool {
		return c.UserID == userID && c.Name == "Alice" && *c.Phone == "555" && c.CreatedAt.Equal(date(2024, 5, 1))
	})).Return(nil)
	summaries.On("Invalidate", mock.Anything, userID).Return(nil)

	contact, err := svc.Create(context.Background(), userID, &domain.ContactRequest{Name: "Alice", Phone: strPtr("555")})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, contact.ID)
	contacts.AssertExpectations(t)
	summaries.AssertExpectations(t)
}

func TestContactService_Create_CacheFailureIsIgnored(t *testing.T) {
	svc, contacts, _, summaries := newContactService()
	userID := uuid.New()

	contacts.On("Create", mock.Anything, mock.Anything).Return(nil)
	summaries.On("Invalidate", mock.Anything, userID).Return(customError.WrapCacheError(errors.New("down")))

	_, err := svc.Create(context.Background(), userID, &domain.ContactRequest{Name: "Alice"})

	assert.NoError(t, err)
}

func TestContactService_Get_Errors(t *testing.T) {
	svc, contacts, _, _ := newContactService()
	userID, missing, broken := uuid.New(), uuid.New(), uuid.New()

	contacts.On("GetByID", mock.Anything, userID, missing).Return(nil, repository.ErrNotFound)
	contacts.On("GetByID", mock.Anything, userID, broken).Return(nil, errors.New("conn refused"))

	_, err := svc.Get(context.Background(), userID, missing)
	assert.Equal(t, customError.ErrCodeContactNotFound, customError.Code(err))
	assert.ErrorIs(t, err, customError.ErrContactNotFound)

	_, err = svc.Get(context.Background(), userID, broken)
	assert.Equal(t, customError.ErrCodeDatabaseError, customError.Code(err))
}

func TestContactService_Update(t *testing.T) {
	svc, contacts, _, summaries := newContactService()
	userID := uuid.New()
	existing := &domain.Contact{ID: uuid.New(), UserID: userID, Name: "Old", Address: strPtr("somewhere")}

	contacts.On("GetByID", mock.Anything, userID, existing.ID).Return(existing, nil)
	contacts.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Contact) bool {
		return c.Name == "New" && c.Address == nil
	})).Return(nil)
	summaries.On("Invalidate", mock.Anything, userID).Return(nil)

	contact, err := svc.Update(context.Background(), userID, existing.ID, &domain.ContactRequest{Name: "New"})

	require.NoError(t, err)
	assert.Equal(t, "New", contact.Name)
	contacts.AssertExpectations(t)
}

func TestContactService_Delete_NotFound(t *testing.T) {
	svc, contacts, _, summaries := newContactService()
	userID, id := uuid.New(), uuid.New()

	contacts.On("Delete", mock.Anything, userID, id).Return(repository.ErrNotFound)

	err := svc.Delete(context.Background(), userID, id)

	assert.Equal(t, customError.ErrCodeContactNotFound, customError.Code(err))
	summaries.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestContactService_List_NormalizesPage(t *testing.T) {
	svc, contacts, _, _ := newContactService()
	userID := uuid.New()

	contacts.On("List", mock.Anything, userID, domain.ContactFilter{
		Search: "bo",
		Page:   domain.Page{Number: 1, Size: domain.MaxPageSize},
	}).Return([]*domain.Contact{{Name: "Bob"}}, 1, nil)

	page, err := svc.List(context.Background(), userID, domain.ContactFilter{
		Search: "bo",
		Page:   domain.Page{Number: 0, Size: 1000},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, domain.MaxPageSize, page.PageSize)
	assert.Equal(t, 1, page.TotalCount)
}

func TestContactService_Details(t *testing.T) {
	svc, contacts, debts, _ := newContactService()
	userID := uuid.New()
	contact := &domain.Contact{ID: uuid.New(), UserID: userID, Name: "Alice"}

	contacts.On("GetByID", mock.Anything, userID, contact.ID).Return(contact, nil)
	debts.On("ListByContact", mock.Anything, userID, contact.ID).Return([]*domain.Debt{
		testDebt(userID, domain.DebtTypeOweMe, domain.DebtStatusActive, "1000", "2", date(2024, 1, 1)),
		testDebt(userID, domain.DebtTypeOweMe, domain.DebtStatusCompleted, "250.50", "1", date(2023, 1, 1)),
		testDebt(userID, domain.DebtTypeIOwe, domain.DebtStatusActive, "300", "0", date(2024, 2, 1)),
	}, nil)

	details, err := svc.Details(context.Background(), userID, contact.ID)

	require.NoError(t, err)
	assert.Equal(t, contact, details.Contact)
	assert.Len(t, details.Debts, 3)
	assert.True(t, details.TotalOwed.Equal(decimal.RequireFromString("1250.50")))
	assert.True(t, details.TotalOwing.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 2, details.ActiveDebts)
}
