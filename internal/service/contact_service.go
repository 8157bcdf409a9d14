package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/cache"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/segyhp/debt-tracker/internal/repository"
	customError "github.com/segyhp/debt-tracker/pkg/errors"

	"github.com/shopspring/decimal"
)

type ContactService struct {
	contacts repository.ContactRepository
	debts    repository.DebtRepository
	cache    cache.SummaryCache
	Now      Clock
}

func NewContactService(
	contacts repository.ContactRepository,
	debts repository.DebtRepository,
	summaryCache cache.SummaryCache,
) *ContactService {
	return &ContactService{
		contacts: contacts,
		debts:    debts,
		cache:    summaryCache,
		Now:      systemClock,
	}
}

func (s *ContactService) Create(ctx context.Context, userID uuid.UUID, req *domain.ContactRequest) (*domain.Contact, error) {
	now := s.Now()
	contact := &domain.Contact{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         req.Name,
		ReferralName: req.ReferralName,
		Address:      req.Address,
		Phone:        req.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	invalidateSummary(ctx, s.cache, userID)
	return contact, nil
}

func (s *ContactService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err, func() error { return customError.WrapContactNotFound(id.String()) })
	}
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, userID, id uuid.UUID, req *domain.ContactRequest) (*domain.Contact, error) {
	contact, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	contact.Name = req.Name
	contact.ReferralName = req.ReferralName
	contact.Address = req.Address
	contact.Phone = req.Phone
	contact.UpdatedAt = s.Now()

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, mapNotFound(err, func() error { return customError.WrapContactNotFound(id.String()) })
	}

	invalidateSummary(ctx, s.cache, userID)
	return contact, nil
}

// Delete removes the contact together with its debts and their activities.
func (s *ContactService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.contacts.Delete(ctx, userID, id); err != nil {
		return mapNotFound(err, func() error { return customError.WrapContactNotFound(id.String()) })
	}

	invalidateSummary(ctx, s.cache, userID)
	return nil
}

func (s *ContactService) List(ctx context.Context, userID uuid.UUID, filter domain.ContactFilter) (*domain.ContactPage, error) {
	filter.Page = filter.Page.Normalize()

	contacts, total, err := s.contacts.List(ctx, userID, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.ContactPage{
		Contacts:   contacts,
		TotalCount: total,
		Page:       filter.Page.Number,
		PageSize:   filter.Page.Size,
	}, nil
}

// Details returns the contact with its debts. TotalOwed sums the principal of
// "Owe Me" debts and TotalOwing that of "I Owe" debts, whatever their status.
func (s *ContactService) Details(ctx context.Context, userID, id uuid.UUID) (*domain.ContactDetails, error) {
	contact, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	debts, err := s.debts.ListByContact(ctx, userID, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	details := &domain.ContactDetails{
		Contact:    contact,
		Debts:      debts,
		TotalOwed:  decimal.Zero,
		TotalOwing: decimal.Zero,
	}
	for _, d := range debts {
		switch d.Type {
		case domain.DebtTypeOweMe:
			details.TotalOwed = details.TotalOwed.Add(d.PrincipalAmount)
		case domain.DebtTypeIOwe:
			details.TotalOwing = details.TotalOwing.Add(d.PrincipalAmount)
		}
		if d.IsActive() {
			details.ActiveDebts++
		}
	}

	return details, nil
}
