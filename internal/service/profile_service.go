package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/segyhp/debt-tracker/internal/repository"
	"github.com/segyhp/debt-tracker/pkg/currency"
	customError "github.com/segyhp/debt-tracker/pkg/errors"
)

// CurrencyResolver yields the formatter for a user's preferred currency.
type CurrencyResolver interface {
	Formatter(ctx context.Context, userID uuid.UUID) (currency.Formatter, error)
}

type ProfileService struct {
	profiles        repository.ProfileRepository
	defaultCurrency currency.Formatter
	Now             Clock
}

func NewProfileService(profiles repository.ProfileRepository, defaultCurrency currency.Formatter) *ProfileService {
	return &ProfileService{
		profiles:        profiles,
		defaultCurrency: defaultCurrency,
		Now:             systemClock,
	}
}

// Get returns the user's profile, creating one with defaults on first access.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, customError.WrapDatabaseError(err)
	}

	now := s.Now()
	fresh := &domain.Profile{
		ID:                 userID,
		CurrencyPreference: s.defaultCurrency.Code(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.profiles.CreateIfMissing(ctx, fresh); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	// Another request may have created it first.
	profile, err = s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return profile, nil
}

func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *domain.UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Name = req.Name
	profile.Email = req.Email
	profile.UpdatedAt = s.Now()

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return profile, nil
}

// UpdateCurrency stores code as the user's currency once it is known to be a
// valid ISO 4217 code.
func (s *ProfileService) UpdateCurrency(ctx context.Context, userID uuid.UUID, code string) (*domain.Profile, error) {
	f, err := currency.NewFormatter(code)
	if err != nil {
		return nil, customError.WrapInvalidCurrency(code, err)
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.CurrencyPreference = f.Code()
	profile.UpdatedAt = s.Now()

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return profile, nil
}

func (s *ProfileService) Formatter(ctx context.Context, userID uuid.UUID) (currency.Formatter, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return currency.Formatter{}, err
	}

	f, err := currency.NewFormatter(profile.CurrencyPreference)
	if err != nil {
		slog.WarnContext(ctx, "stored currency preference is invalid, using default",
			"user_id", userID, "currency", profile.CurrencyPreference)
		return s.defaultCurrency, nil
	}
	return f, nil
}
