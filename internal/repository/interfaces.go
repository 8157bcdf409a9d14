package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/domain"
)

// ErrNotFound is returned when a row does not exist or belongs to another user.
var ErrNotFound = errors.New("record not found")

// ContactRepository defines the interface for contact data operations
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error

	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Contact, error)

	Update(ctx context.Context, contact *domain.Contact) error

	// Delete removes a contact and, through the foreign key, its debts
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// List returns one page of contacts and the total matching the filter
	List(ctx context.Context, userID uuid.UUID, filter domain.ContactFilter) ([]*domain.Contact, int, error)

	Count(ctx context.Context, userID uuid.UUID) (int, error)
}

// DebtRepository defines the interface for debt data operations. Reads join the
// contact's name.
type DebtRepository interface {
	Create(ctx context.Context, debt *domain.Debt) error

	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Debt, error)

	Update(ctx context.Context, debt *domain.Debt) error

	Delete(ctx context.Context, userID, id uuid.UUID) error

	// List returns one page of debts and the total matching the filter
	List(ctx context.Context, userID uuid.UUID, filter domain.DebtFilter) ([]*domain.Debt, int, error)

	// ListAll returns every debt of a user, newest first
	ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Debt, error)

	ListByContact(ctx context.Context, userID, contactID uuid.UUID) ([]*domain.Debt, error)

	// ListCreatedBetween returns debts created in [start, end)
	ListCreatedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Debt, error)

	// ListActive returns active debts across all users
	ListActive(ctx context.Context) ([]*domain.Debt, error)
}

// ActivityRepository defines the interface for debt activity data operations.
// Writes take the status the owning debt should have afterwards and apply both
// changes in one transaction; an empty status leaves the debt untouched.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity, debtStatus string) error

	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Activity, error)

	Update(ctx context.Context, activity *domain.Activity, debtStatus string) error

	Delete(ctx context.Context, activity *domain.Activity, debtStatus string) error

	// ListByDebt returns a debt's activities, latest activity date first
	ListByDebt(ctx context.Context, userID, debtID uuid.UUID) ([]*domain.Activity, error)

	// ListInterestByDebts returns the Interest activities of the given debts
	ListInterestByDebts(ctx context.Context, debtIDs []uuid.UUID) ([]*domain.Activity, error)

	// ListRecent returns the latest activities of a user with debt context
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ActivityView, error)

	// ListBetween returns activities dated in [start, end) with debt context
	ListBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.ActivityView, error)
}

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// CreateIfMissing inserts the profile unless one already exists for its ID
	CreateIfMissing(ctx context.Context, profile *domain.Profile) error

	Update(ctx context.Context, profile *domain.Profile) error
}
