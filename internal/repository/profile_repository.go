package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT id, name, email, currency_preference, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var profile domain.Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) CreateIfMissing(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, name, email, currency_preference, created_at, updated_at)
		VALUES (:id, :name, :email, :currency_preference, :created_at, :updated_at)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.NamedExecContext(ctx, query, profile)
	return err
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET name = $2, email = $3, currency_preference = $4, updated_at = $5
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Name,
		profile.Email,
		profile.CurrencyPreference,
		profile.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return requireAffected(res)
}
