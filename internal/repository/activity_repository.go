package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const activityColumns = `id, debt_id, user_id, activity_type, amount, activity_date, notes, months, closing_debt, created_at, updated_at`

const activityViewSelect = `
	SELECT a.id, a.debt_id, a.user_id, a.activity_type, a.amount, a.activity_date, a.notes,
		a.months, a.closing_debt, a.created_at, a.updated_at, d.type AS debt_type, c.name AS contact_name
	FROM debt_activities a
	JOIN debts d ON d.id = a.debt_id
	JOIN contacts c ON c.id = d.contact_id
`

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity, debtStatus string) error {
	query := `
		INSERT INTO debt_activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	return r.inTx(ctx, activity, debtStatus, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			activity.ID,
			activity.DebtID,
			activity.UserID,
			activity.ActivityType,
			activity.Amount,
			activity.ActivityDate,
			activity.Notes,
			activity.Months,
			activity.ClosingDebt,
			activity.CreatedAt,
			activity.UpdatedAt,
		)
		return err
	})
}

func (r *activityRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM debt_activities WHERE id = $1 AND user_id = $2`

	var activity domain.Activity
	if err := r.db.GetContext(ctx, &activity, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &activity, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *domain.Activity, debtStatus string) error {
	query := `
		UPDATE debt_activities
		SET amount = $3, activity_date = $4, notes = $5, months = $6, closing_debt = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
	`

	return r.inTx(ctx, activity, debtStatus, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query,
			activity.ID,
			activity.UserID,
			activity.Amount,
			activity.ActivityDate,
			activity.Notes,
			activity.Months,
			activity.ClosingDebt,
			activity.UpdatedAt,
		)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

func (r *activityRepository) Delete(ctx context.Context, activity *domain.Activity, debtStatus string) error {
	return r.inTx(ctx, activity, debtStatus, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM debt_activities WHERE id = $1 AND user_id = $2`,
			activity.ID, activity.UserID)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

func (r *activityRepository) ListByDebt(ctx context.Context, userID, debtID uuid.UUID) ([]*domain.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM debt_activities
		WHERE debt_id = $1 AND user_id = $2
		ORDER BY activity_date DESC, created_at DESC
	`

	activities := []*domain.Activity{}
	if err := r.db.SelectContext(ctx, &activities, query, debtID, userID); err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *activityRepository) ListInterestByDebts(ctx context.Context, debtIDs []uuid.UUID) ([]*domain.Activity, error) {
	activities := []*domain.Activity{}
	if len(debtIDs) == 0 {
		return activities, nil
	}

	ids := make([]string, len(debtIDs))
	for i, id := range debtIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT ` + activityColumns + `
		FROM debt_activities
		WHERE debt_id = ANY($1::uuid[]) AND activity_type = $2
		ORDER BY debt_id, activity_date
	`

	if err := r.db.SelectContext(ctx, &activities, query, pq.Array(ids), domain.ActivityTypeInterest); err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *activityRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ActivityView, error) {
	query := activityViewSelect + `WHERE a.user_id = $1 ORDER BY a.activity_date DESC, a.created_at DESC LIMIT $2`

	views := []*domain.ActivityView{}
	if err := r.db.SelectContext(ctx, &views, query, userID, limit); err != nil {
		return nil, err
	}

	return views, nil
}

func (r *activityRepository) ListBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.ActivityView, error) {
	query := activityViewSelect + `
		WHERE a.user_id = $1 AND a.activity_date >= $2 AND a.activity_date < $3
		ORDER BY a.activity_date DESC, a.created_at DESC
	`

	views := []*domain.ActivityView{}
	if err := r.db.SelectContext(ctx, &views, query, userID, start, end); err != nil {
		return nil, err
	}

	return views, nil
}

// inTx runs write and, when debtStatus is set, moves the owning debt to it.
func (r *activityRepository) inTx(ctx context.Context, activity *domain.Activity, debtStatus string, write func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := write(tx); err != nil {
		return err
	}

	if debtStatus != "" {
		query := `UPDATE debts SET status = $3, updated_at = $4 WHERE id = $1 AND user_id = $2`
		res, err := tx.ExecContext(ctx, query, activity.DebtID, activity.UserID, debtStatus, now())
		if err != nil {
			return err
		}
		if err := requireAffected(res); err != nil {
			return err
		}
	}

	return tx.Commit()
}
