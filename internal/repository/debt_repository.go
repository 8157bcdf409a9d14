package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const debtSelect = `
	SELECT d.id, d.user_id, d.contact_id, c.name AS contact_name, d.principal_amount,
		d.interest_rate, d.debt_date, d.type, d.status, d.notes, d.created_at, d.updated_at
	FROM debts d
	JOIN contacts c ON c.id = d.contact_id
`

type debtRepository struct {
	db *sqlx.DB
}

func NewDebtRepository(db *sqlx.DB) DebtRepository {
	return &debtRepository{db: db}
}

func (r *debtRepository) Create(ctx context.Context, debt *domain.Debt) error {
	query := `
		INSERT INTO debts (id, user_id, contact_id, principal_amount, interest_rate, debt_date, type, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		debt.ID,
		debt.UserID,
		debt.ContactID,
		debt.PrincipalAmount,
		debt.InterestRate,
		debt.DebtDate,
		debt.Type,
		debt.Status,
		debt.Notes,
		debt.CreatedAt,
		debt.UpdatedAt,
	)

	return err
}

func (r *debtRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Debt, error) {
	query := debtSelect + `WHERE d.id = $1 AND d.user_id = $2`

	var debt domain.Debt
	if err := r.db.GetContext(ctx, &debt, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &debt, nil
}

func (r *debtRepository) Update(ctx context.Context, debt *domain.Debt) error {
	query := `
		UPDATE debts
		SET contact_id = $3, principal_amount = $4, interest_rate = $5, debt_date = $6,
			type = $7, status = $8, notes = $9, updated_at = $10
		WHERE id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query,
		debt.ID,
		debt.UserID,
		debt.ContactID,
		debt.PrincipalAmount,
		debt.InterestRate,
		debt.DebtDate,
		debt.Type,
		debt.Status,
		debt.Notes,
		debt.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (r *debtRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM debts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (r *debtRepository) List(ctx context.Context, userID uuid.UUID, filter domain.DebtFilter) ([]*domain.Debt, int, error) {
	where := `WHERE d.user_id = $1`
	args := []any{userID}
	if len(filter.Types) > 0 {
		args = append(args, pq.Array(filter.Types))
		where += fmt.Sprintf(` AND d.type = ANY($%d)`, len(args))
	}
	if len(filter.Statuses) > 0 {
		args = append(args, pq.Array(filter.Statuses))
		where += fmt.Sprintf(` AND d.status = ANY($%d)`, len(args))
	}
	if filter.ContactID != nil {
		args = append(args, *filter.ContactID)
		where += fmt.Sprintf(` AND d.contact_id = $%d`, len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM debts d ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	page := filter.Page.Normalize()
	query := fmt.Sprintf(`%s%s ORDER BY %s, d.id LIMIT $%d OFFSET $%d`,
		debtSelect, where,
		filter.Sort.OrderBy(domain.DebtSortColumns, "d.debt_date"),
		len(args)+1, len(args)+2,
	)
	args = append(args, page.Size, page.Offset())

	debts := []*domain.Debt{}
	if err := r.db.SelectContext(ctx, &debts, query, args...); err != nil {
		return nil, 0, err
	}

	return debts, total, nil
}

func (r *debtRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Debt, error) {
	return r.selectDebts(ctx, debtSelect+`WHERE d.user_id = $1 ORDER BY d.created_at DESC`, userID)
}

func (r *debtRepository) ListByContact(ctx context.Context, userID, contactID uuid.UUID) ([]*domain.Debt, error) {
	query := debtSelect + `WHERE d.user_id = $1 AND d.contact_id = $2 ORDER BY d.debt_date DESC`
	return r.selectDebts(ctx, query, userID, contactID)
}

func (r *debtRepository) ListCreatedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Debt, error) {
	query := debtSelect + `WHERE d.user_id = $1 AND d.created_at >= $2 AND d.created_at < $3 ORDER BY d.created_at DESC`
	return r.selectDebts(ctx, query, userID, start, end)
}

func (r *debtRepository) ListActive(ctx context.Context) ([]*domain.Debt, error) {
	query := debtSelect + `WHERE d.status = $1 ORDER BY d.user_id, d.debt_date`
	return r.selectDebts(ctx, query, domain.DebtStatusActive)
}

func (r *debtRepository) selectDebts(ctx context.Context, query string, args ...any) ([]*domain.Debt, error) {
	debts := []*domain.Debt{}
	if err := r.db.SelectContext(ctx, &debts, query, args...); err != nil {
		return nil, err
	}
	return debts, nil
}
