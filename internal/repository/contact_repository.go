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
)

const contactColumns = `id, user_id, name, referral_name, address, phone, created_at, updated_at`

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	query := `
		INSERT INTO contacts (id, user_id, name, referral_name, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		contact.ID,
		contact.UserID,
		contact.Name,
		contact.ReferralName,
		contact.Address,
		contact.Phone,
		contact.CreatedAt,
		contact.UpdatedAt,
	)

	return err
}

func (r *contactRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND user_id = $2`

	var contact domain.Contact
	if err := r.db.GetContext(ctx, &contact, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &contact, nil
}

func (r *contactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	query := `
		UPDATE contacts
		SET name = $3, referral_name = $4, address = $5, phone = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query,
		contact.ID,
		contact.UserID,
		contact.Name,
		contact.ReferralName,
		contact.Address,
		contact.Phone,
		contact.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (r *contactRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (r *contactRepository) List(ctx context.Context, userID uuid.UUID, filter domain.ContactFilter) ([]*domain.Contact, int, error) {
	where := `WHERE user_id = $1`
	args := []any{userID}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += ` AND (name ILIKE $2 OR referral_name ILIKE $2 OR address ILIKE $2 OR phone ILIKE $2)`
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contacts `+where, args...); err != nil {
		return nil, 0, err
	}

	page := filter.Page.Normalize()
	query := fmt.Sprintf(`SELECT %s FROM contacts %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		contactColumns, where,
		filter.Sort.OrderBy(domain.ContactSortColumns, "name"),
		len(args)+1, len(args)+2,
	)
	args = append(args, page.Size, page.Offset())

	contacts := []*domain.Contact{}
	if err := r.db.SelectContext(ctx, &contacts, query, args...); err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

func (r *contactRepository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contacts WHERE user_id = $1`, userID)
	return total, err
}

// requireAffected turns a write that matched no rows into ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}
