package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}

func q(s string) string {
	return regexp.QuoteMeta(s)
}

var (
	contactCols = []string{"id", "user_id", "name", "referral_name", "address", "phone", "created_at", "updated_at"}
	debtCols    = []string{"id", "user_id", "contact_id", "contact_name", "principal_amount", "interest_rate",
		"debt_date", "type", "status", "notes", "created_at", "updated_at"}
	activityCols = []string{"id", "debt_id", "user_id", "activity_type", "amount", "activity_date", "notes",
		"months", "closing_debt", "created_at", "updated_at"}
)

func TestContactRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactRepository(db)
	userID, id := uuid.New(), uuid.New()
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q("FROM contacts WHERE id = $1 AND user_id = $2")).
		WithArgs(id, userID).
		WillReturnRows(sqlmock.NewRows(contactCols).
			AddRow(id.String(), userID.String(), "Alice", "Bob", nil, "555-0100", ts, ts))

	contact, err := repo.GetByID(context.Background(), userID, id)

	require.NoError(t, err)
	assert.Equal(t, id, contact.ID)
	assert.Equal(t, "Alice", contact.Name)
	require.NotNil(t, contact.ReferralName)
	assert.Equal(t, "Bob", *contact.ReferralName)
	assert.Nil(t, contact.Address)
}

func TestContactRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectQuery(q("FROM contacts WHERE id = $1")).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContactRepository_List_SearchAndPaging(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactRepository(db)
	userID := uuid.New()
	ts := time.Now()

	mock.ExpectQuery(q("SELECT COUNT(*) FROM contacts WHERE user_id = $1 AND (name ILIKE $2")).
		WithArgs(userID, "%ali%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(q("ORDER BY created_at DESC LIMIT $3 OFFSET $4")).
		WithArgs(userID, "%ali%", 5, 5).
		WillReturnRows(sqlmock.NewRows(contactCols).
			AddRow(uuid.NewString(), userID.String(), "Alicia", nil, nil, nil, ts, ts))

	contacts, total, err := repo.List(context.Background(), userID, domain.ContactFilter{
		Search: "ali",
		Sort:   domain.Sort{Key: "created_at"},
		Page:   domain.Page{Number: 2, Size: 5},
	})

	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Alicia", contacts[0].Name)
}

func TestContactRepository_List_UnknownSortFallsBackToName(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactRepository(db)
	userID := uuid.New()

	mock.ExpectQuery(q("SELECT COUNT(*) FROM contacts WHERE user_id = $1")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(q("ORDER BY name ASC LIMIT $2 OFFSET $3")).
		WithArgs(userID, domain.DefaultPageSize, 0).
		WillReturnRows(sqlmock.NewRows(contactCols))

	contacts, total, err := repo.List(context.Background(), userID, domain.ContactFilter{
		Sort: domain.Sort{Key: "id; DROP TABLE contacts", Ascending: true},
	})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

func TestContactRepository_Update_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectExec(q("UPDATE contacts")).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Contact{ID: uuid.New(), UserID: uuid.New(), Name: "x"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDebtRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDebtRepository(db)
	userID, id, contactID := uuid.New(), uuid.New(), uuid.New()
	ts := time.Now()

	mock.ExpectQuery(q("JOIN contacts c ON c.id = d.contact_id")).
		WithArgs(id, userID).
		WillReturnRows(sqlmock.NewRows(debtCols).AddRow(
			id.String(), userID.String(), contactID.String(), "Alice", "1000.00", "2.5",
			time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), domain.DebtTypeOweMe, domain.DebtStatusActive, nil, ts, ts))

	debt, err := repo.GetByID(context.Background(), userID, id)

	require.NoError(t, err)
	assert.Equal(t, "Alice", debt.ContactName)
	assert.True(t, debt.PrincipalAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, debt.InterestRate.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, contactID, debt.ContactID)
	assert.True(t, debt.IsActive())
}

func TestDebtRepository_List_Filters(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDebtRepository(db)
	userID, contactID := uuid.New(), uuid.New()
	types := []string{domain.DebtTypeIOwe}
	statuses := []string{domain.DebtStatusActive, domain.DebtStatusCompleted}

	mock.ExpectQuery(q("SELECT COUNT(*) FROM debts d WHERE d.user_id = $1 AND d.type = ANY($2) AND d.status = ANY($3) AND d.contact_id = $4")).
		WithArgs(userID, pq.Array(types), pq.Array(statuses), contactID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(q("ORDER BY c.name ASC, d.id LIMIT $5 OFFSET $6")).
		WithArgs(userID, pq.Array(types), pq.Array(statuses), contactID, 10, 0).
		WillReturnRows(sqlmock.NewRows(debtCols))

	_, total, err := repo.List(context.Background(), userID, domain.DebtFilter{
		Types:     types,
		Statuses:  statuses,
		ContactID: &contactID,
		Sort:      domain.Sort{Key: "contact_name", Ascending: true},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestDebtRepository_List_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDebtRepository(db)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM debts d")).WillReturnError(errors.New("connection reset"))

	_, _, err := repo.List(context.Background(), uuid.New(), domain.DebtFilter{})

	assert.EqualError(t, err, "connection reset")
}

func TestDebtRepository_ListActive(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDebtRepository(db)

	mock.ExpectQuery(q("WHERE d.status = $1")).
		WithArgs(domain.DebtStatusActive).
		WillReturnRows(sqlmock.NewRows(debtCols))

	debts, err := repo.ListActive(context.Background())

	require.NoError(t, err)
	assert.Empty(t, debts)
}

func TestDebtRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDebtRepository(db)
	userID, id := uuid.New(), uuid.New()

	mock.ExpectExec(q("DELETE FROM debts WHERE id = $1 AND user_id = $2")).
		WithArgs(id, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), userID, id))
}

func newActivity() *domain.Activity {
	months := 2
	return &domain.Activity{
		ID:           uuid.New(),
		DebtID:       uuid.New(),
		UserID:       uuid.New(),
		ActivityType: domain.ActivityTypeInterest,
		Amount:       decimal.NewFromInt(40),
		ActivityDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Months:       &months,
		ClosingDebt:  true,
	}
}

func TestActivityRepository_Create_UpdatesDebtStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewActivityRepository(db)
	a := newActivity()

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO debt_activities")).
		WithArgs(a.ID, a.DebtID, a.UserID, a.ActivityType, a.Amount, a.ActivityDate, a.Notes, a.Months,
			a.ClosingDebt, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("UPDATE debts SET status = $3")).
		WithArgs(a.DebtID, a.UserID, domain.DebtStatusCompleted, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Create(context.Background(), a, domain.DebtStatusCompleted))
}

func TestActivityRepository_Create_LeavesDebtAlone(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewActivityRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO debt_activities")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Create(context.Background(), newActivity(), ""))
}

func TestActivityRepository_Delete_RollsBackWhenMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewActivityRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM debt_activities")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), newActivity(), domain.DebtStatusActive)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityRepository_Update_RollsBackOnStatusFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewActivityRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(q("UPDATE debt_activities")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("UPDATE debts SET status")).WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), newActivity(), domain.DebtStatusActive)

	assert.EqualError(t, err, "deadlock")
}

func TestActivityRepository_ListByDebt(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewActivityRepository(db)
	userID, debtID := uuid.New(), uuid.New()
	ts := time.Now()

	mock.ExpectQuery(q("ORDER BY activity_date DESC, created_at DESC")).
		WithArgs(debtID, userID).
		WillReturnRows(sqlmock.NewRows(activityCols).
			AddRow(uuid.NewString(), debtID.String(), userID.String(), "Interest", "40.00",
				time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), nil, int64(2), false, ts, ts).
			AddRow(uuid.NewString(), debtID.String(), userID.String(), "Note", "0",
				time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "called", nil, false, ts, ts))

	activities, err := repo.ListByDebt(context.Background(), userID, debtID)

	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, 2, activities[0].MonthsPaid())
	assert.Nil(t, activities[1].Months)
	require.NotNil(t, activities[1].Notes)
	assert.Equal(t, "called", *activities[1].Notes)
}

func TestActivityRepository_ListInterestByDebts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewActivityRepository(db)

	activities, err := repo.ListInterestByDebts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, activities)

	mock.ExpectQuery(q("WHERE debt_id = ANY($1::uuid[]) AND activity_type = $2")).
		WithArgs(sqlmock.AnyArg(), domain.ActivityTypeInterest).
		WillReturnRows(sqlmock.NewRows(activityCols))

	activities, err = repo.ListInterestByDebts(context.Background(), []uuid.UUID{uuid.New(), uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestActivityRepository_ListRecent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewActivityRepository(db)
	userID := uuid.New()
	ts := time.Now()

	cols := append(append([]string{}, activityCols...), "debt_type", "contact_name")
	mock.ExpectQuery(q("LIMIT $2")).
		WithArgs(userID, 5).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(uuid.NewString(), uuid.NewString(), userID.String(), "Interest", "20",
				ts, nil, int64(1), false, ts, ts, domain.DebtTypeIOwe, "Bob"))

	views, err := repo.ListRecent(context.Background(), userID, 5)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Bob", views[0].ContactName)
	assert.Equal(t, domain.DebtTypeIOwe, views[0].DebtType)
	assert.True(t, views[0].IsInterest())
}

func TestProfileRepository_CreateIfMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)
	p := &domain.Profile{ID: uuid.New(), CurrencyPreference: "USD"}

	mock.ExpectExec(q("ON CONFLICT (id) DO NOTHING")).
		WithArgs(p.ID, "", "", "USD", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.CreateIfMissing(context.Background(), p))
}

func TestProfileRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(q("FROM profiles")).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrNotFound)
}
