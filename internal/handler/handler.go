package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/segyhp/debt-tracker/internal/accrual"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/segyhp/debt-tracker/internal/middleware"
	"github.com/segyhp/debt-tracker/internal/service"
	customError "github.com/segyhp/debt-tracker/pkg/errors"
	"github.com/segyhp/debt-tracker/pkg/response"

	"github.com/shopspring/decimal"
)

type ContactService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.ContactRequest) (*domain.Contact, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Contact, error)
	Update(ctx context.Context, userID, id uuid.UUID, req *domain.ContactRequest) (*domain.Contact, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter domain.ContactFilter) (*domain.ContactPage, error)
	Details(ctx context.Context, userID, id uuid.UUID) (*domain.ContactDetails, error)
}

type DebtService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateDebtRequest) (*domain.Debt, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Debt, error)
	Update(ctx context.Context, userID, id uuid.UUID, req *domain.UpdateDebtRequest) (*domain.Debt, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter domain.DebtFilter) (*domain.DebtPage, error)
	Activities(ctx context.Context, userID, debtID uuid.UUID) ([]*domain.Activity, error)
	AddInterest(ctx context.Context, userID, debtID uuid.UUID, req *domain.InterestActivityRequest) (*domain.Activity, error)
	AddNote(ctx context.Context, userID, debtID uuid.UUID, req *domain.NoteActivityRequest) (*domain.Activity, error)
	UpdateActivity(ctx context.Context, userID, debtID, activityID uuid.UUID, req *domain.UpdateActivityRequest) (*domain.Activity, error)
	DeleteActivity(ctx context.Context, userID, debtID, activityID uuid.UUID) error
	SuggestedInterest(ctx context.Context, userID, debtID uuid.UUID, months int) (decimal.Decimal, error)
	Accrual(ctx context.Context, userID, debtID uuid.UUID, policy accrual.Policy) (*service.AccrualReport, error)
}

type DashboardService interface {
	Summary(ctx context.Context, userID uuid.UUID) (*domain.DashboardSummary, error)
}

type TransactionService interface {
	List(ctx context.Context, userID uuid.UUID, q domain.TransactionQuery) (*domain.TransactionPage, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, req *domain.UpdateProfileRequest) (*domain.Profile, error)
	UpdateCurrency(ctx context.Context, userID uuid.UUID, code string) (*domain.Profile, error)
}

// currentUser returns the authenticated user or writes a 401.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "missing user")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the named mux variable as a uuid or writes a 400.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "Invalid "+name, customError.WrapValidation(err))
		return uuid.Nil, false
	}
	return id, true
}

// decode reads a JSON body into dst and validates it, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", customError.WrapValidation(err))
		return false
	}
	if err := v.Struct(dst); err != nil {
		response.BadRequest(w, "Validation failed", customError.WrapValidation(err))
		return false
	}
	return true
}

func pageFromQuery(q url.Values) domain.Page {
	number, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))
	return domain.Page{Number: number, Size: size}.Normalize()
}

func sortFromQuery(q url.Values) domain.Sort {
	return domain.Sort{
		Key:       q.Get("sort"),
		Ascending: domain.ParseSortDirection(q.Get("order"), false),
	}
}

// listParam accepts repeated and comma separated values: ?type=a&type=b or ?type=a,b.
func listParam(q url.Values, key string) []string {
	var values []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}
