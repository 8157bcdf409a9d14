package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/accrual"
	"github.com/segyhp/debt-tracker/internal/domain"
	customError "github.com/segyhp/debt-tracker/pkg/errors"
	"github.com/segyhp/debt-tracker/pkg/response"

	"github.com/shopspring/decimal"
)

type DebtHandler struct {
	service   DebtService
	validator *validator.Validate
}

func NewDebtHandler(service DebtService, v *validator.Validate) *DebtHandler {
	return &DebtHandler{
		service:   service,
		validator: v,
	}
}

// InterestSuggestion is the amount an interest payment covering Months would be.
type InterestSuggestion struct {
	DebtID uuid.UUID       `json:"debt_id"`
	Months int             `json:"months"`
	Amount decimal.Decimal `json:"amount"`
}

// List handles GET /debts?type=&status=&contact_id=&sort=&order=&page=&page_size=
func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := domain.DebtFilter{
		Types:    listParam(q, "type"),
		Statuses: listParam(q, "status"),
		Sort:     sortFromQuery(q),
		Page:     pageFromQuery(q),
	}
	if raw := q.Get("contact_id"); raw != "" {
		contactID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid contact_id", customError.WrapValidation(err))
			return
		}
		filter.ContactID = &contactID
	}

	page, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, page)
}

func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.CreateDebtRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	debt, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, debt)
}

func (h *DebtHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	debt, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, debt)
}

func (h *DebtHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateDebtRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	debt, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, debt)
}

func (h *DebtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}

// Accrual handles GET /debts/{id}/accrual?policy=since_start|since_last_payment
func (h *DebtHandler) Accrual(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	// Empty leaves the choice to the service's configured default.
	var policy accrual.Policy
	if raw := r.URL.Query().Get("policy"); raw != "" {
		parsed, err := accrual.ParsePolicy(raw)
		if err != nil {
			response.BadRequest(w, "Invalid policy", customError.WrapValidation(err))
			return
		}
		policy = parsed
	}

	report, err := h.service.Accrual(r.Context(), userID, id, policy)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, report)
}

// InterestSuggestion handles GET /debts/{id}/interest-suggestion?months=N
func (h *DebtHandler) InterestSuggestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	months := 1
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid months", customError.WrapValidation(err))
			return
		}
		months = n
	}

	amount, err := h.service.SuggestedInterest(r.Context(), userID, id, months)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, InterestSuggestion{DebtID: id, Months: months, Amount: amount})
}

func (h *DebtHandler) Activities(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	activities, err := h.service.Activities(r.Context(), userID, id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, activities)
}

func (h *DebtHandler) AddInterest(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req domain.InterestActivityRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	activity, err := h.service.AddInterest(r.Context(), userID, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, activity)
}

func (h *DebtHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req domain.NoteActivityRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	activity, err := h.service.AddNote(r.Context(), userID, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, activity)
}

func (h *DebtHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	activityID, ok := pathID(w, r, "activityId")
	if !ok {
		return
	}

	var req domain.UpdateActivityRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	activity, err := h.service.UpdateActivity(r.Context(), userID, id, activityID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, activity)
}

func (h *DebtHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	activityID, ok := pathID(w, r, "activityId")
	if !ok {
		return
	}

	if err := h.service.DeleteActivity(r.Context(), userID, id, activityID); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}
