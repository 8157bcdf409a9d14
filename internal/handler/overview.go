package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/segyhp/debt-tracker/internal/domain"
	customError "github.com/segyhp/debt-tracker/pkg/errors"
	"github.com/segyhp/debt-tracker/pkg/response"
	"github.com/segyhp/debt-tracker/pkg/utils"
)

type DashboardHandler struct {
	service DashboardService
}

func NewDashboardHandler(service DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, summary)
}

type TransactionHandler struct {
	service TransactionService
}

func NewTransactionHandler(service TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// List handles GET /transactions?range=&start=&end=&search=&sort=&order=&page=&page_size=
// Start and end are YYYY-MM-DD and only read for range=custom.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	query := domain.TransactionQuery{
		Range:  q.Get("range"),
		Search: strings.TrimSpace(q.Get("search")),
		Sort:   sortFromQuery(q),
		Page:   pageFromQuery(q),
	}

	var err error
	if query.Start, err = optionalDate(q.Get("start")); err != nil {
		response.BadRequest(w, "Invalid start date", customError.WrapValidation(err))
		return
	}
	if query.End, err = optionalDate(q.Get("end")); err != nil {
		response.BadRequest(w, "Invalid end date", customError.WrapValidation(err))
		return
	}

	page, err := h.service.List(r.Context(), userID, query)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, page)
}

func optionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
