package handler

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/segyhp/debt-tracker/pkg/response"
)

type ContactHandler struct {
	service   ContactService
	validator *validator.Validate
}

func NewContactHandler(service ContactService, v *validator.Validate) *ContactHandler {
	return &ContactHandler{
		service:   service,
		validator: v,
	}
}

// List handles GET /contacts?search=&sort=&order=&page=&page_size=
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, err := h.service.List(r.Context(), userID, domain.ContactFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Sort:   sortFromQuery(q),
		Page:   pageFromQuery(q),
	})
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, page)
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.ContactRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	contact, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, contact)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	contact, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, contact)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req domain.ContactRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	contact, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, contact)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Details handles GET /contacts/{id}/details: the contact, its debts and totals.
func (h *ContactHandler) Details(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	details, err := h.service.Details(r.Context(), userID, id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, details)
}
