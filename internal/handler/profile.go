package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/segyhp/debt-tracker/internal/domain"
	"github.com/segyhp/debt-tracker/pkg/response"
)

type ProfileHandler struct {
	service   ProfileService
	validator *validator.Validate
}

func NewProfileHandler(service ProfileService, v *validator.Validate) *ProfileHandler {
	return &ProfileHandler{
		service:   service,
		validator: v,
	}
}

// Get returns the caller's profile, creating it with defaults on first use.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Get(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.UpdateProfileRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	profile, err := h.service.Update(r.Context(), userID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, profile)
}

func (h *ProfileHandler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.UpdateCurrencyRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	profile, err := h.service.UpdateCurrency(r.Context(), userID, req.Code)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, profile)
}
