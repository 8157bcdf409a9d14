package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segyhp/debt-tracker/internal/metrics"
	"github.com/segyhp/debt-tracker/internal/middleware"
	"github.com/segyhp/debt-tracker/pkg/response"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health       *HealthHandler
	Profile      *ProfileHandler
	Contacts     *ContactHandler
	Debts        *DebtHandler
	Dashboard    *DashboardHandler
	Transactions *TransactionHandler
}

// NewRouter mounts the API under /api/v1 behind auth. Health and metrics
// endpoints are public.
func NewRouter(h Handlers, auth *middleware.Authenticator, m *metrics.Metrics, gatherer prometheus.Gatherer) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Metrics(m))
	// Middleware only wraps matched routes.
	router.NotFoundHandler = middleware.Metrics(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	}))

	// Health check
	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Middleware)

	api.HandleFunc("/profile", h.Profile.Get).Methods(http.MethodGet)
	api.HandleFunc("/profile", h.Profile.Update).Methods(http.MethodPut)
	api.HandleFunc("/profile/currency", h.Profile.UpdateCurrency).Methods(http.MethodPut)

	api.HandleFunc("/contacts", h.Contacts.List).Methods(http.MethodGet)
	api.HandleFunc("/contacts", h.Contacts.Create).Methods(http.MethodPost)
	api.HandleFunc("/contacts/{id}", h.Contacts.Get).Methods(http.MethodGet)
	api.HandleFunc("/contacts/{id}", h.Contacts.Update).Methods(http.MethodPut)
	api.HandleFunc("/contacts/{id}", h.Contacts.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/contacts/{id}/details", h.Contacts.Details).Methods(http.MethodGet)

	api.HandleFunc("/debts", h.Debts.List).Methods(http.MethodGet)
	api.HandleFunc("/debts", h.Debts.Create).Methods(http.MethodPost)
	api.HandleFunc("/debts/{id}", h.Debts.Get).Methods(http.MethodGet)
	api.HandleFunc("/debts/{id}", h.Debts.Update).Methods(http.MethodPut)
	api.HandleFunc("/debts/{id}", h.Debts.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/debts/{id}/accrual", h.Debts.Accrual).Methods(http.MethodGet)
	api.HandleFunc("/debts/{id}/interest-suggestion", h.Debts.InterestSuggestion).Methods(http.MethodGet)
	api.HandleFunc("/debts/{id}/activities", h.Debts.Activities).Methods(http.MethodGet)
	api.HandleFunc("/debts/{id}/activities/interest", h.Debts.AddInterest).Methods(http.MethodPost)
	api.HandleFunc("/debts/{id}/activities/notes", h.Debts.AddNote).Methods(http.MethodPost)
	api.HandleFunc("/debts/{id}/activities/{activityId}", h.Debts.UpdateActivity).Methods(http.MethodPut)
	api.HandleFunc("/debts/{id}/activities/{activityId}", h.Debts.DeleteActivity).Methods(http.MethodDelete)

	api.HandleFunc("/dashboard", h.Dashboard.Summary).Methods(http.MethodGet)
	api.HandleFunc("/transactions", h.Transactions.List).Methods(http.MethodGet)

	return router
}
