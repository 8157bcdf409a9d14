package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/segyhp/debt-tracker/pkg/response"

	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	redis   *redis.Client
	timeout time.Duration
}

// NewHealthHandler checks db and, when non-nil, redis. Each check gets its
// own timeout.
func NewHealthHandler(db Pinger, redis *redis.Client, timeout time.Duration) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redis,
		timeout: timeout,
	}
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health performs a basic liveness check
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    map[string]string{},
	})
}

// Ready performs readiness check including database and redis connectivity
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	h.check(r.Context(), &status, "database", h.db.PingContext)
	if h.redis != nil {
		h.check(r.Context(), &status, "redis", func(ctx context.Context) error {
			return h.redis.Ping(ctx).Err()
		})
	}

	if status.Status == "error" {
		response.JSON(w, http.StatusServiceUnavailable, status)
		return
	}

	response.Success(w, status)
}

func (h *HealthHandler) check(parent context.Context, status *HealthStatus, name string, ping func(context.Context) error) {
	ctx, cancel := context.WithTimeout(parent, h.timeout)
	defer cancel()

	if err := ping(ctx); err != nil {
		status.Status = "error"
		status.Checks[name] = "failed: " + err.Error()
		return
	}
	status.Checks[name] = "ok"
}
