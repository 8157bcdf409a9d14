package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/debt-tracker/internal/cache"
	"github.com/segyhp/debt-tracker/internal/repository"
	customError "github.com/segyhp/debt-tracker/pkg/errors"
	"github.com/segyhp/debt-tracker/pkg/utils"
)

// Clock returns the current time. Services hold one so tests can pin "now".
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// mapNotFound converts repository.ErrNotFound into notFound and anything else
// into a database error.
func mapNotFound(err error, notFound func() error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound()
	}
	return customError.WrapDatabaseError(err)
}

// invalidateSummary drops the cached dashboard; failures are only logged.
func invalidateSummary(ctx context.Context, c cache.SummaryCache, userID uuid.UUID) {
	if err := c.Invalidate(ctx, userID); err != nil {
		slog.WarnContext(ctx, "failed to invalidate dashboard summary", "user_id", userID, "error", err)
	}
}

func parseDate(field, value string) (time.Time, error) {
	t, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, customError.NewBusinessError(customError.ErrCodeValidation,
			field+" must be a date in YYYY-MM-DD format", errors.Join(customError.ErrValidation, err))
	}
	return t, nil
}
