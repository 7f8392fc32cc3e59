package service

import (
	"context"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/activity"
)

const defaultActivityLimit = 20

// ActivityServiceImpl implements the ActivityService interface over the
// MongoDB read model.
type ActivityServiceImpl struct {
	logger  *slog.Logger
	entries activity.Repository
}

// NewActivityService creates a new activity service
func NewActivityService(logger *slog.Logger, entries activity.Repository) ActivityService {
	return &ActivityServiceImpl{
		logger:  logger,
		entries: entries,
	}
}

func (s *ActivityServiceImpl) List(ctx context.Context, userID int64, limit int) ([]*activity.Entry, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.entries.ListByUser(ctx, userID, limit)
}
