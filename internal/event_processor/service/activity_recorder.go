package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/activity"
	"github.com/fintrack-ledger/internal/domain/shared"
)

// ActivityRecorder materializes goal-completed events into the MongoDB
// activity feed.
type ActivityRecorder struct {
	entries activity.Repository
	logger  *slog.Logger
}

// NewActivityRecorder creates a new recorder
func NewActivityRecorder(logger *slog.Logger, entries activity.Repository) *ActivityRecorder {
	return &ActivityRecorder{
		entries: entries,
		logger:  logger,
	}
}

// RecordGoalCompletion writes the feed entry for a goal-completed event.
// A redelivered event hits the unique event id index and is treated as done.
func (s *ActivityRecorder) RecordGoalCompletion(ctx context.Context, event *shared.GoalCompletedEvent) error {
	logger := s.logger
	if event.CorrelationID != "" {
		logger = s.logger.With("correlation_id", event.CorrelationID)
	}

	entry := &activity.Entry{
		EventID:    event.EventID,
		UserID:     event.UserID,
		Kind:       shared.ActivityGoalCompleted,
		Title:      "Goal achieved: " + event.GoalTitle,
		Detail:     fmt.Sprintf("Saved %d of %d", event.CurrentAmount, event.TargetAmount),
		Points:     event.Points,
		OccurredAt: event.CompletedAt,
	}

	if err := s.entries.Insert(ctx, entry); err != nil {
		var duplicate activity.ErrDuplicateEntry
		if errors.As(err, &duplicate) {
			logger.Info("Activity entry already recorded, skipping", "event_id", event.EventID)
			return nil
		}
		return fmt.Errorf("failed to record goal completion %s: %w", event.EventID, err)
	}

	logger.Info("Recorded goal completion in activity feed", "event_id", event.EventID, "user_id", event.UserID, "goal_id", event.GoalID)
	return nil
}
