// Package service contains the event processing services: the activity
// recorder that materializes goal events into the feed, and the worker pool
// wrapper that fans processing out.
package service

import (
	"context"

	"github.com/fintrack-ledger/internal/domain/shared"
)

// ProcessingService handles one consumed goal event
type ProcessingService interface {
	RecordGoalCompletion(ctx context.Context, event *shared.GoalCompletedEvent) error
}
