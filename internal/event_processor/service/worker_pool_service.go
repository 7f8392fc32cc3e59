package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fintrack-ledger/internal/domain/shared"
	"github.com/panjf2000/ants/v2"
)

// WorkerPoolProcessingService fans event processing out over an ants pool
// while keeping the consumer's at-least-once contract: the caller still
// blocks on the worker's result so offsets only commit after success.
type WorkerPoolProcessingService struct {
	baseService ProcessingService
	pool        *ants.Pool
	logger      *slog.Logger
	mu          sync.Mutex
	results     map[string]chan error
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolProcessingService(
	baseService ProcessingService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolProcessingService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolProcessingService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
		results:     make(map[string]chan error),
	}, nil
}

// RecordGoalCompletion submits the event to the worker pool and waits for
// the outcome.
func (s *WorkerPoolProcessingService) RecordGoalCompletion(ctx context.Context, event *shared.GoalCompletedEvent) error {
	logger := s.logger
	if event.CorrelationID != "" {
		logger = s.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Debug("Submitting goal event to worker pool", "event_id", event.EventID, "goal_id", event.GoalID)

	resultChan := make(chan error, 1)
	eventID := event.EventID.String()
	s.mu.Lock()
	s.results[eventID] = resultChan
	s.mu.Unlock()

	eventCopy := *event

	err := s.pool.Submit(func() {
		err := s.baseService.RecordGoalCompletion(ctx, &eventCopy)

		resultChan <- err

		s.mu.Lock()
		delete(s.results, eventID)
		close(resultChan)
		s.mu.Unlock()
	})
	if err != nil {
		s.mu.Lock()
		delete(s.results, eventID)
		close(resultChan)
		s.mu.Unlock()

		logger.Error("Failed to submit goal event to worker pool", "event_id", eventID, "error", err)
		return err
	}

	return <-resultChan
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolProcessingService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolProcessingService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolProcessingService) Capacity() int {
	return s.pool.Cap()
}
