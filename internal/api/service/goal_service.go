package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/fintrack-ledger/internal/domain/goal"
	"github.com/fintrack-ledger/internal/ledger"
)

// GoalServiceImpl implements the GoalService interface
type GoalServiceImpl struct {
	logger *slog.Logger
	engine *ledger.Engine
	goals  goal.Repository
}

// NewGoalService creates a new goal service
func NewGoalService(logger *slog.Logger, engine *ledger.Engine, goals goal.Repository) GoalService {
	return &GoalServiceImpl{
		logger: logger,
		engine: engine,
		goals:  goals,
	}
}

func (s *GoalServiceImpl) Create(ctx context.Context, userID int64, g *goal.Goal) (*goal.Goal, error) {
	if err := s.goals.Create(ctx, g); err != nil {
		return nil, err
	}

	s.logger.Info("Goal created", "goal_id", g.ID, "user_id", userID)
	return g, nil
}

func (s *GoalServiceImpl) Get(ctx context.Context, userID, id int64) (*goal.Goal, error) {
	return s.goals.GetForOwner(ctx, id, userID)
}

func (s *GoalServiceImpl) List(ctx context.Context, userID int64) ([]*goal.Goal, error) {
	return s.goals.ListByOwner(ctx, userID)
}

// Update changes goal attributes. CurrentAmount and the completion latch
// only move through Contribute.
func (s *GoalServiceImpl) Update(ctx context.Context, userID, id int64, title, description string, targetAmount int64, deadline *time.Time, icon, color string) (*goal.Goal, error) {
	if title == "" {
		return nil, goal.ErrEmptyTitle
	}
	if targetAmount <= 0 {
		return nil, goal.ErrInvalidTarget
	}

	g, err := s.goals.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	g.Title = title
	g.Description = description
	g.TargetAmount = targetAmount
	g.Deadline = deadline
	g.Icon = icon
	g.Color = color

	if err := s.goals.Update(ctx, g); err != nil {
		return nil, err
	}

	s.logger.Info("Goal updated", "goal_id", id, "user_id", userID)
	return g, nil
}

func (s *GoalServiceImpl) Delete(ctx context.Context, userID, id int64) error {
	if err := s.goals.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("Goal deleted", "goal_id", id, "user_id", userID)
	return nil
}

func (s *GoalServiceImpl) Contribute(ctx context.Context, userID, id int64, amount int64, correlationID string) (*ledger.ContributionResult, error) {
	return s.engine.ContributeToGoal(ctx, userID, id, amount, correlationID)
}
