package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/goal"
	"github.com/fintrack-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// GoalRepository implements the goal.Repository interface for PostgreSQL
type GoalRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewGoalRepository creates a new PostgreSQL goal repository
func NewGoalRepository(logger *slog.Logger, db *persistence.PostgresDB) goal.Repository {
	return &GoalRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so goal writes compose into
// the caller's atomic unit.
func (r *GoalRepository) WithTx(tx pgx.Tx) goal.Repository {
	return &GoalRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func (r *GoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (user_id, title, description, target_amount, current_amount, deadline, icon, color, is_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.querier.QueryRow(ctx, query,
		g.UserID,
		g.Title,
		g.Description,
		g.TargetAmount,
		g.CurrentAmount,
		g.Deadline,
		g.Icon,
		g.Color,
		g.IsCompleted,
		g.CreatedAt,
		g.UpdatedAt,
	).Scan(&g.ID)
	if err != nil {
		r.logger.Error("Failed to create goal", "user_id", g.UserID, "error", err)
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

func (r *GoalRepository) GetForOwner(ctx context.Context, id, userID int64) (*goal.Goal, error) {
	query := `
		SELECT id, user_id, title, description, target_amount, current_amount, deadline, icon, color, is_completed, created_at, updated_at
		FROM goals
		WHERE id = $1 AND user_id = $2
	`

	var g goal.Goal
	err := r.querier.QueryRow(ctx, query, id, userID).Scan(
		&g.ID,
		&g.UserID,
		&g.Title,
		&g.Description,
		&g.TargetAmount,
		&g.CurrentAmount,
		&g.Deadline,
		&g.Icon,
		&g.Color,
		&g.IsCompleted,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goal.ErrGoalNotFound{ID: id}
		}
		r.logger.Error("Failed to get goal", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return &g, nil
}

func (r *GoalRepository) ListByOwner(ctx context.Context, userID int64) ([]*goal.Goal, error) {
	query := `
		SELECT id, user_id, title, description, target_amount, current_amount, deadline, icon, color, is_completed, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY is_completed ASC, created_at DESC
	`

	return r.queryGoals(ctx, query, userID)
}

// ListOpenByOwner returns at most limit uncompleted goals, nearest deadline
// first. Goals without a deadline sort last.
func (r *GoalRepository) ListOpenByOwner(ctx context.Context, userID int64, limit int) ([]*goal.Goal, error) {
	query := `
		SELECT id, user_id, title, description, target_amount, current_amount, deadline, icon, color, is_completed, created_at, updated_at
		FROM goals
		WHERE user_id = $1 AND is_completed = FALSE
		ORDER BY deadline ASC NULLS LAST, created_at ASC
		LIMIT $2
	`

	return r.queryGoals(ctx, query, userID, limit)
}

func (r *GoalRepository) queryGoals(ctx context.Context, query string, args ...interface{}) ([]*goal.Goal, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list goals", "error", err)
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal
	for rows.Next() {
		var g goal.Goal
		err := rows.Scan(
			&g.ID,
			&g.UserID,
			&g.Title,
			&g.Description,
			&g.TargetAmount,
			&g.CurrentAmount,
			&g.Deadline,
			&g.Icon,
			&g.Color,
			&g.IsCompleted,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over goals: %w", err)
	}

	return goals, nil
}

func (r *GoalRepository) Update(ctx context.Context, g *goal.Goal) error {
	query := `
		UPDATE goals
		SET title = $1, description = $2, target_amount = $3, deadline = $4, icon = $5, color = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
	`

	result, err := r.querier.Exec(ctx, query,
		g.Title,
		g.Description,
		g.TargetAmount,
		g.Deadline,
		g.Icon,
		g.Color,
		g.ID,
		g.UserID,
	)
	if err != nil {
		r.logger.Error("Failed to update goal", "id", g.ID, "error", err)
		return fmt.Errorf("failed to update goal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return goal.ErrGoalNotFound{ID: g.ID}
	}

	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `
		DELETE FROM goals
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.querier.Exec(ctx, query, id, userID)
	if err != nil {
		r.logger.Error("Failed to delete goal", "id", id, "error", err)
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return goal.ErrGoalNotFound{ID: id}
	}

	return nil
}

// IncrementAmount adds a relative delta to current_amount and returns the
// updated row. The single-statement update serializes concurrent
// contributions on the row lock.
func (r *GoalRepository) IncrementAmount(ctx context.Context, id int64, amount int64) (*goal.Goal, error) {
	query := `
		UPDATE goals
		SET current_amount = current_amount + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, user_id, title, description, target_amount, current_amount, deadline, icon, color, is_completed, created_at, updated_at
	`

	var g goal.Goal
	err := r.querier.QueryRow(ctx, query, amount, id).Scan(
		&g.ID,
		&g.UserID,
		&g.Title,
		&g.Description,
		&g.TargetAmount,
		&g.CurrentAmount,
		&g.Deadline,
		&g.Icon,
		&g.Color,
		&g.IsCompleted,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goal.ErrGoalNotFound{ID: id}
		}
		r.logger.Error("Failed to increment goal amount", "id", id, "amount", amount, "error", err)
		return nil, fmt.Errorf("failed to increment goal amount: %w", err)
	}

	return &g, nil
}

// MarkCompleted latches is_completed. The WHERE clause makes the flip
// observable exactly once: a goal already completed affects zero rows.
func (r *GoalRepository) MarkCompleted(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE goals
		SET is_completed = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_completed = FALSE
	`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to mark goal completed", "id", id, "error", err)
		return false, fmt.Errorf("failed to mark goal completed: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
