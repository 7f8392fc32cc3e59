package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack-ledger/internal/domain/goal"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var goalColumns = []string{
	"id", "user_id", "title", "description", "target_amount", "current_amount",
	"deadline", "icon", "color", "is_completed", "created_at", "updated_at",
}

func TestGoalRepository_IncrementAmount(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &GoalRepository{querier: mock, logger: logger}
	now := time.Now()

	query := `
		UPDATE goals
		SET current_amount = current_amount \+ \$1, updated_at = NOW\(\)
		WHERE id = \$2
		RETURNING id, user_id, title, description, target_amount, current_amount, deadline, icon, color, is_completed, created_at, updated_at
	`

	t.Run("returns updated row", func(t *testing.T) {
		rows := pgxmock.NewRows(goalColumns).
			AddRow(int64(11), int64(7), "Emergency fund", "", int64(100000), int64(105000), nil, "", "", false, now, now)

		mock.ExpectQuery(query).WithArgs(int64(10000), int64(11)).WillReturnRows(rows)

		g, err := repo.IncrementAmount(ctx, 11, 10000)
		assert.NoError(t, err)
		assert.Equal(t, int64(105000), g.CurrentAmount)
		assert.True(t, g.TargetReached())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing goal", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(500), int64(99)).WillReturnError(pgx.ErrNoRows)

		_, err := repo.IncrementAmount(ctx, 99, 500)
		assert.ErrorAs(t, err, &goal.ErrGoalNotFound{})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGoalRepository_MarkCompleted(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &GoalRepository{querier: mock, logger: logger}

	query := `
		UPDATE goals
		SET is_completed = TRUE, updated_at = NOW\(\)
		WHERE id = \$1 AND is_completed = FALSE
	`

	t.Run("first completion latches", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(int64(11)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		latched, err := repo.MarkCompleted(ctx, 11)
		assert.NoError(t, err)
		assert.True(t, latched)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already completed is a no-op", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(int64(11)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		latched, err := repo.MarkCompleted(ctx, 11)
		assert.NoError(t, err)
		assert.False(t, latched)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGoalRepository_GetForOwner(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &GoalRepository{querier: mock, logger: logger}
	now := time.Now()

	query := `
		SELECT id, user_id, title, description, target_amount, current_amount, deadline, icon, color, is_completed, created_at, updated_at
		FROM goals
		WHERE id = \$1 AND user_id = \$2
	`

	t.Run("found", func(t *testing.T) {
		deadline := now.AddDate(0, 6, 0)
		rows := pgxmock.NewRows(goalColumns).
			AddRow(int64(11), int64(7), "Vacation", "Two weeks away", int64(250000), int64(40000), &deadline, "✈️", "#2196F3", false, now, now)

		mock.ExpectQuery(query).WithArgs(int64(11), int64(7)).WillReturnRows(rows)

		g, err := repo.GetForOwner(ctx, 11, 7)
		assert.NoError(t, err)
		assert.Equal(t, "Vacation", g.Title)
		assert.False(t, g.TargetReached())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("owned by another user", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(11), int64(8)).WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetForOwner(ctx, 11, 8)
		assert.ErrorAs(t, err, &goal.ErrGoalNotFound{})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
