package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/achievement"
	"github.com/fintrack-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// AchievementRepository implements the achievement.Repository interface for
// PostgreSQL
type AchievementRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewAchievementRepository creates a new PostgreSQL achievement repository
func NewAchievementRepository(logger *slog.Logger, db *persistence.PostgresDB) achievement.Repository {
	return &AchievementRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *AchievementRepository) WithTx(tx pgx.Tx) achievement.Repository {
	return &AchievementRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func (r *AchievementRepository) Create(ctx context.Context, a *achievement.Achievement) error {
	query := `
		INSERT INTO achievements (user_id, title, description, icon, points, category, earned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.querier.QueryRow(ctx, query,
		a.UserID,
		a.Title,
		a.Description,
		a.Icon,
		a.Points,
		a.Category,
		a.EarnedAt,
	).Scan(&a.ID)
	if err != nil {
		r.logger.Error("Failed to create achievement", "user_id", a.UserID, "error", err)
		return fmt.Errorf("failed to create achievement: %w", err)
	}

	return nil
}

func (r *AchievementRepository) ListByOwner(ctx context.Context, userID int64) ([]*achievement.Achievement, error) {
	query := `
		SELECT id, user_id, title, description, icon, points, category, earned_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY earned_at DESC
	`

	rows, err := r.querier.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list achievements", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	var achievements []*achievement.Achievement
	for rows.Next() {
		var a achievement.Achievement
		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Title,
			&a.Description,
			&a.Icon,
			&a.Points,
			&a.Category,
			&a.EarnedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over achievements: %w", err)
	}

	return achievements, nil
}
