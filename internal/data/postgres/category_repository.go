package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/category"
	"github.com/fintrack-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// CategoryRepository implements the category.Repository interface for PostgreSQL
type CategoryRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(logger *slog.Logger, db *persistence.PostgresDB) category.Repository {
	return &CategoryRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *CategoryRepository) WithTx(tx pgx.Tx) category.Repository {
	return &CategoryRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (name, icon, color, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.querier.QueryRow(ctx, query,
		c.Name,
		c.Icon,
		c.Color,
		c.Type,
		c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		r.logger.Error("Failed to create category", "name", c.Name, "error", err)
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	query := `
		SELECT id, name, icon, color, type, created_at
		FROM categories
		WHERE id = $1
	`

	var c category.Category
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Icon,
		&c.Color,
		&c.Type,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound{ID: id}
		}
		r.logger.Error("Failed to get category", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &c, nil
}

// List returns categories ordered by name. When typeFilter is set, rows
// typed "both" match either filter.
func (r *CategoryRepository) List(ctx context.Context, typeFilter category.Type) ([]*category.Category, error) {
	query := `
		SELECT id, name, icon, color, type, created_at
		FROM categories
	`
	var args []interface{}
	if typeFilter != "" {
		query += ` WHERE type = $1 OR type = 'both'`
		args = append(args, typeFilter)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list categories", "type", typeFilter, "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		var c category.Category
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Icon,
			&c.Color,
			&c.Type,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over categories: %w", err)
	}

	return categories, nil
}
