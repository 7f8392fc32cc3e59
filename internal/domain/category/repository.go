package category

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// Repository defines category persistence operations
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id int64) (*Category, error)

	// List returns all categories, optionally filtered by type. TypeBoth
	// categories match both income and expense filters.
	List(ctx context.Context, typeFilter Type) ([]*Category, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrCategoryNotFound indicates a missing category
type ErrCategoryNotFound struct {
	ID int64
}

func (e ErrCategoryNotFound) Error() string {
	return "category not found: " + strconv.FormatInt(e.ID, 10)
}
