package achievement

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository defines achievement persistence operations
type Repository interface {
	Create(ctx context.Context, a *Achievement) error
	ListByOwner(ctx context.Context, userID int64) ([]*Achievement, error)
	WithTx(tx pgx.Tx) Repository
}
