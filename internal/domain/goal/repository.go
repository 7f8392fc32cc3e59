package goal

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// Repository defines goal persistence operations
type Repository interface {
	Create(ctx context.Context, g *Goal) error
	GetForOwner(ctx context.Context, id, userID int64) (*Goal, error)
	ListByOwner(ctx context.Context, userID int64) ([]*Goal, error)

	// ListOpenByOwner returns at most limit uncompleted goals, nearest
	// deadline first.
	ListOpenByOwner(ctx context.Context, userID int64, limit int) ([]*Goal, error)

	Update(ctx context.Context, g *Goal) error
	Delete(ctx context.Context, id, userID int64) error

	// IncrementAmount adds a relative delta to current_amount and returns the
	// updated row, so concurrent contributions serialize in the store.
	IncrementAmount(ctx context.Context, id int64, amount int64) (*Goal, error)

	// MarkCompleted latches is_completed and reports whether this call was
	// the one that flipped it. A goal already completed returns false.
	MarkCompleted(ctx context.Context, id int64) (bool, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrGoalNotFound indicates a missing goal or one owned by another user
type ErrGoalNotFound struct {
	ID int64
}

func (e ErrGoalNotFound) Error() string {
	return "goal not found: " + strconv.FormatInt(e.ID, 10)
}
