package transaction

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
)

// Repository defines transaction persistence operations. Reads join the
// category and wallet summary fields into the returned records.
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetForOwner(ctx context.Context, id, userID int64) (*Transaction, error)

	// List returns matching transactions ordered by date descending, plus the
	// total match count for pagination.
	List(ctx context.Context, userID int64, filter Filter) ([]*Transaction, int64, error)

	Update(ctx context.Context, t *Transaction) error
	Delete(ctx context.Context, id int64) error

	CountByWallet(ctx context.Context, walletID int64) (int64, error)

	// TotalsForPeriod sums income and expense amounts between from and to
	TotalsForPeriod(ctx context.Context, userID int64, from, to time.Time) (MonthlyTotals, error)

	// TotalsByCategory groups amounts per category, restricted to txType when
	// set, between from and to (zero times mean unbounded).
	TotalsByCategory(ctx context.Context, userID int64, txType Type, from, to time.Time) ([]CategoryTotal, error)

	Recent(ctx context.Context, userID int64, limit int) ([]*Transaction, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrTransactionNotFound indicates a missing transaction or one owned by
// another user
type ErrTransactionNotFound struct {
	ID int64
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + strconv.FormatInt(e.ID, 10)
}
