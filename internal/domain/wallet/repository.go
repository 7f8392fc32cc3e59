package wallet

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// Repository defines wallet persistence operations. All lookups are scoped
// by the owning user id; a wallet belonging to another user behaves as if it
// did not exist.
type Repository interface {
	Create(ctx context.Context, w *Wallet) error
	GetForOwner(ctx context.Context, id, userID int64) (*Wallet, error)
	ListByOwner(ctx context.Context, userID int64) ([]*Wallet, error)
	Update(ctx context.Context, w *Wallet) error
	Delete(ctx context.Context, id, userID int64) error

	// AdjustBalance applies a relative delta (balance = balance + delta) so
	// concurrent adjustments serialize inside the storage provider.
	AdjustBalance(ctx context.Context, id int64, delta int64) error

	// SetBalance overwrites the balance with an absolute value. This is the
	// explicit override operation and intentionally resets the running total.
	SetBalance(ctx context.Context, id, userID int64, balance int64) error

	// ClearDefault unsets the default flag on every wallet of the user except
	// the one identified by exceptID (pass 0 to clear all).
	ClearDefault(ctx context.Context, userID, exceptID int64) error

	// PromoteOldest marks the user's oldest wallet as default. Used after the
	// default wallet is deleted.
	PromoteOldest(ctx context.Context, userID int64) error

	WithTx(tx pgx.Tx) Repository
}

// ErrWalletNotFound indicates a missing wallet or one owned by another user
type ErrWalletNotFound struct {
	ID int64
}

func (e ErrWalletNotFound) Error() string {
	return "wallet not found: " + strconv.FormatInt(e.ID, 10)
}

// ErrWalletHasTransactions indicates a deletion attempt on a wallet that
// still has transactions referencing it
type ErrWalletHasTransactions struct {
	ID    int64
	Count int64
}

func (e ErrWalletHasTransactions) Error() string {
	return "wallet " + strconv.FormatInt(e.ID, 10) + " still has " + strconv.FormatInt(e.Count, 10) + " transactions"
}
