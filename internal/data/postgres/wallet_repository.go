// Package postgres provides PostgreSQL implementations of the domain
// repositories. Balance and goal-amount mutations are expressed as relative
// updates so the database serializes concurrent deltas.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/wallet"
	"github.com/fintrack-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// WalletRepository implements the wallet.Repository interface for PostgreSQL
type WalletRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewWalletRepository creates a new PostgreSQL wallet repository
func NewWalletRepository(logger *slog.Logger, db *persistence.PostgresDB) wallet.Repository {
	return &WalletRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so wallet writes compose
// into the caller's atomic unit.
func (r *WalletRepository) WithTx(tx pgx.Tx) wallet.Repository {
	return &WalletRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func (r *WalletRepository) Create(ctx context.Context, w *wallet.Wallet) error {
	query := `
		INSERT INTO wallets (user_id, name, icon, type, balance, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.querier.QueryRow(ctx, query,
		w.UserID,
		w.Name,
		w.Icon,
		w.Type,
		w.Balance,
		w.IsDefault,
		w.CreatedAt,
		w.UpdatedAt,
	).Scan(&w.ID)
	if err != nil {
		r.logger.Error("Failed to create wallet", "user_id", w.UserID, "error", err)
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	return nil
}

func (r *WalletRepository) GetForOwner(ctx context.Context, id, userID int64) (*wallet.Wallet, error) {
	query := `
		SELECT id, user_id, name, icon, type, balance, is_default, created_at, updated_at
		FROM wallets
		WHERE id = $1 AND user_id = $2
	`

	var w wallet.Wallet
	err := r.querier.QueryRow(ctx, query, id, userID).Scan(
		&w.ID,
		&w.UserID,
		&w.Name,
		&w.Icon,
		&w.Type,
		&w.Balance,
		&w.IsDefault,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, wallet.ErrWalletNotFound{ID: id}
		}
		r.logger.Error("Failed to get wallet", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return &w, nil
}

// ListByOwner returns the user's wallets, default wallet first, then oldest
// first.
func (r *WalletRepository) ListByOwner(ctx context.Context, userID int64) ([]*wallet.Wallet, error) {
	query := `
		SELECT id, user_id, name, icon, type, balance, is_default, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at ASC
	`

	rows, err := r.querier.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list wallets", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*wallet.Wallet
	for rows.Next() {
		var w wallet.Wallet
		err := rows.Scan(
			&w.ID,
			&w.UserID,
			&w.Name,
			&w.Icon,
			&w.Type,
			&w.Balance,
			&w.IsDefault,
			&w.CreatedAt,
			&w.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over wallets: %w", err)
	}

	return wallets, nil
}

func (r *WalletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	query := `
		UPDATE wallets
		SET name = $1, icon = $2, type = $3, is_default = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
	`

	result, err := r.querier.Exec(ctx, query, w.Name, w.Icon, w.Type, w.IsDefault, w.ID, w.UserID)
	if err != nil {
		r.logger.Error("Failed to update wallet", "id", w.ID, "error", err)
		return fmt.Errorf("failed to update wallet: %w", err)
	}

	if result.RowsAffected() == 0 {
		return wallet.ErrWalletNotFound{ID: w.ID}
	}

	return nil
}

func (r *WalletRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `
		DELETE FROM wallets
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.querier.Exec(ctx, query, id, userID)
	if err != nil {
		r.logger.Error("Failed to delete wallet", "id", id, "error", err)
		return fmt.Errorf("failed to delete wallet: %w", err)
	}

	if result.RowsAffected() == 0 {
		return wallet.ErrWalletNotFound{ID: id}
	}

	return nil
}

// AdjustBalance applies a relative delta to the wallet balance. The update
// is a single statement so the row lock it takes serializes concurrent
// adjustments inside the surrounding transaction.
func (r *WalletRepository) AdjustBalance(ctx context.Context, id int64, delta int64) error {
	query := `
		UPDATE wallets
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.querier.Exec(ctx, query, delta, id)
	if err != nil {
		r.logger.Error("Failed to adjust wallet balance", "id", id, "delta", delta, "error", err)
		return fmt.Errorf("failed to adjust wallet balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return wallet.ErrWalletNotFound{ID: id}
	}

	return nil
}

// SetBalance overwrites the balance with an absolute value (the explicit
// override operation).
func (r *WalletRepository) SetBalance(ctx context.Context, id, userID int64, balance int64) error {
	query := `
		UPDATE wallets
		SET balance = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`

	result, err := r.querier.Exec(ctx, query, balance, id, userID)
	if err != nil {
		r.logger.Error("Failed to set wallet balance", "id", id, "error", err)
		return fmt.Errorf("failed to set wallet balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return wallet.ErrWalletNotFound{ID: id}
	}

	return nil
}

func (r *WalletRepository) ClearDefault(ctx context.Context, userID, exceptID int64) error {
	query := `
		UPDATE wallets
		SET is_default = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND is_default = TRUE AND id <> $2
	`

	if _, err := r.querier.Exec(ctx, query, userID, exceptID); err != nil {
		r.logger.Error("Failed to clear default wallet flag", "user_id", userID, "error", err)
		return fmt.Errorf("failed to clear default wallet flag: %w", err)
	}

	return nil
}

// PromoteOldest marks the user's oldest wallet as default. A user with no
// remaining wallets is not an error.
func (r *WalletRepository) PromoteOldest(ctx context.Context, userID int64) error {
	query := `
		UPDATE wallets
		SET is_default = TRUE, updated_at = NOW()
		WHERE id = (
			SELECT id FROM wallets
			WHERE user_id = $1
			ORDER BY created_at ASC
			LIMIT 1
		)
	`

	if _, err := r.querier.Exec(ctx, query, userID); err != nil {
		r.logger.Error("Failed to promote oldest wallet", "user_id", userID, "error", err)
		return fmt.Errorf("failed to promote oldest wallet: %w", err)
	}

	return nil
}
