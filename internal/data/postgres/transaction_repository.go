package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/fintrack-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `
	t.id, t.user_id, t.wallet_id, t.category_id, t.amount, t.type, t.date,
	t.description, t.notes, t.created_at, t.updated_at,
	c.name, c.icon, c.color,
	w.name, w.icon
`

const transactionJoins = `
	FROM transactions t
	JOIN categories c ON c.id = t.category_id
	JOIN wallets w ON w.id = t.wallet_id
`

// TransactionRepository implements the transaction.Repository interface for
// PostgreSQL. Read paths join category and wallet display fields.
type TransactionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(logger *slog.Logger, db *persistence.PostgresDB) transaction.Repository {
	return &TransactionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *TransactionRepository) WithTx(tx pgx.Tx) transaction.Repository {
	return &TransactionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, wallet_id, category_id, amount, type, date, description, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.querier.QueryRow(ctx, query,
		t.UserID,
		t.WalletID,
		t.CategoryID,
		t.Amount,
		t.Type,
		t.Date,
		t.Description,
		t.Notes,
		t.CreatedAt,
		t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		r.logger.Error("Failed to create transaction", "user_id", t.UserID, "error", err)
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var cat transaction.CategoryInfo
	var wal transaction.WalletInfo
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.WalletID,
		&t.CategoryID,
		&t.Amount,
		&t.Type,
		&t.Date,
		&t.Description,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
		&cat.Name,
		&cat.Icon,
		&cat.Color,
		&wal.Name,
		&wal.Icon,
	)
	if err != nil {
		return nil, err
	}
	t.Category = &cat
	t.Wallet = &wal
	return &t, nil
}

func (r *TransactionRepository) GetForOwner(ctx context.Context, id, userID int64) (*transaction.Transaction, error) {
	query := `SELECT` + transactionColumns + transactionJoins + `
		WHERE t.id = $1 AND t.user_id = $2
	`

	t, err := scanTransaction(r.querier.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound{ID: id}
		}
		r.logger.Error("Failed to get transaction", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return t, nil
}

// buildFilterClauses translates a Filter into WHERE conditions and args.
// The leading arg slot is always the user id.
func buildFilterClauses(userID int64, filter transaction.Filter) ([]string, []interface{}) {
	conditions := []string{"t.user_id = $1"}
	args := []interface{}{userID}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, strings.Replace(clause, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if filter.StartDate != nil {
		addCondition("t.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCondition("t.date <= ?", *filter.EndDate)
	}
	if filter.Type != "" {
		addCondition("t.type = ?", filter.Type)
	}
	if filter.CategoryID != 0 {
		addCondition("t.category_id = ?", filter.CategoryID)
	}
	if filter.WalletID != 0 {
		addCondition("t.wallet_id = ?", filter.WalletID)
	}
	if filter.MinAmount != nil {
		addCondition("t.amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		addCondition("t.amount <= ?", *filter.MaxAmount)
	}
	if filter.Search != "" {
		addCondition("(t.description ILIKE ? OR t.notes ILIKE ?)", "%"+filter.Search+"%")
		// Same placeholder number twice keeps a single arg for both columns
		conditions[len(conditions)-1] = strings.Replace(conditions[len(conditions)-1], "?", "$"+strconv.Itoa(len(args)), 1)
	}

	return conditions, args
}

// List returns matching transactions ordered by date descending, newest
// created first within the same date, plus the total match count.
func (r *TransactionRepository) List(ctx context.Context, userID int64, filter transaction.Filter) ([]*transaction.Transaction, int64, error) {
	conditions, args := buildFilterClauses(userID, filter)
	where := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*)` + transactionJoins + where
	var total int64
	if err := r.querier.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count transactions", "user_id", userID, "error", err)
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `SELECT` + transactionColumns + transactionJoins + where +
		` ORDER BY t.date DESC, t.created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list transactions", "user_id", userID, "error", err)
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over transactions: %w", err)
	}

	return transactions, total, nil
}

func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET wallet_id = $1, category_id = $2, amount = $3, type = $4, date = $5,
		    description = $6, notes = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
	`

	result, err := r.querier.Exec(ctx, query,
		t.WalletID,
		t.CategoryID,
		t.Amount,
		t.Type,
		t.Date,
		t.Description,
		t.Notes,
		t.ID,
		t.UserID,
	)
	if err != nil {
		r.logger.Error("Failed to update transaction", "id", t.ID, "error", err)
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound{ID: t.ID}
	}

	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM transactions
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete transaction", "id", id, "error", err)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound{ID: id}
	}

	return nil
}

func (r *TransactionRepository) CountByWallet(ctx context.Context, walletID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM transactions
		WHERE wallet_id = $1
	`

	var count int64
	if err := r.querier.QueryRow(ctx, query, walletID).Scan(&count); err != nil {
		r.logger.Error("Failed to count transactions by wallet", "wallet_id", walletID, "error", err)
		return 0, fmt.Errorf("failed to count transactions by wallet: %w", err)
	}

	return count, nil
}

// TotalsForPeriod sums income and expense amounts between from and to.
// Transfers count toward the transaction count but neither total.
func (r *TransactionRepository) TotalsForPeriod(ctx context.Context, userID int64, from, to time.Time) (transaction.MonthlyTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0),
			COUNT(*)
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
	`

	var totals transaction.MonthlyTotals
	err := r.querier.QueryRow(ctx, query, userID, from, to).Scan(
		&totals.Income,
		&totals.Expense,
		&totals.Count,
	)
	if err != nil {
		r.logger.Error("Failed to aggregate period totals", "user_id", userID, "error", err)
		return transaction.MonthlyTotals{}, fmt.Errorf("failed to aggregate period totals: %w", err)
	}

	return totals, nil
}

// TotalsByCategory groups amounts per category, largest first, and fills in
// each category's share of the overall total.
func (r *TransactionRepository) TotalsByCategory(ctx context.Context, userID int64, txType transaction.Type, from, to time.Time) ([]transaction.CategoryTotal, error) {
	conditions := []string{"t.user_id = $1"}
	args := []interface{}{userID}

	if txType != "" {
		args = append(args, txType)
		conditions = append(conditions, "t.type = $"+strconv.Itoa(len(args)))
	}
	if !from.IsZero() {
		args = append(args, from)
		conditions = append(conditions, "t.date >= $"+strconv.Itoa(len(args)))
	}
	if !to.IsZero() {
		args = append(args, to)
		conditions = append(conditions, "t.date <= $"+strconv.Itoa(len(args)))
	}

	query := `
		SELECT t.category_id, c.name, c.icon, c.color, SUM(t.amount), COUNT(*)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		GROUP BY t.category_id, c.name, c.icon, c.color
		ORDER BY SUM(t.amount) DESC
	`

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to aggregate category totals", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to aggregate category totals: %w", err)
	}
	defer rows.Close()

	var results []transaction.CategoryTotal
	var grandTotal int64
	for rows.Next() {
		var ct transaction.CategoryTotal
		err := rows.Scan(
			&ct.CategoryID,
			&ct.Name,
			&ct.Icon,
			&ct.Color,
			&ct.Amount,
			&ct.Count,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		grandTotal += ct.Amount
		results = append(results, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over category totals: %w", err)
	}

	if grandTotal > 0 {
		for i := range results {
			results[i].Percentage = float64(results[i].Amount) / float64(grandTotal) * 100
		}
	}

	return results, nil
}

func (r *TransactionRepository) Recent(ctx context.Context, userID int64, limit int) ([]*transaction.Transaction, error) {
	query := `SELECT` + transactionColumns + transactionJoins + `
		WHERE t.user_id = $1
		ORDER BY t.date DESC, t.created_at DESC
		LIMIT $2
	`

	rows, err := r.querier.Query(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("Failed to list recent transactions", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over transactions: %w", err)
	}

	return transactions, nil
}
