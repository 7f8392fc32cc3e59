package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/fintrack-ledger/internal/ledger"
)

// TransactionServiceImpl implements the TransactionService interface. Reads
// hit the repository directly; mutations go through the ledger engine so
// the wallet balance moves with them.
type TransactionServiceImpl struct {
	logger       *slog.Logger
	engine       *ledger.Engine
	transactions transaction.Repository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(logger *slog.Logger, engine *ledger.Engine, transactions transaction.Repository) TransactionService {
	return &TransactionServiceImpl{
		logger:       logger,
		engine:       engine,
		transactions: transactions,
	}
}

func (s *TransactionServiceImpl) Create(ctx context.Context, userID int64, t *transaction.Transaction) (*transaction.Transaction, error) {
	created, err := s.engine.CreateTransaction(ctx, userID, t)
	if err != nil {
		return nil, err
	}
	// Re-read to pick up the joined category and wallet summaries
	return s.transactions.GetForOwner(ctx, created.ID, userID)
}

func (s *TransactionServiceImpl) Get(ctx context.Context, userID, id int64) (*transaction.Transaction, error) {
	return s.transactions.GetForOwner(ctx, id, userID)
}

func (s *TransactionServiceImpl) List(ctx context.Context, userID int64, filter transaction.Filter) ([]*transaction.Transaction, int64, error) {
	return s.transactions.List(ctx, userID, filter)
}

func (s *TransactionServiceImpl) Update(ctx context.Context, userID, id int64, patch transaction.Patch) (*transaction.Transaction, error) {
	updated, err := s.engine.UpdateTransaction(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}
	return s.transactions.GetForOwner(ctx, updated.ID, userID)
}

func (s *TransactionServiceImpl) Delete(ctx context.Context, userID, id int64) error {
	return s.engine.DeleteTransaction(ctx, userID, id)
}

// monthBounds returns the first and last instant of the month containing ref
func monthBounds(ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// trend is the percentage change from previous to current. A zero previous
// value yields 100 when activity appeared, 0 otherwise.
func trend(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// MonthlySummary aggregates the month containing ref and compares it with
// the previous month.
func (s *TransactionServiceImpl) MonthlySummary(ctx context.Context, userID int64, ref time.Time) (*MonthlySummary, error) {
	curStart, curEnd := monthBounds(ref)
	prevStart, prevEnd := monthBounds(curStart.AddDate(0, -1, 0))

	current, err := s.transactions.TotalsForPeriod(ctx, userID, curStart, curEnd)
	if err != nil {
		return nil, err
	}
	previous, err := s.transactions.TotalsForPeriod(ctx, userID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	return &MonthlySummary{
		Month:        curStart.Format("2006-01"),
		Current:      current,
		Previous:     previous,
		Balance:      current.Balance(),
		IncomeTrend:  trend(current.Income, previous.Income),
		ExpenseTrend: trend(current.Expense, previous.Expense),
	}, nil
}

func (s *TransactionServiceImpl) CategorySummary(ctx context.Context, userID int64, txType transaction.Type, from, to time.Time) ([]transaction.CategoryTotal, error) {
	if txType != "" && !txType.Valid() {
		return nil, transaction.ErrInvalidType
	}
	return s.transactions.TotalsByCategory(ctx, userID, txType, from, to)
}
