package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/fintrack-ledger/internal/domain/goal"
	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/fintrack-ledger/internal/domain/wallet"
)

const (
	dashboardTopGoals    = 3
	dashboardRecentLimit = 5
)

// DashboardServiceImpl implements the DashboardService interface
type DashboardServiceImpl struct {
	logger       *slog.Logger
	wallets      wallet.Repository
	transactions transaction.Repository
	goals        goal.Repository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(logger *slog.Logger, wallets wallet.Repository, transactions transaction.Repository, goals goal.Repository) DashboardService {
	return &DashboardServiceImpl{
		logger:       logger,
		wallets:      wallets,
		transactions: transactions,
		goals:        goals,
	}
}

// Overview assembles the home screen payload: balances, current month
// totals with trends, expense breakdown, top open goals, and recent
// transactions.
func (s *DashboardServiceImpl) Overview(ctx context.Context, userID int64) (*Dashboard, error) {
	wallets, err := s.wallets.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	var totalBalance int64
	for _, w := range wallets {
		totalBalance += w.Balance
	}

	now := time.Now()
	curStart, curEnd := monthBounds(now)
	prevStart, prevEnd := monthBounds(curStart.AddDate(0, -1, 0))

	current, err := s.transactions.TotalsForPeriod(ctx, userID, curStart, curEnd)
	if err != nil {
		return nil, err
	}
	previous, err := s.transactions.TotalsForPeriod(ctx, userID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	expenses, err := s.transactions.TotalsByCategory(ctx, userID, transaction.TypeExpense, curStart, curEnd)
	if err != nil {
		return nil, err
	}

	topGoals, err := s.goals.ListOpenByOwner(ctx, userID, dashboardTopGoals)
	if err != nil {
		return nil, err
	}

	recent, err := s.transactions.Recent(ctx, userID, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalBalance:       totalBalance,
		Wallets:            wallets,
		Month:              current,
		MonthBalance:       current.Balance(),
		IncomeTrend:        trend(current.Income, previous.Income),
		ExpenseTrend:       trend(current.Expense, previous.Expense),
		ExpensesByCategory: expenses,
		TopGoals:           topGoals,
		RecentTransactions: recent,
	}, nil
}
