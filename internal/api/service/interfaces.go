// Package service holds the application services behind the HTTP handlers.
// Reads go straight to the repositories; every mutation that touches a
// wallet balance or a goal total goes through the ledger engine.
package service

import (
	"context"
	"time"

	"github.com/fintrack-ledger/internal/domain/activity"
	"github.com/fintrack-ledger/internal/domain/category"
	"github.com/fintrack-ledger/internal/domain/goal"
	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/fintrack-ledger/internal/domain/wallet"
	"github.com/fintrack-ledger/internal/ledger"
)

// WalletList pairs a user's wallets with their combined balance
type WalletList struct {
	Wallets      []*wallet.Wallet `json:"wallets"`
	TotalBalance int64            `json:"total_balance"`
}

// WalletService defines the interface for wallet operations
type WalletService interface {
	// Create adds a wallet. Marking it default clears the flag on the
	// user's other wallets in the same transaction.
	Create(ctx context.Context, userID int64, name, icon string, walletType wallet.Type, initialBalance int64, isDefault bool) (*wallet.Wallet, error)

	Get(ctx context.Context, userID, id int64) (*wallet.Wallet, error)
	List(ctx context.Context, userID int64) (*WalletList, error)

	// Update changes wallet attributes (never the balance)
	Update(ctx context.Context, userID, id int64, name, icon string, walletType wallet.Type, isDefault bool) (*wallet.Wallet, error)

	// OverrideBalance sets an absolute balance outside the ledger engine
	OverrideBalance(ctx context.Context, userID, id int64, balance int64) (*wallet.Wallet, error)

	// Delete removes a wallet. Returns ErrWalletHasTransactions while any
	// transaction still references it; deleting the default wallet promotes
	// the oldest remaining one.
	Delete(ctx context.Context, userID, id int64) error
}

// CategoryService defines the interface for category operations
type CategoryService interface {
	Create(ctx context.Context, name, icon, color string, categoryType category.Type) (*category.Category, error)
	Get(ctx context.Context, id int64) (*category.Category, error)
	List(ctx context.Context, typeFilter category.Type) ([]*category.Category, error)
}

// MonthlySummary compares a month's totals against the previous month
type MonthlySummary struct {
	Month        string                    `json:"month"`
	Current      transaction.MonthlyTotals `json:"current"`
	Previous     transaction.MonthlyTotals `json:"previous"`
	Balance      int64                     `json:"balance"`
	IncomeTrend  float64                   `json:"income_trend"`
	ExpenseTrend float64                   `json:"expense_trend"`
}

// TransactionService defines the interface for transaction operations.
// Mutations delegate to the ledger engine so wallet balances stay in step.
type TransactionService interface {
	Create(ctx context.Context, userID int64, t *transaction.Transaction) (*transaction.Transaction, error)
	Get(ctx context.Context, userID, id int64) (*transaction.Transaction, error)
	List(ctx context.Context, userID int64, filter transaction.Filter) ([]*transaction.Transaction, int64, error)
	Update(ctx context.Context, userID, id int64, patch transaction.Patch) (*transaction.Transaction, error)
	Delete(ctx context.Context, userID, id int64) error

	// MonthlySummary aggregates the month containing ref plus the previous
	// month for trend comparison.
	MonthlySummary(ctx context.Context, userID int64, ref time.Time) (*MonthlySummary, error)

	// CategorySummary aggregates per-category totals for the period
	CategorySummary(ctx context.Context, userID int64, txType transaction.Type, from, to time.Time) ([]transaction.CategoryTotal, error)
}

// GoalService defines the interface for savings goal operations
type GoalService interface {
	Create(ctx context.Context, userID int64, g *goal.Goal) (*goal.Goal, error)
	Get(ctx context.Context, userID, id int64) (*goal.Goal, error)
	List(ctx context.Context, userID int64) ([]*goal.Goal, error)
	Update(ctx context.Context, userID, id int64, title, description string, targetAmount int64, deadline *time.Time, icon, color string) (*goal.Goal, error)
	Delete(ctx context.Context, userID, id int64) error

	// Contribute adds funds through the ledger engine; crossing the target
	// awards the completion achievement exactly once.
	Contribute(ctx context.Context, userID, id int64, amount int64, correlationID string) (*ledger.ContributionResult, error)
}

// Dashboard is the aggregated home screen payload
type Dashboard struct {
	TotalBalance       int64                       `json:"total_balance"`
	Wallets            []*wallet.Wallet            `json:"wallets"`
	Month              transaction.MonthlyTotals   `json:"month"`
	MonthBalance       int64                       `json:"month_balance"`
	IncomeTrend        float64                     `json:"income_trend"`
	ExpenseTrend       float64                     `json:"expense_trend"`
	ExpensesByCategory []transaction.CategoryTotal `json:"expenses_by_category"`
	TopGoals           []*goal.Goal                `json:"top_goals"`
	RecentTransactions []*transaction.Transaction  `json:"recent_transactions"`
}

// DashboardService assembles the dashboard overview
type DashboardService interface {
	Overview(ctx context.Context, userID int64) (*Dashboard, error)
}

// ActivityService exposes the asynchronous activity feed
type ActivityService interface {
	List(ctx context.Context, userID int64, limit int) ([]*activity.Entry, error)
}
