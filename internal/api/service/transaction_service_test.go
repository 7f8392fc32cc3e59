package service

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMonthBounds(t *testing.T) {
	t.Run("MidMonth", func(t *testing.T) {
		ref := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
		start, end := monthBounds(ref)

		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 999999999, time.UTC), end)
	})

	t.Run("December", func(t *testing.T) {
		ref := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
		start, end := monthBounds(ref)

		assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 12, 31, 23, 59, 59, 999999999, time.UTC), end)
	})

	t.Run("February", func(t *testing.T) {
		ref := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
		_, end := monthBounds(ref)

		// leap year
		assert.Equal(t, 29, end.Day())
	})
}

func TestTrend(t *testing.T) {
	assert.Equal(t, float64(25), trend(125, 100))
	assert.Equal(t, float64(-50), trend(50, 100))
	assert.Equal(t, float64(0), trend(100, 100))
	assert.Equal(t, float64(100), trend(42, 0))
	assert.Equal(t, float64(0), trend(0, 0))
}

func TestTransactionService_MonthlySummary(t *testing.T) {
	ctx := context.Background()

	t.Run("ComparesWithPreviousMonth", func(t *testing.T) {
		transactions := new(MockTransactionRepository)
		svc := NewTransactionService(newServiceLogger(), nil, transactions)

		ref := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
		curStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		curEnd := time.Date(2025, 3, 31, 23, 59, 59, 999999999, time.UTC)
		prevStart := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		prevEnd := time.Date(2025, 2, 28, 23, 59, 59, 999999999, time.UTC)

		transactions.On("TotalsForPeriod", ctx, int64(7), curStart, curEnd).
			Return(transaction.MonthlyTotals{Income: 500000, Expense: 320000, Count: 42}, nil)
		transactions.On("TotalsForPeriod", ctx, int64(7), prevStart, prevEnd).
			Return(transaction.MonthlyTotals{Income: 400000, Expense: 400000, Count: 38}, nil)

		summary, err := svc.MonthlySummary(ctx, 7, ref)

		require.NoError(t, err)
		assert.Equal(t, "2025-03", summary.Month)
		assert.Equal(t, int64(180000), summary.Balance)
		assert.Equal(t, float64(25), summary.IncomeTrend)
		assert.Equal(t, float64(-20), summary.ExpenseTrend)
		transactions.AssertExpectations(t)
	})
}

func TestTransactionService_CategorySummary(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsUnknownType", func(t *testing.T) {
		transactions := new(MockTransactionRepository)
		svc := NewTransactionService(newServiceLogger(), nil, transactions)

		_, err := svc.CategorySummary(ctx, 7, transaction.Type("refund"), time.Time{}, time.Time{})

		assert.ErrorIs(t, err, transaction.ErrInvalidType)
		transactions.AssertNotCalled(t, "TotalsByCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PassesFilterThrough", func(t *testing.T) {
		transactions := new(MockTransactionRepository)
		svc := NewTransactionService(newServiceLogger(), nil, transactions)

		from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
		expected := []transaction.CategoryTotal{
			{CategoryID: 4, Name: "Groceries", Amount: 52000, Count: 9, Percentage: 65},
			{CategoryID: 5, Name: "Dining", Amount: 28000, Count: 4, Percentage: 35},
		}
		transactions.On("TotalsByCategory", ctx, int64(7), transaction.TypeExpense, from, to).Return(expected, nil)

		totals, err := svc.CategorySummary(ctx, 7, transaction.TypeExpense, from, to)

		require.NoError(t, err)
		assert.Equal(t, expected, totals)
		transactions.AssertExpectations(t)
	})
}
