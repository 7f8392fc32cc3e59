// Package ledger implements the balance bookkeeping engine. Every mutation
// of a transaction pairs with the matching wallet balance adjustment inside
// a single database transaction, so the denormalized balance always equals
// the sum of signed transaction amounts over the initial balance.
package ledger

import (
	"context"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/achievement"
	"github.com/fintrack-ledger/internal/domain/category"
	"github.com/fintrack-ledger/internal/domain/goal"
	"github.com/fintrack-ledger/internal/domain/outbox"
	"github.com/fintrack-ledger/internal/domain/shared"
	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/fintrack-ledger/internal/domain/wallet"
	"github.com/jackc/pgx/v5"
)

// TxRunner executes a function inside a database transaction
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// ContributionResult reports the outcome of a goal contribution
type ContributionResult struct {
	Goal          *goal.Goal               `json:"goal"`
	JustCompleted bool                     `json:"just_completed"`
	Achievement   *achievement.Achievement `json:"achievement,omitempty"`
}

// Engine coordinates transaction and goal mutations with their side effects
type Engine struct {
	logger       *slog.Logger
	txRunner     TxRunner
	wallets      wallet.Repository
	categories   category.Repository
	transactions transaction.Repository
	goals        goal.Repository
	achievements achievement.Repository
	outbox       outbox.Repository
}

// NewEngine creates a ledger engine over the given repositories
func NewEngine(
	logger *slog.Logger,
	txRunner TxRunner,
	wallets wallet.Repository,
	categories category.Repository,
	transactions transaction.Repository,
	goals goal.Repository,
	achievements achievement.Repository,
	outboxRepo outbox.Repository,
) *Engine {
	return &Engine{
		logger:       logger,
		txRunner:     txRunner,
		wallets:      wallets,
		categories:   categories,
		transactions: transactions,
		goals:        goals,
		achievements: achievements,
		outbox:       outboxRepo,
	}
}

// CreateTransaction inserts the transaction and applies its signed amount to
// the wallet balance atomically. The wallet must belong to userID and the
// category must exist.
func (e *Engine) CreateTransaction(ctx context.Context, userID int64, t *transaction.Transaction) (*transaction.Transaction, error) {
	err := e.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		wallets := e.wallets.WithTx(tx)
		categories := e.categories.WithTx(tx)
		transactions := e.transactions.WithTx(tx)

		if _, err := wallets.GetForOwner(ctx, t.WalletID, userID); err != nil {
			return err
		}
		if _, err := categories.GetByID(ctx, t.CategoryID); err != nil {
			return err
		}

		if err := transactions.Create(ctx, t); err != nil {
			return err
		}

		if delta := t.SignedAmount(); delta != 0 {
			if err := wallets.AdjustBalance(ctx, t.WalletID, delta); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Transaction created",
		"transaction_id", t.ID,
		"user_id", userID,
		"wallet_id", t.WalletID,
		"type", t.Type,
		"amount", t.Amount,
	)
	return t, nil
}

// UpdateTransaction merges the patch into the stored transaction and
// reconciles wallet balances in the same atomic unit. When the wallet
// changes, the old wallet gets the old effect reversed and the new wallet
// gets the new effect applied; otherwise a single net delta is written.
func (e *Engine) UpdateTransaction(ctx context.Context, userID, id int64, patch transaction.Patch) (*transaction.Transaction, error) {
	var updated *transaction.Transaction
	err := e.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		wallets := e.wallets.WithTx(tx)
		categories := e.categories.WithTx(tx)
		transactions := e.transactions.WithTx(tx)

		existing, err := transactions.GetForOwner(ctx, id, userID)
		if err != nil {
			return err
		}

		merged, err := existing.Apply(patch)
		if err != nil {
			return err
		}

		if merged.WalletID != existing.WalletID {
			if _, err := wallets.GetForOwner(ctx, merged.WalletID, userID); err != nil {
				return err
			}
		}
		if merged.CategoryID != existing.CategoryID {
			if _, err := categories.GetByID(ctx, merged.CategoryID); err != nil {
				return err
			}
		}

		if err := transactions.Update(ctx, merged); err != nil {
			return err
		}

		oldEffect := existing.SignedAmount()
		newEffect := merged.SignedAmount()

		if merged.WalletID != existing.WalletID {
			if oldEffect != 0 {
				if err := wallets.AdjustBalance(ctx, existing.WalletID, -oldEffect); err != nil {
					return err
				}
			}
			if newEffect != 0 {
				if err := wallets.AdjustBalance(ctx, merged.WalletID, newEffect); err != nil {
					return err
				}
			}
		} else if delta := newEffect - oldEffect; delta != 0 {
			if err := wallets.AdjustBalance(ctx, merged.WalletID, delta); err != nil {
				return err
			}
		}

		updated = merged
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Transaction updated", "transaction_id", id, "user_id", userID)
	return updated, nil
}

// DeleteTransaction removes the transaction and reverses its effect on the
// wallet balance atomically.
func (e *Engine) DeleteTransaction(ctx context.Context, userID, id int64) error {
	err := e.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		wallets := e.wallets.WithTx(tx)
		transactions := e.transactions.WithTx(tx)

		existing, err := transactions.GetForOwner(ctx, id, userID)
		if err != nil {
			return err
		}

		if err := transactions.Delete(ctx, id); err != nil {
			return err
		}

		if effect := existing.SignedAmount(); effect != 0 {
			if err := wallets.AdjustBalance(ctx, existing.WalletID, -effect); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	e.logger.Info("Transaction deleted", "transaction_id", id, "user_id", userID)
	return nil
}

// ContributeToGoal adds amount to the goal's saved total. The first
// contribution that crosses the target latches completion, awards the
// achievement, and enqueues the goal-completed event, all in the same
// database transaction. Later contributions never re-trigger the award.
func (e *Engine) ContributeToGoal(ctx context.Context, userID, goalID int64, amount int64, correlationID string) (*ContributionResult, error) {
	if amount <= 0 {
		return nil, goal.ErrInvalidContribution
	}

	var result ContributionResult
	err := e.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		goals := e.goals.WithTx(tx)
		achievements := e.achievements.WithTx(tx)
		outboxRepo := e.outbox.WithTx(tx)

		if _, err := goals.GetForOwner(ctx, goalID, userID); err != nil {
			return err
		}

		updated, err := goals.IncrementAmount(ctx, goalID, amount)
		if err != nil {
			return err
		}
		result.Goal = updated

		if !updated.TargetReached() {
			return nil
		}

		latched, err := goals.MarkCompleted(ctx, goalID)
		if err != nil {
			return err
		}
		if !latched {
			// Already completed on an earlier contribution
			return nil
		}
		result.JustCompleted = true
		updated.IsCompleted = true

		award := achievement.NewGoalCompleted(userID, updated.Title)
		if err := achievements.Create(ctx, award); err != nil {
			return err
		}
		result.Achievement = award

		event := shared.NewGoalCompletedEvent(
			userID,
			updated.ID,
			updated.Title,
			updated.TargetAmount,
			updated.CurrentAmount,
			award.Points,
			correlationID,
		)
		message, err := outbox.NewGoalCompletedMessage(event)
		if err != nil {
			return err
		}
		return outboxRepo.Create(ctx, message)
	})
	if err != nil {
		return nil, err
	}

	if result.JustCompleted {
		e.logger.Info("Goal completed",
			"goal_id", goalID,
			"user_id", userID,
			"current_amount", result.Goal.CurrentAmount,
		)
	}
	return &result, nil
}
