package service

import (
	"context"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/fintrack-ledger/internal/domain/wallet"
	"github.com/fintrack-ledger/internal/ledger"
	"github.com/jackc/pgx/v5"
)

// WalletServiceImpl implements the WalletService interface
type WalletServiceImpl struct {
	logger       *slog.Logger
	txRunner     ledger.TxRunner
	wallets      wallet.Repository
	transactions transaction.Repository
}

// NewWalletService creates a new wallet service
func NewWalletService(logger *slog.Logger, txRunner ledger.TxRunner, wallets wallet.Repository, transactions transaction.Repository) WalletService {
	return &WalletServiceImpl{
		logger:       logger,
		txRunner:     txRunner,
		wallets:      wallets,
		transactions: transactions,
	}
}

// Create adds a wallet. Making it the default clears the flag on the user's
// other wallets inside the same transaction, keeping at most one default.
func (s *WalletServiceImpl) Create(ctx context.Context, userID int64, name, icon string, walletType wallet.Type, initialBalance int64, isDefault bool) (*wallet.Wallet, error) {
	w, err := wallet.New(userID, name, icon, walletType, initialBalance, isDefault)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		wallets := s.wallets.WithTx(tx)
		if err := wallets.Create(ctx, w); err != nil {
			return err
		}
		if w.IsDefault {
			return wallets.ClearDefault(ctx, userID, w.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Wallet created", "wallet_id", w.ID, "user_id", userID)
	return w, nil
}

func (s *WalletServiceImpl) Get(ctx context.Context, userID, id int64) (*wallet.Wallet, error) {
	return s.wallets.GetForOwner(ctx, id, userID)
}

func (s *WalletServiceImpl) List(ctx context.Context, userID int64) (*WalletList, error) {
	wallets, err := s.wallets.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, w := range wallets {
		total += w.Balance
	}

	return &WalletList{
		Wallets:      wallets,
		TotalBalance: total,
	}, nil
}

// Update changes wallet attributes. The balance never moves here; that is
// the ledger engine's job.
func (s *WalletServiceImpl) Update(ctx context.Context, userID, id int64, name, icon string, walletType wallet.Type, isDefault bool) (*wallet.Wallet, error) {
	if name == "" {
		return nil, wallet.ErrEmptyName
	}
	if !walletType.Valid() {
		return nil, wallet.ErrInvalidType
	}

	var updated *wallet.Wallet
	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		wallets := s.wallets.WithTx(tx)

		w, err := wallets.GetForOwner(ctx, id, userID)
		if err != nil {
			return err
		}

		w.Name = name
		w.Icon = icon
		w.Type = walletType
		w.IsDefault = isDefault

		if err := wallets.Update(ctx, w); err != nil {
			return err
		}
		if w.IsDefault {
			if err := wallets.ClearDefault(ctx, userID, w.ID); err != nil {
				return err
			}
		}

		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Wallet updated", "wallet_id", id, "user_id", userID)
	return updated, nil
}

// OverrideBalance replaces the running balance with an absolute value
func (s *WalletServiceImpl) OverrideBalance(ctx context.Context, userID, id int64, balance int64) (*wallet.Wallet, error) {
	if balance < 0 {
		return nil, wallet.ErrNegativeBalance
	}

	if err := s.wallets.SetBalance(ctx, id, userID, balance); err != nil {
		return nil, err
	}

	s.logger.Info("Wallet balance overridden", "wallet_id", id, "user_id", userID, "balance", balance)
	return s.wallets.GetForOwner(ctx, id, userID)
}

// Delete removes a wallet after checking no transaction still references
// it. Deleting the default wallet hands the flag to the oldest remaining
// wallet in the same transaction.
func (s *WalletServiceImpl) Delete(ctx context.Context, userID, id int64) error {
	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		wallets := s.wallets.WithTx(tx)
		transactions := s.transactions.WithTx(tx)

		w, err := wallets.GetForOwner(ctx, id, userID)
		if err != nil {
			return err
		}

		count, err := transactions.CountByWallet(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return wallet.ErrWalletHasTransactions{ID: id, Count: count}
		}

		if err := wallets.Delete(ctx, id, userID); err != nil {
			return err
		}

		if w.IsDefault {
			return wallets.PromoteOldest(ctx, userID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Wallet deleted", "wallet_id", id, "user_id", userID)
	return nil
}
