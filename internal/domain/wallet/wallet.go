package wallet

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrEmptyName       = errors.New("wallet name cannot be empty")
	ErrInvalidType     = errors.New("invalid wallet type")
	ErrNegativeBalance = errors.New("initial balance cannot be negative")
)

// Type defines the kind of wallet a user can create
type Type string

const (
	TypeCash    Type = "cash"
	TypeBank    Type = "bank"
	TypeCard    Type = "card"
	TypeSavings Type = "savings"
)

// Valid reports whether t is a known wallet type
func (t Type) Valid() bool {
	switch t {
	case TypeCash, TypeBank, TypeCard, TypeSavings:
		return true
	}
	return false
}

// Wallet represents a user's money container. Balance is a denormalized
// running total in minor units; it is mutated only by the ledger engine or
// the explicit balance-override operation.
type Wallet struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	Type      Type      `json:"type"`
	Balance   int64     `json:"balance"` // Stored in cents/minor units
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a wallet for the given owner after validating its fields
func New(userID int64, name, icon string, walletType Type, initialBalance int64, isDefault bool) (*Wallet, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !walletType.Valid() {
		return nil, ErrInvalidType
	}
	if initialBalance < 0 {
		return nil, ErrNegativeBalance
	}

	now := time.Now()
	return &Wallet{
		UserID:    userID,
		Name:      name,
		Icon:      icon,
		Type:      walletType,
		Balance:   initialBalance,
		IsDefault: isDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
