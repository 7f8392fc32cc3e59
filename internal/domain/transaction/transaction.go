package transaction

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrInvalidAmount    = errors.New("transaction amount must be positive")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyDescription = errors.New("transaction description cannot be empty")
)

// Type defines the direction of a transaction
type Type string

const (
	TypeIncome   Type = "income"
	TypeExpense  Type = "expense"
	TypeTransfer Type = "transfer"
)

func (t Type) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

// CategoryInfo carries the category fields joined into transaction reads
type CategoryInfo struct {
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// WalletInfo carries the wallet fields joined into transaction reads
type WalletInfo struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// Transaction is a single ledger movement. Amount is always positive; the
// balance contribution is derived via SignedAmount.
type Transaction struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	WalletID    int64     `json:"wallet_id"`
	CategoryID  int64     `json:"category_id"`
	Amount      int64     `json:"amount"` // Stored in cents/minor units
	Type        Type      `json:"type"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Populated on read paths only
	Category *CategoryInfo `json:"category,omitempty"`
	Wallet   *WalletInfo   `json:"wallet,omitempty"`
}

// New creates a transaction after validating amount and type
func New(userID, walletID, categoryID int64, amount int64, txType Type, date time.Time, description, notes string) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !txType.Valid() {
		return nil, ErrInvalidType
	}
	if description == "" {
		return nil, ErrEmptyDescription
	}

	now := time.Now()
	return &Transaction{
		UserID:      userID,
		WalletID:    walletID,
		CategoryID:  categoryID,
		Amount:      amount,
		Type:        txType,
		Date:        date,
		Description: description,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SignedAmount is the transaction's contribution to its wallet balance:
// positive for income, negative for expense, zero for transfers.
func (t *Transaction) SignedAmount() int64 {
	switch t.Type {
	case TypeIncome:
		return t.Amount
	case TypeExpense:
		return -t.Amount
	default:
		return 0
	}
}

// Patch holds the optional fields of a transaction update. Nil fields keep
// their previous values.
type Patch struct {
	WalletID    *int64
	CategoryID  *int64
	Amount      *int64
	Type        *Type
	Date        *time.Time
	Description *string
	Notes       *string
}

// Apply merges the patch into a copy of t, validating changed fields.
// The receiver is not modified.
func (t *Transaction) Apply(p Patch) (*Transaction, error) {
	merged := *t
	if p.WalletID != nil {
		merged.WalletID = *p.WalletID
	}
	if p.CategoryID != nil {
		merged.CategoryID = *p.CategoryID
	}
	if p.Amount != nil {
		if *p.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		merged.Amount = *p.Amount
	}
	if p.Type != nil {
		if !p.Type.Valid() {
			return nil, ErrInvalidType
		}
		merged.Type = *p.Type
	}
	if p.Date != nil {
		merged.Date = *p.Date
	}
	if p.Description != nil {
		if *p.Description == "" {
			return nil, ErrEmptyDescription
		}
		merged.Description = *p.Description
	}
	if p.Notes != nil {
		merged.Notes = *p.Notes
	}
	merged.UpdatedAt = time.Now()
	merged.Category = nil
	merged.Wallet = nil
	return &merged, nil
}

// Filter narrows transaction listings. Zero values mean "no constraint";
// every set field maps to exactly one WHERE clause.
type Filter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Type       Type
	CategoryID int64
	WalletID   int64
	MinAmount  *int64
	MaxAmount  *int64
	Search     string
	Limit      int
	Offset     int
}

// MonthlyTotals aggregates one month of activity
type MonthlyTotals struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Count   int64 `json:"count"`
}

// Balance is the month's net result
func (m MonthlyTotals) Balance() int64 {
	return m.Income - m.Expense
}

// CategoryTotal aggregates transactions of one category over a period
type CategoryTotal struct {
	CategoryID int64   `json:"category_id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon,omitempty"`
	Color      string  `json:"color,omitempty"`
	Amount     int64   `json:"amount"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}
