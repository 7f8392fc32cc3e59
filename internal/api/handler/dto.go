package handler

import "time"

// CreateWalletRequest represents a request to create a new wallet
type CreateWalletRequest struct {
	Name           string `json:"name" binding:"required"`
	Icon           string `json:"icon,omitempty"`
	Type           string `json:"type" binding:"required,oneof=cash bank card savings"`
	InitialBalance int64  `json:"initial_balance" binding:"min=0"`
	IsDefault      bool   `json:"is_default"`
}

// UpdateWalletRequest represents a request to update wallet attributes
type UpdateWalletRequest struct {
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon,omitempty"`
	Type      string `json:"type" binding:"required,oneof=cash bank card savings"`
	IsDefault bool   `json:"is_default"`
}

// OverrideBalanceRequest sets an absolute wallet balance
type OverrideBalanceRequest struct {
	Balance int64 `json:"balance" binding:"min=0"`
}

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
	Type  string `json:"type" binding:"required,oneof=income expense both"`
}

// CreateTransactionRequest represents a request to create a new transaction
type CreateTransactionRequest struct {
	WalletID    int64     `json:"wallet_id" binding:"required,gt=0"`
	CategoryID  int64     `json:"category_id" binding:"required,gt=0"`
	Amount      int64     `json:"amount" binding:"required,gt=0"`
	Type        string    `json:"type" binding:"required,oneof=income expense transfer"`
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Notes       string    `json:"notes,omitempty"`
}

// UpdateTransactionRequest carries the optional fields of a transaction
// update. Absent fields keep their previous values.
type UpdateTransactionRequest struct {
	WalletID    *int64     `json:"wallet_id,omitempty" binding:"omitempty,gt=0"`
	CategoryID  *int64     `json:"category_id,omitempty" binding:"omitempty,gt=0"`
	Amount      *int64     `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Type        *string    `json:"type,omitempty" binding:"omitempty,oneof=income expense transfer"`
	Date        *time.Time `json:"date,omitempty"`
	Description *string    `json:"description,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// ListTransactionsRequest represents transaction list filters
type ListTransactionsRequest struct {
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Type       string `form:"type" binding:"omitempty,oneof=income expense transfer"`
	CategoryID int64  `form:"category_id" binding:"omitempty,gt=0"`
	WalletID   int64  `form:"wallet_id" binding:"omitempty,gt=0"`
	MinAmount  *int64 `form:"min_amount" binding:"omitempty,min=0"`
	MaxAmount  *int64 `form:"max_amount" binding:"omitempty,min=0"`
	Search     string `form:"search"`
	Page       int    `form:"page,default=1" binding:"min=1"`
	PerPage    int    `form:"per_page,default=20" binding:"min=1,max=100"`
}

// CreateGoalRequest represents a request to create a new savings goal
type CreateGoalRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description,omitempty"`
	TargetAmount int64      `json:"target_amount" binding:"required,gt=0"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Icon         string     `json:"icon,omitempty"`
	Color        string     `json:"color,omitempty"`
}

// UpdateGoalRequest represents a request to update goal attributes
type UpdateGoalRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description,omitempty"`
	TargetAmount int64      `json:"target_amount" binding:"required,gt=0"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Icon         string     `json:"icon,omitempty"`
	Color        string     `json:"color,omitempty"`
}

// ContributeRequest adds funds to a savings goal
type ContributeRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}
