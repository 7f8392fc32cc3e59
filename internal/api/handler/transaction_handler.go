package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/fintrack-ledger/internal/api/middleware"
	"github.com/fintrack-ledger/internal/api/service"
	"github.com/fintrack-ledger/internal/domain/category"
	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/fintrack-ledger/internal/domain/wallet"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles HTTP requests for transaction operations
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// respondTransactionError maps ledger errors to HTTP responses shared by
// the mutation endpoints.
func (h *TransactionHandler) respondTransactionError(c *gin.Context, err error) {
	var txNotFound transaction.ErrTransactionNotFound
	var walletNotFound wallet.ErrWalletNotFound
	var categoryNotFound category.ErrCategoryNotFound
	switch {
	case errors.As(err, &txNotFound):
		RespondNotFound(c, "Transaction not found")
	case errors.As(err, &walletNotFound):
		RespondNotFound(c, "Wallet not found")
	case errors.As(err, &categoryNotFound):
		RespondNotFound(c, "Category not found")
	case errors.Is(err, transaction.ErrInvalidAmount),
		errors.Is(err, transaction.ErrInvalidType),
		errors.Is(err, transaction.ErrEmptyDescription):
		RespondBadRequest(c, err.Error())
	default:
		h.logger.Error("Transaction operation failed", "error", err)
		RespondInternalError(c)
	}
}

// Create records a transaction and adjusts the wallet balance atomically
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	t, err := transaction.New(userID, req.WalletID, req.CategoryID, req.Amount, transaction.Type(req.Type), req.Date, req.Description, req.Notes)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	created, err := h.transactionService.Create(c.Request.Context(), userID, t)
	if err != nil {
		h.respondTransactionError(c, err)
		return
	}

	RespondCreated(c, created)
}

// GetByID retrieves a transaction with its joined category and wallet info
func (h *TransactionHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	t, err := h.transactionService.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		h.respondTransactionError(c, err)
		return
	}

	RespondOK(c, t)
}

// List returns filtered, paginated transactions
func (h *TransactionHandler) List(c *gin.Context) {
	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter := transaction.Filter{
		Type:       transaction.Type(req.Type),
		CategoryID: req.CategoryID,
		WalletID:   req.WalletID,
		MinAmount:  req.MinAmount,
		MaxAmount:  req.MaxAmount,
		Search:     req.Search,
		Limit:      req.PerPage,
		Offset:     (req.Page - 1) * req.PerPage,
	}

	if req.StartDate != "" {
		start, err := time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			RespondBadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse(time.DateOnly, req.EndDate)
		if err != nil {
			RespondBadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		// Include the whole end day
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.EndDate = &end
	}

	transactions, total, err := h.transactionService.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		h.logger.Error("Failed to list transactions", "error", err)
		RespondInternalError(c)
		return
	}

	RespondWithPaginatedData(c, 200, transactions, req.Page, req.PerPage, int(total))
}

// Update applies a partial update and reconciles wallet balances
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	patch := transaction.Patch{
		WalletID:    req.WalletID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
		Notes:       req.Notes,
	}
	if req.Type != nil {
		txType := transaction.Type(*req.Type)
		patch.Type = &txType
	}

	updated, err := h.transactionService.Update(c.Request.Context(), middleware.GetUserID(c), id, patch)
	if err != nil {
		h.respondTransactionError(c, err)
		return
	}

	RespondOK(c, updated)
}

// Delete removes a transaction and reverses its balance effect
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.transactionService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		h.respondTransactionError(c, err)
		return
	}

	RespondNoContent(c)
}

// MonthlySummary returns the month's totals with previous-month trends.
// Accepts an optional ?month=YYYY-MM, defaulting to the current month.
func (h *TransactionHandler) MonthlySummary(c *gin.Context) {
	ref := time.Now()
	if monthParam := c.Query("month"); monthParam != "" {
		parsed, err := time.Parse("2006-01", monthParam)
		if err != nil {
			RespondBadRequest(c, "Invalid month, expected YYYY-MM")
			return
		}
		ref = parsed
	}

	summary, err := h.transactionService.MonthlySummary(c.Request.Context(), middleware.GetUserID(c), ref)
	if err != nil {
		h.logger.Error("Failed to build monthly summary", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, summary)
}

// CategorySummary returns per-category totals for a period
func (h *TransactionHandler) CategorySummary(c *gin.Context) {
	txType := transaction.Type(c.DefaultQuery("type", string(transaction.TypeExpense)))

	var from, to time.Time
	if startParam := c.Query("start_date"); startParam != "" {
		parsed, err := time.Parse(time.DateOnly, startParam)
		if err != nil {
			RespondBadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if endParam := c.Query("end_date"); endParam != "" {
		parsed, err := time.Parse(time.DateOnly, endParam)
		if err != nil {
			RespondBadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	totals, err := h.transactionService.CategorySummary(c.Request.Context(), middleware.GetUserID(c), txType, from, to)
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidType) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to build category summary", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, totals)
}
