// Package handler exposes the HTTP handlers for the finance API. Handlers
// bind and validate requests, call the services, and translate domain
// errors into the response envelope.
package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/fintrack-ledger/internal/api/middleware"
	"github.com/fintrack-ledger/internal/api/service"
	"github.com/fintrack-ledger/internal/domain/wallet"
	"github.com/gin-gonic/gin"
)

// WalletHandler handles HTTP requests for wallet operations
type WalletHandler struct {
	walletService service.WalletService
	logger        *slog.Logger
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(logger *slog.Logger, walletService service.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		logger:        logger,
	}
}

// parseIDParam reads a positive int64 path parameter
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondBadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// Create handles creation of a new wallet
func (h *WalletHandler) Create(c *gin.Context) {
	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	w, err := h.walletService.Create(c.Request.Context(), userID, req.Name, req.Icon, wallet.Type(req.Type), req.InitialBalance, req.IsDefault)
	if err != nil {
		if errors.Is(err, wallet.ErrEmptyName) || errors.Is(err, wallet.ErrInvalidType) || errors.Is(err, wallet.ErrNegativeBalance) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create wallet", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, w)
}

// GetByID retrieves a wallet, returning 404 if it is missing or owned by
// another user
func (h *WalletHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	w, err := h.walletService.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		var notFound wallet.ErrWalletNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Wallet not found")
			return
		}
		h.logger.Error("Failed to get wallet", "id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, w)
}

// List returns the user's wallets together with their combined balance
func (h *WalletHandler) List(c *gin.Context) {
	list, err := h.walletService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.logger.Error("Failed to list wallets", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, list)
}

// Update changes wallet attributes
func (h *WalletHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	w, err := h.walletService.Update(c.Request.Context(), middleware.GetUserID(c), id, req.Name, req.Icon, wallet.Type(req.Type), req.IsDefault)
	if err != nil {
		var notFound wallet.ErrWalletNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Wallet not found")
		case errors.Is(err, wallet.ErrEmptyName), errors.Is(err, wallet.ErrInvalidType):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to update wallet", "id", id, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, w)
}

// OverrideBalance sets an absolute wallet balance outside the ledger engine
func (h *WalletHandler) OverrideBalance(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req OverrideBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	w, err := h.walletService.OverrideBalance(c.Request.Context(), middleware.GetUserID(c), id, req.Balance)
	if err != nil {
		var notFound wallet.ErrWalletNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Wallet not found")
		case errors.Is(err, wallet.ErrNegativeBalance):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to override wallet balance", "id", id, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, w)
}

// Delete removes a wallet, returning 409 while transactions still reference it
func (h *WalletHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.walletService.Delete(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		var notFound wallet.ErrWalletNotFound
		var hasTransactions wallet.ErrWalletHasTransactions
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Wallet not found")
		case errors.As(err, &hasTransactions):
			RespondConflict(c, hasTransactions.Error())
		default:
			h.logger.Error("Failed to delete wallet", "id", id, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondNoContent(c)
}
