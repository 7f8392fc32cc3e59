package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fintrack-ledger/internal/api/handler"
	"github.com/fintrack-ledger/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	walletHandler *handler.WalletHandler,
	categoryHandler *handler.CategoryHandler,
	transactionHandler *handler.TransactionHandler,
	goalHandler *handler.GoalHandler,
	dashboardHandler *handler.DashboardHandler,
	activityHandler *handler.ActivityHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))

	// Health check endpoint for monitoring; not owner-scoped
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	// API v1 endpoints, all owner-scoped
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Identity())
	{
		wallets := v1.Group("/wallets")
		{
			wallets.GET("", walletHandler.List)
			wallets.POST("", walletHandler.Create)
			wallets.GET("/:id", walletHandler.GetByID)
			wallets.PUT("/:id", walletHandler.Update)
			wallets.PATCH("/:id/balance", walletHandler.OverrideBalance)
			wallets.DELETE("/:id", walletHandler.Delete)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.GET("/:id", categoryHandler.GetByID)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.POST("", transactionHandler.Create)
			transactions.GET("/summary/monthly", transactionHandler.MonthlySummary)
			transactions.GET("/summary/categories", transactionHandler.CategorySummary)
			transactions.GET("/:id", transactionHandler.GetByID)
			transactions.PUT("/:id", transactionHandler.Update)
			transactions.DELETE("/:id", transactionHandler.Delete)
		}

		goals := v1.Group("/goals")
		{
			goals.GET("", goalHandler.List)
			goals.POST("", goalHandler.Create)
			goals.GET("/:id", goalHandler.GetByID)
			goals.PUT("/:id", goalHandler.Update)
			goals.DELETE("/:id", goalHandler.Delete)
			goals.POST("/:id/contribute", goalHandler.Contribute)
		}

		v1.GET("/dashboard", dashboardHandler.Overview)
		v1.GET("/activity", activityHandler.List)
	}
}
