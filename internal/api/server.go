// Package api assembles the HTTP server for the finance API.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fintrack-ledger/internal/api/handler"
	"github.com/fintrack-ledger/internal/api/service"
	"github.com/fintrack-ledger/internal/config"
	"github.com/gin-gonic/gin"
)

// Server handles HTTP requests and manages the application's lifecycle
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
	httpRouter *gin.Engine
}

// Services bundles everything the router needs
type Services struct {
	Wallets      service.WalletService
	Categories   service.CategoryService
	Transactions service.TransactionService
	Goals        service.GoalService
	Dashboard    service.DashboardService
	Activity     service.ActivityService
}

// NewServer creates and configures a new HTTP server with the given services
func NewServer(log *slog.Logger, cfg *config.Config, svcs Services) *Server {
	if cfg.Application.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := gin.New()

	walletHandler := handler.NewWalletHandler(log, svcs.Wallets)
	categoryHandler := handler.NewCategoryHandler(log, svcs.Categories)
	transactionHandler := handler.NewTransactionHandler(log, svcs.Transactions)
	goalHandler := handler.NewGoalHandler(log, svcs.Goals)
	dashboardHandler := handler.NewDashboardHandler(log, svcs.Dashboard)
	activityHandler := handler.NewActivityHandler(log, svcs.Activity)

	setupRouter(log, httpRouter, walletHandler, categoryHandler, transactionHandler, goalHandler, dashboardHandler, activityHandler)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		logger:     log,
		httpServer: httpServer,
		httpRouter: httpRouter,
	}
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server with a timeout
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.httpServer.WriteTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}

	return nil
}
