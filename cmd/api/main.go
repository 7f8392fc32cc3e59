package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fintrack-ledger/internal/api"
	"github.com/fintrack-ledger/internal/api/service"
	"github.com/fintrack-ledger/internal/config"
	"github.com/fintrack-ledger/internal/data/mongo"
	"github.com/fintrack-ledger/internal/data/postgres"
	"github.com/fintrack-ledger/internal/ledger"
	"github.com/fintrack-ledger/internal/logger"
	"github.com/fintrack-ledger/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	walletRepo := postgres.NewWalletRepository(log, postgresDB)
	categoryRepo := postgres.NewCategoryRepository(log, postgresDB)
	transactionRepo := postgres.NewTransactionRepository(log, postgresDB)
	goalRepo := postgres.NewGoalRepository(log, postgresDB)
	achievementRepo := postgres.NewAchievementRepository(log, postgresDB)
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)

	activityRepo, err := mongo.NewActivityRepository(appCtx, log, mongoDB)
	if err != nil {
		log.Error("Failed to initialize activity repository", "error", err)
		os.Exit(1)
	}

	// Initialize the ledger engine and services
	engine := ledger.NewEngine(log, postgresDB, walletRepo, categoryRepo, transactionRepo, goalRepo, achievementRepo, outboxRepo)

	services := api.Services{
		Wallets:      service.NewWalletService(log, postgresDB, walletRepo, transactionRepo),
		Categories:   service.NewCategoryService(log, categoryRepo),
		Transactions: service.NewTransactionService(log, engine, transactionRepo),
		Goals:        service.NewGoalService(log, engine, goalRepo),
		Dashboard:    service.NewDashboardService(log, walletRepo, transactionRepo, goalRepo),
		Activity:     service.NewActivityService(log, activityRepo),
	}

	// Initialize REST server
	server := api.NewServer(log, cfg, services)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
