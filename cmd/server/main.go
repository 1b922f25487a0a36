// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"salehunt_backend/internal/config"
	"salehunt_backend/internal/jobs"
	"salehunt_backend/internal/platform/database"
	"salehunt_backend/internal/platform/logger"
	"salehunt_backend/internal/proposal"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "sync-proposals" {
		runProposalSync()
		return
	}
	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	if cfg.DBAutoMigrate && cfg.DBMigrateURL != "" {
		if err := database.RunMigrations(cfg.DBMigrateURL); err != nil {
			log.Fatalf("FATAL: Failed to run database migrations: %v", err)
		}
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

// runProposalSync rebuilds the proposals search index once and exits. It is
// the manual counterpart of the scheduled reindex job.
func runProposalSync() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration for sync: %v", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger for sync: %v", err)
	}
	db, err := database.NewGORM(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database for sync", zap.Error(err))
	}
	defer database.CloseGORMDB(db)

	index, err := provideSearchIndex(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize search index for sync", zap.Error(err))
	}
	if index == nil {
		appLogger.Fatal("ELASTICSEARCH_URL is not set; nothing to sync against.")
	}

	repo := proposal.NewGORMRepository(db)
	job := jobs.NewProposalReindexJob(repo, index, appLogger, cfg)

	synced, failed, err := job.Reindex(context.Background())
	if err != nil {
		appLogger.Fatal("Proposal synchronization failed", zap.Error(err))
	}
	appLogger.Info("Proposal synchronization completed",
		zap.Int("synced", synced),
		zap.Int("failed", failed))
	if failed > 0 {
		os.Exit(1)
	}
}
