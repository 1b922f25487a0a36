// File: cmd/server/providers.go
package main

import (
	"log"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"salehunt_backend/internal/config"
	"salehunt_backend/internal/platform/database"
	platformElasticsearch "salehunt_backend/internal/platform/elasticsearch"
	"salehunt_backend/internal/proposal"
	"salehunt_backend/internal/session"
)

// provideSearchIndex builds the Elasticsearch-backed proposal index and
// bootstraps the mapping. Without ELASTICSEARCH_URL the app runs with search
// disabled rather than failing startup.
func provideSearchIndex(cfg *config.Config, logger *zap.Logger) (proposal.SearchIndex, error) {
	if cfg.ElasticsearchURL == "" {
		logger.Warn("ELASTICSEARCH_URL is not set. Proposal search will be unavailable.")
		return nil, nil
	}

	esClient, err := platformElasticsearch.NewClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := platformElasticsearch.CreateProposalsIndexIfNotExists(esClient, logger); err != nil {
		return nil, err
	}
	return proposal.NewESIndexer(esClient, logger), nil
}

// provideRevocationService builds the in-memory token revocation list.
func provideRevocationService() session.RevocationService {
	return session.NewInMemoryRevocationService(session.InMemoryRevocationConfig{
		DefaultExpiration: 2 * time.Hour,
		CleanupInterval:   30 * time.Minute,
	})
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
