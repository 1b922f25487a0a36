// File: internal/platform/elasticsearch/index.go
package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

const ProposalsIndexName = "proposals"

// defineProposalsMapping returns the JSON mapping for the proposals index.
func defineProposalsMapping() (string, error) {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"title":        map[string]interface{}{"type": "text", "fields": map[string]interface{}{"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256}}},
				"description":  map[string]interface{}{"type": "text"},
				"workspace_id": map[string]interface{}{"type": "keyword"},
				"status":       map[string]interface{}{"type": "keyword"},
				"value_cents":  map[string]interface{}{"type": "long"},
				"deliverables": map[string]interface{}{"type": "text"},
				"client_names": map[string]interface{}{"type": "text"},
				"tags":         map[string]interface{}{"type": "keyword"},
				"valid_until":  map[string]interface{}{"type": "date"},
				"created_at":   map[string]interface{}{"type": "date"},
				"updated_at":   map[string]interface{}{"type": "date"},
			},
		},
	}
	mappingBytes, err := json.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("error marshalling proposals mapping to JSON: %w", err)
	}
	return string(mappingBytes), nil
}

// CreateProposalsIndexIfNotExists creates the proposals index with its mapping
// when it is missing.
func CreateProposalsIndexIfNotExists(client *ESClientWrapper, logger *zap.Logger) error {
	ctx := context.Background()
	log := logger.Named("elasticsearch_index_setup")

	req := esapi.IndicesExistsRequest{
		Index: []string{ProposalsIndexName},
	}
	res, err := req.Do(ctx, client.Client)
	if err != nil {
		log.Error("Error checking if proposals index exists", zap.Error(err))
		return fmt.Errorf("error checking if proposals index exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		log.Info("Proposals index already exists", zap.String("index_name", ProposalsIndexName))
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		log.Error("Unexpected status checking proposals index",
			zap.String("status", res.Status()),
			zap.String("index_name", ProposalsIndexName),
		)
		return fmt.Errorf("error checking if proposals index exists: status %s", res.Status())
	}

	mappingJSON, err := defineProposalsMapping()
	if err != nil {
		log.Error("Failed to define proposals mapping", zap.Error(err))
		return err
	}

	createReq := esapi.IndicesCreateRequest{
		Index: ProposalsIndexName,
		Body:  strings.NewReader(mappingJSON),
	}
	createRes, err := createReq.Do(ctx, client.Client)
	if err != nil {
		log.Error("Error creating proposals index", zap.Error(err), zap.String("index_name", ProposalsIndexName))
		return fmt.Errorf("error creating proposals index %s: %w", ProposalsIndexName, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		var errorBody map[string]interface{}
		if err := json.NewDecoder(createRes.Body).Decode(&errorBody); err != nil {
			log.Error("Failed to parse proposals index creation error response", zap.Error(err), zap.String("status", createRes.Status()))
		} else {
			log.Error("Failed to create proposals index",
				zap.String("status", createRes.Status()),
				zap.Any("error_details", errorBody),
			)
		}
		return fmt.Errorf("failed to create proposals index %s: status %s", ProposalsIndexName, createRes.Status())
	}

	log.Info("Proposals index created successfully", zap.String("index_name", ProposalsIndexName))
	return nil
}
