// File: internal/proposal/indexer.go
package proposal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/platform/elasticsearch"
)

// SearchIndex abstracts the proposal search backend so services and jobs can
// run against a fake in tests.
type SearchIndex interface {
	Index(ctx context.Context, p *Proposal) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, workspaceID uuid.UUID, query string, page, pageSize int) ([]uuid.UUID, int64, error)
	BulkIndex(ctx context.Context, proposals []Proposal) (synced, failed int, err error)
}

// ESIndexer implements SearchIndex against Elasticsearch.
type ESIndexer struct {
	es     *elasticsearch.ESClientWrapper
	logger *zap.Logger
}

var _ SearchIndex = (*ESIndexer)(nil)

// NewESIndexer creates a new Elasticsearch-backed proposal indexer.
func NewESIndexer(es *elasticsearch.ESClientWrapper, logger *zap.Logger) *ESIndexer {
	return &ESIndexer{es: es, logger: logger.Named("proposal_indexer")}
}

// toSearchDoc converts a proposal to its Elasticsearch document. Clients and
// tags must be preloaded.
func toSearchDoc(p *Proposal) (string, error) {
	clientNames := make([]string, len(p.Clients))
	for i := range p.Clients {
		clientNames[i] = p.Clients[i].Name
	}
	tagTexts := make([]string, len(p.Tags))
	for i := range p.Tags {
		tagTexts[i] = p.Tags[i].Text
	}

	doc := map[string]interface{}{
		"title":        p.Title,
		"description":  p.Description,
		"workspace_id": p.WorkspaceID.String(),
		"status":       string(p.Status),
		"value_cents":  p.ValueCents,
		"deliverables": []string(p.Deliverables),
		"client_names": clientNames,
		"tags":         tagTexts,
		"valid_until":  p.ValidUntil,
		"created_at":   p.CreatedAt,
		"updated_at":   p.UpdatedAt,
	}

	docBytes, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("error marshalling proposal to JSON for ES: %w", err)
	}
	return string(docBytes), nil
}

// Index writes or overwrites a single proposal document.
func (ix *ESIndexer) Index(ctx context.Context, p *Proposal) error {
	docJSON, err := toSearchDoc(p)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      elasticsearch.ProposalsIndexName,
		DocumentID: p.ID.String(),
		Body:       strings.NewReader(docJSON),
	}
	res, err := req.Do(ctx, ix.es.Client)
	if err != nil {
		return fmt.Errorf("es index request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("es index request for proposal %s: status %s", p.ID, res.Status())
	}
	return nil
}

// Delete removes a proposal document. A missing document is not an error.
func (ix *ESIndexer) Delete(ctx context.Context, id uuid.UUID) error {
	req := esapi.DeleteRequest{
		Index:      elasticsearch.ProposalsIndexName,
		DocumentID: id.String(),
	}
	res, err := req.Do(ctx, ix.es.Client)
	if err != nil {
		return fmt.Errorf("es delete request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete request for proposal %s: status %s", id, res.Status())
	}
	return nil
}

// Search runs a free-text query scoped to the workspace and returns matching
// proposal ids in relevance order.
func (ix *ESIndexer) Search(ctx context.Context, workspaceID uuid.UUID, query string, page, pageSize int) ([]uuid.UUID, int64, error) {
	esQuery := map[string]interface{}{
		"from": (page - 1) * pageSize,
		"size": pageSize,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"workspace_id": workspaceID.String()}},
				},
				"must": []interface{}{
					map[string]interface{}{"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"title^3", "description", "client_names^2", "tags^2", "deliverables"},
						"type":   "best_fields",
					}},
				},
			},
		},
	}

	queryBytes, err := json.Marshal(esQuery)
	if err != nil {
		return nil, 0, fmt.Errorf("error marshalling search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{elasticsearch.ProposalsIndexName},
		Body:  strings.NewReader(string(queryBytes)),
	}
	res, err := req.Do(ctx, ix.es.Client)
	if err != nil {
		return nil, 0, fmt.Errorf("es search request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, 0, fmt.Errorf("es search request: status %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, fmt.Errorf("error decoding search response: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			ix.logger.Warn("Search hit has a non-uuid document id", zap.String("docID", hit.ID))
			continue
		}
		ids = append(ids, id)
	}
	return ids, parsed.Hits.Total.Value, nil
}

// BulkIndex writes a batch of proposal documents in one request. Individual
// document failures are logged and counted rather than aborting the batch.
func (ix *ESIndexer) BulkIndex(ctx context.Context, proposals []Proposal) (int, int, error) {
	if len(proposals) == 0 {
		return 0, 0, nil
	}

	var body strings.Builder
	ids := make([]string, 0, len(proposals))
	failed := 0

	for i := range proposals {
		p := &proposals[i]
		docJSON, err := toSearchDoc(p)
		if err != nil {
			ix.logger.Error("Failed to convert proposal to search document",
				zap.String("proposalID", p.ID.String()), zap.Error(err))
			failed++
			continue
		}
		fmt.Fprintf(&body, "{ \"index\" : { \"_index\" : %q, \"_id\" : %q } }\n", elasticsearch.ProposalsIndexName, p.ID.String())
		body.WriteString(docJSON)
		body.WriteString("\n")
		ids = append(ids, p.ID.String())
	}

	if body.Len() == 0 {
		return 0, failed, nil
	}

	req := esapi.BulkRequest{Body: strings.NewReader(body.String())}
	res, err := req.Do(ctx, ix.es.Client)
	if err != nil {
		return 0, failed + len(ids), fmt.Errorf("es bulk request: %w", err)
	}
	defer res.Body.Close()

	var parsed struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int         `json:"status"`
			Error  interface{} `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, failed + len(ids), fmt.Errorf("error decoding bulk response: %w", err)
	}

	synced := 0
	for i, item := range parsed.Items {
		indexed := item["index"]
		if indexed.Error != nil {
			failed++
			docID := "unknown"
			if i < len(ids) {
				docID = ids[i]
			}
			ix.logger.Error("Failed to index proposal in bulk batch",
				zap.String("proposalID", docID), zap.Any("error", indexed.Error))
			continue
		}
		synced++
	}
	return synced, failed, nil
}
