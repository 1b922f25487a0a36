// File: internal/jobs/proposal_reindex_test.go
package jobs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salehunt_backend/internal/client"
	"salehunt_backend/internal/common"
	"salehunt_backend/internal/config"
	"salehunt_backend/internal/proposal"
	"salehunt_backend/internal/tag"
)

type batchRepository struct {
	proposal.Repository
	proposals []proposal.Proposal
}

func (r *batchRepository) FindBatch(ctx context.Context, offset, limit int) ([]proposal.Proposal, error) {
	if offset >= len(r.proposals) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.proposals) {
		end = len(r.proposals)
	}
	return r.proposals[offset:end], nil
}

type countingIndex struct {
	batches [][]proposal.Proposal
}

func (f *countingIndex) Index(ctx context.Context, p *proposal.Proposal) error { return nil }
func (f *countingIndex) Delete(ctx context.Context, id uuid.UUID) error        { return nil }
func (f *countingIndex) Search(ctx context.Context, workspaceID uuid.UUID, query string, page, pageSize int) ([]uuid.UUID, int64, error) {
	return nil, 0, nil
}
func (f *countingIndex) BulkIndex(ctx context.Context, proposals []proposal.Proposal) (int, int, error) {
	f.batches = append(f.batches, proposals)
	return len(proposals), 0, nil
}

func makeProposals(n int) []proposal.Proposal {
	proposals := make([]proposal.Proposal, n)
	for i := range proposals {
		proposals[i] = proposal.Proposal{
			BaseModel:   common.BaseModel{ID: uuid.New()},
			WorkspaceID: uuid.New(),
			Title:       "Proposta",
			Clients:     []client.Client{},
			Tags:        []tag.Tag{},
		}
	}
	return proposals
}

func TestReindexWalksAllBatches(t *testing.T) {
	repo := &batchRepository{proposals: makeProposals(reindexBatchSize + 3)}
	index := &countingIndex{}
	job := NewProposalReindexJob(repo, index, zap.NewNop(), &config.Config{})

	synced, failed, err := job.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reindexBatchSize+3, synced)
	assert.Equal(t, 0, failed)
	require.Len(t, index.batches, 2)
	assert.Len(t, index.batches[0], reindexBatchSize)
	assert.Len(t, index.batches[1], 3)
}

func TestSetupSkipsWhenScheduleMissing(t *testing.T) {
	job := NewProposalReindexJob(&batchRepository{}, &countingIndex{}, zap.NewNop(), &config.Config{})
	assert.NoError(t, job.SetupAndStart())
}
