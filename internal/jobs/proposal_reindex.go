// File: internal/jobs/proposal_reindex.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"salehunt_backend/internal/config"
	"salehunt_backend/internal/proposal"
)

const reindexBatchSize = 500

// ProposalReindexJob periodically rebuilds the proposals search index from
// the database, repairing any writes the request-time indexing missed.
type ProposalReindexJob struct {
	repo          proposal.Repository
	index         proposal.SearchIndex
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewProposalReindexJob creates a new ProposalReindexJob.
func NewProposalReindexJob(
	repo proposal.Repository,
	index proposal.SearchIndex,
	logger *zap.Logger,
	cfg *config.Config,
) *ProposalReindexJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &ProposalReindexJob{
		repo:          repo,
		index:         index,
		logger:        logger.Named("ProposalReindexJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *ProposalReindexJob) SetupAndStart() error {
	jobSpec := j.cfg.ProposalReindexSchedule // e.g. "@daily", "0 3 * * *"
	if jobSpec == "" {
		j.logger.Warn("Proposal reindex schedule not defined (PROPOSAL_REINDEX_SCHEDULE). Job will not run.")
		return nil
	}
	if j.index == nil {
		j.logger.Warn("Search index is not configured. Proposal reindex job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule proposal reindex job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Proposal reindex job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob walks all proposals in batches and bulk-indexes each batch.
func (j *ProposalReindexJob) runJob() {
	j.logger.Info("Starting proposal reindex run...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	totalSynced, totalFailed, err := j.Reindex(ctx)
	if err != nil {
		j.logger.Error("Proposal reindex run failed", zap.Error(err))
		return
	}
	j.logger.Info("Proposal reindex run completed",
		zap.Int("synced", totalSynced),
		zap.Int("failed", totalFailed))
}

// Reindex pages through every proposal and pushes it to the search index. It
// is exported so the server can trigger a full sync at startup.
func (j *ProposalReindexJob) Reindex(ctx context.Context) (int, int, error) {
	totalSynced := 0
	totalFailed := 0
	offset := 0

	for {
		batch, err := j.repo.FindBatch(ctx, offset, reindexBatchSize)
		if err != nil {
			return totalSynced, totalFailed, fmt.Errorf("failed to fetch proposal batch at offset %d: %w", offset, err)
		}
		if len(batch) == 0 {
			break
		}

		synced, failed, err := j.index.BulkIndex(ctx, batch)
		if err != nil {
			j.logger.Error("Bulk index request failed for batch",
				zap.Int("offset", offset), zap.Error(err))
		}
		totalSynced += synced
		totalFailed += failed
		offset += len(batch)

		if len(batch) < reindexBatchSize {
			break
		}
	}
	return totalSynced, totalFailed, nil
}

// Stop gracefully stops the cron scheduler.
func (j *ProposalReindexJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping proposal reindex job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Proposal reindex job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Proposal reindex job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	cl.zl.Info(msg, fields...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
