// File: internal/announcement/service.go
package announcement

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
)

// Service provides announcement business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new announcement service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger.Named("announcement_service")}
}

// List returns a page of announcements, newest first, with the caller's read
// state attached.
func (s *Service) List(ctx context.Context, profileID uuid.UUID, page, pageSize int) ([]AnnouncementResponse, *common.Pagination, error) {
	announcements, total, err := s.repo.FindPage(ctx, page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uuid.UUID, len(announcements))
	for i := range announcements {
		ids[i] = announcements[i].ID
	}
	readSet, err := s.repo.FindReadIDs(ctx, profileID, ids)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]AnnouncementResponse, len(announcements))
	for i := range announcements {
		responses[i] = ToAnnouncementResponse(&announcements[i], readSet[announcements[i].ID])
	}
	return responses, common.NewPagination(total, page, pageSize), nil
}

// MarkRead records that the caller has seen an announcement.
func (s *Service) MarkRead(ctx context.Context, profileID, announcementID uuid.UUID) error {
	return s.repo.MarkRead(ctx, announcementID, profileID)
}

// MarkAllRead records every announcement as seen by the caller and returns
// how many were newly marked.
func (s *Service) MarkAllRead(ctx context.Context, profileID uuid.UUID) (int64, error) {
	marked, err := s.repo.MarkAllRead(ctx, profileID)
	if err != nil {
		return 0, err
	}
	if marked > 0 {
		s.logger.Debug("Announcements marked as read",
			zap.String("profileID", profileID.String()),
			zap.Int64("count", marked))
	}
	return marked, nil
}

// UnreadCount returns how many announcements the caller has not seen. The
// novidades menu badge uses it.
func (s *Service) UnreadCount(ctx context.Context, profileID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, profileID)
}
