// File: internal/announcement/service_test.go
package announcement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepository struct {
	findPageFunc    func(ctx context.Context, page, pageSize int) ([]Announcement, int64, error)
	findReadIDsFunc func(ctx context.Context, profileID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	markAllReadFunc func(ctx context.Context, profileID uuid.UUID) (int64, error)
}

func (m *mockRepository) Create(ctx context.Context, a *Announcement) error { return nil }
func (m *mockRepository) FindPage(ctx context.Context, page, pageSize int) ([]Announcement, int64, error) {
	return m.findPageFunc(ctx, page, pageSize)
}
func (m *mockRepository) FindReadIDs(ctx context.Context, profileID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	return m.findReadIDsFunc(ctx, profileID, ids)
}
func (m *mockRepository) MarkRead(ctx context.Context, announcementID, profileID uuid.UUID) error {
	return nil
}
func (m *mockRepository) MarkAllRead(ctx context.Context, profileID uuid.UUID) (int64, error) {
	return m.markAllReadFunc(ctx, profileID)
}
func (m *mockRepository) CountUnread(ctx context.Context, profileID uuid.UUID) (int64, error) {
	return 0, nil
}

func TestListAttachesReadState(t *testing.T) {
	read := Announcement{ID: uuid.New(), Title: "Novo painel", PublishedAt: time.Now()}
	unread := Announcement{ID: uuid.New(), Title: "Busca de propostas", PublishedAt: time.Now().Add(-time.Hour)}
	repo := &mockRepository{
		findPageFunc: func(ctx context.Context, page, pageSize int) ([]Announcement, int64, error) {
			return []Announcement{read, unread}, 2, nil
		},
		findReadIDsFunc: func(ctx context.Context, profileID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
			assert.Len(t, ids, 2)
			return map[uuid.UUID]bool{read.ID: true}, nil
		},
	}
	svc := NewService(repo, zap.NewNop())

	responses, pagination, err := svc.List(context.Background(), uuid.New(), 1, 10)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.True(t, responses[0].IsRead)
	assert.False(t, responses[1].IsRead)
	assert.Equal(t, int64(2), pagination.TotalItems)
}

func TestMarkAllReadReturnsNewlyMarkedCount(t *testing.T) {
	repo := &mockRepository{
		markAllReadFunc: func(ctx context.Context, profileID uuid.UUID) (int64, error) {
			return 3, nil
		},
	}
	svc := NewService(repo, zap.NewNop())

	marked, err := svc.MarkAllRead(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)
}
