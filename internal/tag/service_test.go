// File: internal/tag/service_test.go
package tag

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/workspace"
)

type mockRepository struct {
	createFunc          func(ctx context.Context, t *Tag) error
	findByTextFunc      func(ctx context.Context, workspaceID uuid.UUID, text string) (*Tag, error)
	findByWorkspaceFunc func(ctx context.Context, workspaceID uuid.UUID) ([]Tag, error)
	deleteFunc          func(ctx context.Context, workspaceID, id uuid.UUID) error
}

func (m *mockRepository) Create(ctx context.Context, t *Tag) error {
	return m.createFunc(ctx, t)
}
func (m *mockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Tag, error) {
	return nil, common.ErrNotFound
}
func (m *mockRepository) FindByText(ctx context.Context, workspaceID uuid.UUID, text string) (*Tag, error) {
	return m.findByTextFunc(ctx, workspaceID, text)
}
func (m *mockRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Tag, error) {
	return m.findByWorkspaceFunc(ctx, workspaceID)
}
func (m *mockRepository) FindByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]Tag, error) {
	return nil, nil
}
func (m *mockRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	return m.deleteFunc(ctx, workspaceID, id)
}

type mockWorkspaces struct {
	ws *workspace.Workspace
}

func (m *mockWorkspaces) GetDefault(ctx context.Context, ownerID uuid.UUID) (*workspace.Workspace, error) {
	return m.ws, nil
}

func testWorkspace() *workspace.Workspace {
	return &workspace.Workspace{ID: uuid.New()}
}

func TestFindOrCreateReturnsExistingTag(t *testing.T) {
	ws := testWorkspace()
	existing := &Tag{BaseModel: common.BaseModel{ID: uuid.New()}, WorkspaceID: ws.ID, Text: "Consultoria", Color: "#FF8800"}
	repo := &mockRepository{
		findByTextFunc: func(ctx context.Context, workspaceID uuid.UUID, text string) (*Tag, error) {
			assert.Equal(t, ws.ID, workspaceID)
			assert.Equal(t, "Consultoria", text)
			return existing, nil
		},
		createFunc: func(ctx context.Context, tg *Tag) error {
			t.Fatal("Create should not be called when the tag exists")
			return nil
		},
	}
	svc := NewService(repo, &mockWorkspaces{ws: ws}, zap.NewNop())

	got, err := svc.FindOrCreate(context.Background(), uuid.New(), CreateTagRequest{Text: "  Consultoria  "})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
}

func TestFindOrCreateCreatesWithDefaultColor(t *testing.T) {
	ws := testWorkspace()
	var created *Tag
	repo := &mockRepository{
		findByTextFunc: func(ctx context.Context, workspaceID uuid.UUID, text string) (*Tag, error) {
			return nil, common.ErrNotFound.WithDetails("Tag not found.")
		},
		createFunc: func(ctx context.Context, tg *Tag) error {
			created = tg
			return nil
		},
	}
	svc := NewService(repo, &mockWorkspaces{ws: ws}, zap.NewNop())

	got, err := svc.FindOrCreate(context.Background(), uuid.New(), CreateTagRequest{Text: "Urgente"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, DefaultColor, got.Color)
	assert.Equal(t, ws.ID, got.WorkspaceID)
}

func TestFindOrCreateLosesRaceGracefully(t *testing.T) {
	ws := testWorkspace()
	winner := &Tag{BaseModel: common.BaseModel{ID: uuid.New()}, WorkspaceID: ws.ID, Text: "Urgente"}
	lookups := 0
	repo := &mockRepository{
		findByTextFunc: func(ctx context.Context, workspaceID uuid.UUID, text string) (*Tag, error) {
			lookups++
			if lookups == 1 {
				return nil, common.ErrNotFound.WithDetails("Tag not found.")
			}
			return winner, nil
		},
		createFunc: func(ctx context.Context, tg *Tag) error {
			return common.ErrConflict.WithDetails("Tag with this text already exists in the workspace.")
		},
	}
	svc := NewService(repo, &mockWorkspaces{ws: ws}, zap.NewNop())

	got, err := svc.FindOrCreate(context.Background(), uuid.New(), CreateTagRequest{Text: "Urgente"})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
	assert.Equal(t, 2, lookups)
}

func TestFindOrCreateRejectsBlankText(t *testing.T) {
	svc := NewService(&mockRepository{}, &mockWorkspaces{ws: testWorkspace()}, zap.NewNop())

	_, err := svc.FindOrCreate(context.Background(), uuid.New(), CreateTagRequest{Text: "   "})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.Code, apiErr.Code)
}
