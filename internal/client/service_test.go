// File: internal/client/service_test.go
package client

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
	createFunc   func(ctx context.Context, cl *Client) error
	findByIDFunc func(ctx context.Context, workspaceID, id uuid.UUID) (*Client, error)
	updateFunc   func(ctx context.Context, cl *Client) error
}

func (m *mockRepository) Create(ctx context.Context, cl *Client) error { return m.createFunc(ctx, cl) }
func (m *mockRepository) FindByID(ctx context.Context, workspaceID, id uuid.UUID) (*Client, error) {
	return m.findByIDFunc(ctx, workspaceID, id)
}
func (m *mockRepository) FindByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]Client, error) {
	return nil, nil
}
func (m *mockRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID, search string, page, pageSize int) ([]Client, int64, error) {
	return nil, 0, nil
}
func (m *mockRepository) Update(ctx context.Context, cl *Client) error { return m.updateFunc(ctx, cl) }
func (m *mockRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	return nil
}
func (m *mockRepository) CountByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	return 0, nil
}

type mockWorkspaces struct {
	ws *workspace.Workspace
}

func (m *mockWorkspaces) GetDefault(ctx context.Context, ownerID uuid.UUID) (*workspace.Workspace, error) {
	return m.ws, nil
}

func strPtr(s string) *string { return &s }

func TestCreateScopesToWorkspaceAndNormalizesEmail(t *testing.T) {
	ws := &workspace.Workspace{ID: uuid.New()}
	var created *Client
	repo := &mockRepository{
		createFunc: func(ctx context.Context, cl *Client) error {
			created = cl
			return nil
		},
	}
	svc := NewService(repo, &mockWorkspaces{ws: ws}, zap.NewNop())

	_, err := svc.Create(context.Background(), uuid.New(), CreateClientRequest{
		Name:  "  Acme Ltda  ",
		Email: strPtr("  Contato@Acme.COM "),
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, ws.ID, created.WorkspaceID)
	assert.Equal(t, "Acme Ltda", created.Name)
	require.NotNil(t, created.Email)
	assert.Equal(t, "contato@acme.com", *created.Email)
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc := NewService(&mockRepository{}, &mockWorkspaces{ws: &workspace.Workspace{}}, zap.NewNop())

	_, err := svc.Create(context.Background(), uuid.New(), CreateClientRequest{Name: "   "})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.Code, apiErr.Code)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	ws := &workspace.Workspace{ID: uuid.New()}
	existing := &Client{
		BaseModel:   common.BaseModel{ID: uuid.New()},
		WorkspaceID: ws.ID,
		Name:        "Acme Ltda",
		Phone:       strPtr("+55 11 99999-0000"),
	}
	var saved *Client
	repo := &mockRepository{
		findByIDFunc: func(ctx context.Context, workspaceID, id uuid.UUID) (*Client, error) {
			assert.Equal(t, ws.ID, workspaceID)
			return existing, nil
		},
		updateFunc: func(ctx context.Context, cl *Client) error {
			saved = cl
			return nil
		},
	}
	svc := NewService(repo, &mockWorkspaces{ws: ws}, zap.NewNop())

	got, err := svc.Update(context.Background(), uuid.New(), existing.ID, UpdateClientRequest{
		Company: strPtr("Acme Holding"),
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Acme Ltda", got.Name)
	require.NotNil(t, got.Company)
	assert.Equal(t, "Acme Holding", *got.Company)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "+55 11 99999-0000", *got.Phone)
}

func TestUpdateUnknownClientReturnsNotFound(t *testing.T) {
	ws := &workspace.Workspace{ID: uuid.New()}
	repo := &mockRepository{
		findByIDFunc: func(ctx context.Context, workspaceID, id uuid.UUID) (*Client, error) {
			return nil, common.ErrNotFound.WithDetails("Client not found.")
		},
	}
	svc := NewService(repo, &mockWorkspaces{ws: ws}, zap.NewNop())

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), UpdateClientRequest{Name: strPtr("X")})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.Code, apiErr.Code)
}
