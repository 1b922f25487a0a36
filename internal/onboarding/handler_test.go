// File: internal/onboarding/handler_test.go
package onboarding

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/config"
	"salehunt_backend/internal/filestorage"
	"salehunt_backend/internal/workspace"
)

func newLogoUploadRouter(t *testing.T, store *mockWorkspaceStore) (*gin.Engine, *filestorage.FileStorageService, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storagePath := filepath.Join(t.TempDir(), "uploads")
	cfg := &config.Config{
		StoragePath:    storagePath,
		StorageBaseURL: "http://localhost:8080/uploads",
	}
	storage, err := filestorage.NewFileStorageService(cfg, zap.NewNop())
	require.NoError(t, err)

	h := NewHandler(nil, nil, storage, store, zap.NewNop())

	userID := uuid.New()
	router := gin.New()
	router.POST("/onboarding/logo", func(c *gin.Context) {
		c.Set(common.UserIDKey, userID)
	}, h.uploadLogo)

	return router, storage, storagePath
}

func newLogoRequest(t *testing.T) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("logo", "brand.png")
	require.NoError(t, err)
	_, err = io.WriteString(part, "png bytes")
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/onboarding/logo", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadLogoPointsWorkspaceAtStoredFile(t *testing.T) {
	ws := &workspace.Workspace{ID: uuid.New(), BrandColor: workspace.DefaultBrandColor}
	store := &mockWorkspaceStore{ws: ws}
	router, _, storagePath := newLogoUploadRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, newLogoRequest(t))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, store.lastReq.BrandLogoURL)
	assert.Contains(t, *store.lastReq.BrandLogoURL, "logos/"+ws.ID.String()+"/logo.png")

	content, err := os.ReadFile(filepath.Join(storagePath, "logos", ws.ID.String(), "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(content))
}

func TestUploadLogoRollsBackFileWhenUpdateFails(t *testing.T) {
	ws := &workspace.Workspace{ID: uuid.New(), BrandColor: workspace.DefaultBrandColor}
	store := &mockWorkspaceStore{ws: ws, updateErr: assert.AnError}
	router, _, storagePath := newLogoUploadRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, newLogoRequest(t))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// The stored file is removed again so storage cannot point at a logo
	// the workspace never recorded.
	entries, err := os.ReadDir(filepath.Join(storagePath, "logos", ws.ID.String()))
	if err == nil {
		assert.Empty(t, entries, "stored logo must be rolled back when the workspace update fails")
	} else {
		assert.True(t, os.IsNotExist(err))
	}
}

func TestUploadLogoRequiresMultipartField(t *testing.T) {
	store := &mockWorkspaceStore{}
	router, _, _ := newLogoUploadRouter(t, store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/onboarding/logo", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
