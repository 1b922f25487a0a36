// File: internal/filestorage/service_test.go
package filestorage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salehunt_backend/internal/config"
)

func setupFileStorageService(t *testing.T) (*FileStorageService, func()) {
	storagePath := filepath.Join(t.TempDir(), "uploads")

	cfg := &config.Config{
		StoragePath:    storagePath,
		StorageBaseURL: "http://localhost:8080/uploads/",
	}
	fsService, err := NewFileStorageService(cfg, zap.NewNop())
	require.NoError(t, err, "Failed to create FileStorageService")
	require.NotNil(t, fsService)

	cleanup := func() {
		if err := os.RemoveAll(storagePath); err != nil {
			t.Logf("Warning: Failed to remove test storage path %s: %v", storagePath, err)
		}
	}
	return fsService, cleanup
}

// newTestFileHeader builds a multipart.FileHeader the same way Gin would when
// parsing an incoming upload request.
func newTestFileHeader(t *testing.T, fieldname, filename, content, contentType string) *multipart.FileHeader {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldname, filename))
	if contentType != "" {
		partHeader.Set("Content-Type", contentType)
	}

	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)

	files := form.File[fieldname]
	require.NotEmpty(t, files, "No files found for fieldname %s", fieldname)
	return files[0]
}

func TestFileStorageService_SaveUploadedFile_Success(t *testing.T) {
	fsService, cleanup := setupFileStorageService(t)
	defer cleanup()

	mockContent := "This is a test image file."
	fh := newTestFileHeader(t, "upload", "avatar.jpg", mockContent, "image/jpeg")

	subDir := "avatars_test"
	relativePath, err := fsService.SaveUploadedFile(fh, subDir)

	require.NoError(t, err)
	assert.NotEmpty(t, relativePath)
	assert.True(t, strings.HasPrefix(relativePath, subDir+"/"), "Relative path should start with subDir")
	assert.True(t, strings.HasSuffix(relativePath, ".jpg"), "Relative path should end with .jpg extension")

	fullPath := filepath.Join(fsService.storagePath, relativePath)
	fileContent, err := os.ReadFile(fullPath)
	require.NoError(t, err, "File should exist at the returned path")
	assert.Equal(t, mockContent, string(fileContent))
}

func TestFileStorageService_SaveUploadedFile_UnsupportedType(t *testing.T) {
	fsService, cleanup := setupFileStorageService(t)
	defer cleanup()

	fh := newTestFileHeader(t, "upload", "notes.txt", "some text", "text/plain")

	_, err := fsService.SaveUploadedFile(fh, "documents_test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestFileStorageService_SaveUploadedFile_NoExtensionFallback(t *testing.T) {
	fsService, cleanup := setupFileStorageService(t)
	defer cleanup()

	fhPNG := newTestFileHeader(t, "upload", "imagepng", "png content", "image/png")
	relPathPNG, err := fsService.SaveUploadedFile(fhPNG, "no_ext_test")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(relPathPNG, ".png"))

	fhJPG := newTestFileHeader(t, "upload", "imagejpeg", "jpeg content", "image/jpeg")
	relPathJPG, err := fsService.SaveUploadedFile(fhJPG, "no_ext_test")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(relPathJPG, ".jpg"))
}

func TestFileStorageService_SaveWorkspaceLogo_ReplacesPrevious(t *testing.T) {
	fsService, cleanup := setupFileStorageService(t)
	defer cleanup()

	workspaceID := uuid.New()

	fhPNG := newTestFileHeader(t, "logo", "brand.png", "png bytes", "image/png")
	firstPath, err := fsService.SaveWorkspaceLogo(workspaceID, fhPNG)
	require.NoError(t, err)
	assert.Equal(t, "logos/"+workspaceID.String()+"/logo.png", firstPath)

	// Re-uploading with a different extension replaces the old file.
	fhJPG := newTestFileHeader(t, "logo", "brand.jpg", "jpg bytes", "image/jpeg")
	secondPath, err := fsService.SaveWorkspaceLogo(workspaceID, fhJPG)
	require.NoError(t, err)
	assert.Equal(t, "logos/"+workspaceID.String()+"/logo.jpg", secondPath)

	_, err = os.Stat(filepath.Join(fsService.storagePath, firstPath))
	assert.True(t, os.IsNotExist(err), "Previous logo should have been removed")

	content, err := os.ReadFile(filepath.Join(fsService.storagePath, secondPath))
	require.NoError(t, err)
	assert.Equal(t, "jpg bytes", string(content))
}

func TestFileStorageService_DeleteFile_Success(t *testing.T) {
	fsService, cleanup := setupFileStorageService(t)
	defer cleanup()

	subDir := "delete_test"
	filename := "logo_to_delete.png"
	tempFilePath := filepath.Join(fsService.storagePath, subDir, filename)
	require.NoError(t, os.MkdirAll(filepath.Join(fsService.storagePath, subDir), os.ModePerm))
	require.NoError(t, os.WriteFile(tempFilePath, []byte("temporary"), 0644))

	relativePath := filepath.ToSlash(filepath.Join(subDir, filename))

	err := fsService.DeleteFile(relativePath)
	require.NoError(t, err)

	_, err = os.Stat(tempFilePath)
	assert.True(t, os.IsNotExist(err), "File should not exist after deletion")
}

func TestFileStorageService_DeleteFile_NonExistent(t *testing.T) {
	fsService, cleanup := setupFileStorageService(t)
	defer cleanup()

	err := fsService.DeleteFile("non_existent_subdir/non_existent_file.png")
	assert.NoError(t, err, "Deleting a non-existent file should not error")
}

func TestFileStorageService_DeleteFile_PathTraversal(t *testing.T) {
	fsService, cleanup := setupFileStorageService(t)
	defer cleanup()

	dummyFilePath := filepath.Join(fsService.storagePath, "../dummy_outside.txt")
	require.NoError(t, os.WriteFile(dummyFilePath, []byte("dummy"), 0644))
	defer os.Remove(dummyFilePath)

	err := fsService.DeleteFile("../../dummy_outside.txt")
	require.Error(t, err, "Should not be able to delete files outside storage path")
	assert.Contains(t, err.Error(), "invalid file path for deletion")

	_, statErr := os.Stat(dummyFilePath)
	assert.NoError(t, statErr, "External dummy file should still exist.")
}

func TestFileStorageService_PublicURL(t *testing.T) {
	fsService, cleanup := setupFileStorageService(t)
	defer cleanup()

	assert.Equal(t, "", fsService.PublicURL(""))
	assert.Equal(t,
		"http://localhost:8080/uploads/logos/abc/logo.png",
		fsService.PublicURL("logos/abc/logo.png"))
}

func TestFileStorageService_SaveUploadedFile_NilHeader(t *testing.T) {
	fsService, cleanup := setupFileStorageService(t)
	defer cleanup()

	_, err := fsService.SaveUploadedFile(nil, "test_dir")
	assert.Error(t, err)
	assert.EqualError(t, err, "fileHeader cannot be nil")
}
