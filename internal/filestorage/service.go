// File: internal/filestorage/service.go
package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/config"
)

// FileStorageService stores uploaded brand assets on local disk and serves
// them through a public base URL.
type FileStorageService struct {
	storagePath string
	baseURL     string
	logger      *zap.Logger
}

// NewFileStorageService creates the service and ensures the base directory
// exists.
func NewFileStorageService(cfg *config.Config, logger *zap.Logger) (*FileStorageService, error) {
	if cfg.StoragePath == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if err := os.MkdirAll(cfg.StoragePath, os.ModePerm); err != nil {
		logger.Error("Failed to create storage path directory", zap.String("path", cfg.StoragePath), zap.Error(err))
		return nil, fmt.Errorf("failed to create storage path %s: %w", cfg.StoragePath, err)
	}
	logger.Info("FileStorageService initialized", zap.String("storagePath", cfg.StoragePath))
	return &FileStorageService{
		storagePath: cfg.StoragePath,
		baseURL:     strings.TrimRight(cfg.StorageBaseURL, "/"),
		logger:      logger,
	}, nil
}

// SaveWorkspaceLogo stores a workspace's logo under a stable name, replacing
// any previous logo. One workspace, one logo: re-uploading overwrites in
// place so stale files never pile up.
func (s *FileStorageService) SaveWorkspaceLogo(workspaceID uuid.UUID, fileHeader *multipart.FileHeader) (string, error) {
	extension, err := imageExtension(fileHeader)
	if err != nil {
		return "", err
	}

	subDir := filepath.Join("logos", workspaceID.String())
	destinationDir := filepath.Join(s.storagePath, subDir)
	if err := os.MkdirAll(destinationDir, os.ModePerm); err != nil {
		s.logger.Error("Failed to create logo directory", zap.String("path", destinationDir), zap.Error(err))
		return "", fmt.Errorf("failed to create directory %s: %w", destinationDir, err)
	}

	// Drop any previous logo with a different extension.
	previous, _ := filepath.Glob(filepath.Join(destinationDir, "logo.*"))
	for _, old := range previous {
		if err := os.Remove(old); err != nil {
			s.logger.Warn("Failed to remove previous logo", zap.String("path", old), zap.Error(err))
		}
	}

	relativePath := filepath.ToSlash(filepath.Join(subDir, "logo"+extension))
	if err := s.writeFile(fileHeader, filepath.Join(s.storagePath, relativePath)); err != nil {
		return "", err
	}
	return relativePath, nil
}

// SaveUploadedFile saves a multipart file under a unique name in subDir and
// returns its path relative to the storage root.
func (s *FileStorageService) SaveUploadedFile(fileHeader *multipart.FileHeader, subDir string) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("fileHeader cannot be nil")
	}
	extension, err := imageExtension(fileHeader)
	if err != nil {
		return "", err
	}

	cleanSubDir := filepath.Clean(subDir)
	if strings.HasPrefix(cleanSubDir, "..") {
		s.logger.Error("Invalid subDir, attempts to navigate up", zap.String("subDir", subDir))
		return "", fmt.Errorf("invalid subDir path")
	}

	destinationDir := filepath.Join(s.storagePath, cleanSubDir)
	if err := os.MkdirAll(destinationDir, os.ModePerm); err != nil {
		s.logger.Error("Failed to create sub-directory for file storage", zap.String("path", destinationDir), zap.Error(err))
		return "", fmt.Errorf("failed to create directory %s: %w", destinationDir, err)
	}

	relativePath := filepath.ToSlash(filepath.Join(cleanSubDir, uuid.New().String()+extension))
	if err := s.writeFile(fileHeader, filepath.Join(s.storagePath, relativePath)); err != nil {
		return "", err
	}
	return relativePath, nil
}

// DeleteFile deletes a file given its path relative to the storage root.
// Deleting a missing file is not an error.
func (s *FileStorageService) DeleteFile(relativePath string) error {
	if relativePath == "" {
		return fmt.Errorf("relative path cannot be empty")
	}

	cleanRelativePath := filepath.Clean(relativePath)
	if strings.Contains(cleanRelativePath, "..") {
		s.logger.Warn("Attempt to delete file with path traversal", zap.String("relativePath", relativePath))
		return fmt.Errorf("invalid file path for deletion")
	}

	fullPath := filepath.Join(s.storagePath, cleanRelativePath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		s.logger.Warn("Attempt to delete non-existent file", zap.String("path", fullPath))
		return nil
	}
	if err := os.Remove(fullPath); err != nil {
		s.logger.Error("Failed to delete file", zap.String("path", fullPath), zap.Error(err))
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}

	s.logger.Info("File deleted successfully", zap.String("path", fullPath))
	return nil
}

// PublicURL returns the URL the frontend uses to load a stored file.
func (s *FileStorageService) PublicURL(relativePath string) string {
	if relativePath == "" {
		return ""
	}
	return s.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(relativePath), "/")
}

func (s *FileStorageService) writeFile(fileHeader *multipart.FileHeader, destinationPath string) error {
	src, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("Failed to open uploaded file", zap.Error(err))
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(destinationPath)
	if err != nil {
		s.logger.Error("Failed to create destination file", zap.String("path", destinationPath), zap.Error(err))
		return fmt.Errorf("failed to create file %s: %w", destinationPath, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		s.logger.Error("Failed to copy uploaded file to destination", zap.String("path", destinationPath), zap.Error(err))
		os.Remove(destinationPath)
		return fmt.Errorf("failed to save file: %w", err)
	}

	s.logger.Info("File saved successfully", zap.String("path", destinationPath))
	return nil
}

// imageExtension resolves the file extension, falling back to the content
// type for extension-less uploads. Only image types are accepted.
func imageExtension(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("fileHeader cannot be nil")
	}
	extension := strings.ToLower(filepath.Ext(filepath.Base(fileHeader.Filename)))
	switch extension {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg":
		return extension, nil
	case "":
		contentType := fileHeader.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(contentType, "image/jpeg"):
			return ".jpg", nil
		case strings.HasPrefix(contentType, "image/png"):
			return ".png", nil
		case strings.HasPrefix(contentType, "image/gif"):
			return ".gif", nil
		case strings.HasPrefix(contentType, "image/webp"):
			return ".webp", nil
		case strings.HasPrefix(contentType, "image/svg"):
			return ".svg", nil
		}
		return "", fmt.Errorf("unsupported file type or missing extension: %s", contentType)
	default:
		return "", fmt.Errorf("unsupported file extension: %s", extension)
	}
}
