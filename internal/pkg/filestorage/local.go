package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/selin/campushub/internal/pkg/logger"
)

// LocalStorage keeps objects on the local filesystem. Used in development
// in place of the S3 media store; objects are served from the uploads path.
type LocalStorage struct {
	basePath string // The root directory where objects are stored
	baseURL  string // The base URL to access the stored objects
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// Upload writes the object under basePath, mirroring the key's directory layout.
func (ls *LocalStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (*StoredObject, error) {
	dstPath := filepath.Join(ls.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create object directory")
		return nil, fmt.Errorf("failed to create object directory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, body); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write object content")
		// Remove the partially written file
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save object content: %w", err)
	}

	return &StoredObject{
		Key: key,
		URL: strings.TrimRight(ls.baseURL, "/") + "/" + key,
	}, nil
}

// Delete removes an object from the filesystem. Deleting a missing object
// is treated as success (idempotent operation).
func (ls *LocalStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(key))

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("Object to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete object")
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}
