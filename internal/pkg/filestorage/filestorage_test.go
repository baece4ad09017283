package filestorage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/selin/campushub/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAllowedType(t *testing.T) {
	t.Parallel()

	allowed := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"image/jpeg",
		"image/png",
	}
	for _, mime := range allowed {
		assert.True(t, IsAllowedType(mime), mime)
	}

	assert.False(t, IsAllowedType("image/gif"))
	assert.False(t, IsAllowedType("application/zip"))
	assert.False(t, IsAllowedType(""))
}

func TestResourceTypeFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.ResourceTypeImage, ResourceTypeFor("image/jpeg"))
	assert.Equal(t, models.ResourceTypeImage, ResourceTypeFor("image/png"))
	assert.Equal(t, models.ResourceTypeRaw, ResourceTypeFor("application/pdf"))
	assert.Equal(t, models.ResourceTypeRaw, ResourceTypeFor("application/msword"))
}

func TestNewObjectKey(t *testing.T) {
	t.Parallel()

	key := NewObjectKey("application/pdf")
	assert.True(t, strings.HasPrefix(key, "notes/raw/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	key = NewObjectKey("image/png")
	assert.True(t, strings.HasPrefix(key, "notes/image/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	// Keys are unique per call
	assert.NotEqual(t, NewObjectKey("image/png"), NewObjectKey("image/png"))
}

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	ctx := context.Background()
	body := bytes.NewReader([]byte("file contents"))

	stored, err := store.Upload(ctx, "notes/raw/test.pdf", body, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "notes/raw/test.pdf", stored.Key)
	assert.Equal(t, "http://localhost:8080/uploads/notes/raw/test.pdf", stored.URL)

	data, err := os.ReadFile(filepath.Join(dir, "notes", "raw", "test.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("file contents"), data)

	require.NoError(t, store.Delete(ctx, "notes/raw/test.pdf"))
	_, err = os.Stat(filepath.Join(dir, "notes", "raw", "test.pdf"))
	assert.True(t, os.IsNotExist(err))

	// Deleting a missing object is not an error
	assert.NoError(t, store.Delete(ctx, "notes/raw/missing.pdf"))
}
