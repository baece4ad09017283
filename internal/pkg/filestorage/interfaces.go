package filestorage

import (
	"context"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/selin/campushub/internal/app/models"
)

// StoredObject describes a file placed in the media store.
type StoredObject struct {
	Key string // opaque media-store identifier
	URL string // public URL for retrieval
}

// ObjectStorage is the media store boundary. Implementations do not retry;
// failures surface to the caller unmodified.
type ObjectStorage interface {
	// Upload stores the object under key and returns its public location.
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (*StoredObject, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}

// allowedTypes maps accepted upload MIME types to a key file extension.
var allowedTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// IsAllowedType reports whether the MIME type may be uploaded.
func IsAllowedType(mimeType string) bool {
	_, ok := allowedTypes[mimeType]
	return ok
}

// ResourceTypeFor classifies a MIME type for the media store: images are
// stored as image resources, everything else as raw binaries.
func ResourceTypeFor(mimeType string) models.ResourceType {
	switch mimeType {
	case "image/jpeg", "image/png":
		return models.ResourceTypeImage
	default:
		return models.ResourceTypeRaw
	}
}

// NewObjectKey generates an opaque key for an upload, prefixed by its
// resource type so image and raw objects live under separate prefixes.
func NewObjectKey(mimeType string) string {
	ext := allowedTypes[mimeType]
	return path.Join("notes", string(ResourceTypeFor(mimeType)), uuid.New().String()+ext)
}
