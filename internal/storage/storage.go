package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error

	// ObjectExists reports whether an object has been uploaded under objectKey.
	ObjectExists(ctx context.Context, objectKey string) (bool, error)
}

// pictureExtensions maps accepted image content types to file extensions.
var pictureExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/heic": "heic",
}

// ProfilePictureKey builds the object key of a user's profile picture.
// It returns false for content types that are not accepted images.
func ProfilePictureKey(userID, objectID, contentType string) (string, bool) {
	ext, ok := pictureExtensions[strings.ToLower(contentType)]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("profile-pictures/%s/%s.%s", userID, objectID, ext), true
}
