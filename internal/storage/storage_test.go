package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellvantage/fitness-app/internal/config"
)

func TestProfilePictureKey(t *testing.T) {
	key, ok := ProfilePictureKey("u1", "obj", "image/PNG")
	require.True(t, ok)
	assert.Equal(t, "profile-pictures/u1/obj.png", key)

	_, ok = ProfilePictureKey("u1", "obj", "application/pdf")
	assert.False(t, ok)
}

func TestPresignedURLsUseCustomEndpoint(t *testing.T) {
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		BucketName:      "wellvantage",
	}, zerolog.Nop())
	require.NoError(t, err)

	raw, err := fs.GeneratePresignedUploadURL(context.Background(), "profile-pictures/u1/obj.jpg", "image/jpeg", 5*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/wellvantage/profile-pictures/u1/obj.jpg", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))

	raw, err = fs.GeneratePresignedDownloadURL(context.Background(), "profile-pictures/u1/obj.jpg", 0)
	require.NoError(t, err)
	u, err = url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}

func TestObjectExists(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/wellvantage/profile-pictures/u1/there.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			w.WriteHeader(http.StatusOK)
		case "/wellvantage/profile-pictures/u1/broken.jpg":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        srv.URL,
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		BucketName:      "wellvantage",
	}, zerolog.Nop())
	require.NoError(t, err)

	ok, err := fs.ObjectExists(context.Background(), "profile-pictures/u1/there.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fs.ObjectExists(context.Background(), "profile-pictures/u1/missing.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = fs.ObjectExists(context.Background(), "profile-pictures/u1/broken.jpg")
	assert.Error(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, seen, "HEAD /wellvantage/profile-pictures/u1/there.jpg")
}
