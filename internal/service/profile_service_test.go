package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/repository/memory"
)

type fakeFiles struct {
	uploaded map[string]bool
	deleted  []string
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{uploaded: map[string]bool{}}
}

func (f *fakeFiles) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://s3.test/put/" + key, nil
}

func (f *fakeFiles) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://s3.test/get/" + key, nil
}

func (f *fakeFiles) DeleteObject(_ context.Context, key string) error {
	delete(f.uploaded, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeFiles) ObjectExists(_ context.Context, key string) (bool, error) {
	return f.uploaded[key], nil
}

func TestProfilePictureUpload(t *testing.T) {
	users := memory.NewUserRepository()
	ctx := context.Background()
	user := &domain.User{Email: "demo@wellvantage.com", Name: "Demo User", ProfilePicture: "https://ui-avatars.com/api/?name=Demo+User"}
	_, err := users.Create(ctx, user)
	require.NoError(t, err)

	files := newFakeFiles()
	svc := NewProfileService(users, files, zerolog.Nop())

	got, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Demo+User", got.ProfilePicture)

	first, err := svc.RequestPictureUpload(ctx, user.ID, "image/jpeg")
	require.NoError(t, err)
	assert.Contains(t, first.ObjectKey, "profile-pictures/"+user.ID+"/")
	assert.Equal(t, "https://s3.test/put/"+first.ObjectKey, first.UploadURL)

	// Nothing uploaded yet: the old picture is still served.
	got, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Demo+User", got.ProfilePicture)

	files.uploaded[first.ObjectKey] = true
	got, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.test/get/"+first.ObjectKey, got.ProfilePicture)
	assert.Empty(t, files.deleted)

	second, err := svc.RequestPictureUpload(ctx, user.ID, "image/png")
	require.NoError(t, err)
	assert.NotEqual(t, first.ObjectKey, second.ObjectKey)
	assert.Empty(t, files.deleted, "the current picture is kept until the new one arrives")

	files.uploaded[second.ObjectKey] = true
	got, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.test/get/"+second.ObjectKey, got.ProfilePicture)
	assert.Equal(t, []string{first.ObjectKey}, files.deleted)

	_, err = svc.RequestPictureUpload(ctx, user.ID, "text/plain")
	var inputErr InputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestAbandonedPictureUploadKeepsCurrentPicture(t *testing.T) {
	users := memory.NewUserRepository()
	ctx := context.Background()
	user := &domain.User{Email: "demo@wellvantage.com", Name: "Demo User"}
	_, err := users.Create(ctx, user)
	require.NoError(t, err)

	files := newFakeFiles()
	svc := NewProfileService(users, files, zerolog.Nop())

	current, err := svc.RequestPictureUpload(ctx, user.ID, "image/jpeg")
	require.NoError(t, err)
	files.uploaded[current.ObjectKey] = true
	_, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)

	abandoned, err := svc.RequestPictureUpload(ctx, user.ID, "image/jpeg")
	require.NoError(t, err)
	retried, err := svc.RequestPictureUpload(ctx, user.ID, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, []string{abandoned.ObjectKey}, files.deleted, "a superseded pending key is cleaned up")

	got, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.test/get/"+current.ObjectKey, got.ProfilePicture)
	assert.True(t, files.uploaded[current.ObjectKey])

	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, current.ObjectKey, stored.PictureKey)
	assert.Equal(t, retried.ObjectKey, stored.PendingPicture)
}

func TestProfileWithoutStorage(t *testing.T) {
	svc := NewProfileService(memory.NewUserRepository(), nil, zerolog.Nop())
	_, err := svc.RequestPictureUpload(context.Background(), "u1", "image/png")
	assert.ErrorIs(t, err, ErrStorageDisabled)
	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
