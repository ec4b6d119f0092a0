package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/repository"
	"wellvantage/fitness-app/internal/storage"
)

// ProfileService serves the signed-in user's profile.
type ProfileService interface {
	// Get returns the user. An uploaded picture is exposed as a presigned URL.
	// A pending upload that has arrived replaces the current picture, and the
	// old object is deleted then.
	Get(ctx context.Context, userID string) (*domain.User, error)
	// RequestPictureUpload reserves a new picture key and returns where to PUT it.
	// The current picture stays in place until the upload is seen.
	RequestPictureUpload(ctx context.Context, userID, contentType string) (*domain.PictureUpload, error)
}

type profileService struct {
	userRepo repository.UserRepository
	files    storage.FileStorage // nil disables uploads
	logger   zerolog.Logger
}

func NewProfileService(userRepo repository.UserRepository, files storage.FileStorage, logger zerolog.Logger) ProfileService {
	return &profileService{
		userRepo: userRepo,
		files:    files,
		logger:   logger.With().Str("component", "profile").Logger(),
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.PendingPicture != "" && s.files != nil {
		s.promotePendingPicture(ctx, user)
	}
	if user.PictureKey != "" && s.files != nil {
		url, err := s.files.GeneratePresignedDownloadURL(ctx, user.PictureKey, time.Hour)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to presign profile picture")
		} else {
			user.ProfilePicture = url
		}
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *profileService) RequestPictureUpload(ctx context.Context, userID, contentType string) (*domain.PictureUpload, error) {
	if s.files == nil {
		return nil, ErrStorageDisabled
	}
	key, ok := storage.ProfilePictureKey(userID, uuid.NewString(), contentType)
	if !ok {
		return nil, InputError("contentType must be image/jpeg, image/png, image/webp or image/heic")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	url, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	superseded := user.PendingPicture
	user.PendingPicture = key
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if superseded != "" {
		s.deleteObject(ctx, superseded)
	}
	return &domain.PictureUpload{UploadURL: url, ObjectKey: key, ContentType: contentType}, nil
}

// promotePendingPicture makes the pending upload the user's picture once the
// object exists. Failures leave the user unchanged and are retried on the next Get.
func (s *profileService) promotePendingPicture(ctx context.Context, user *domain.User) {
	exists, err := s.files.ObjectExists(ctx, user.PendingPicture)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", user.PendingPicture).Msg("failed to check pending profile picture")
		return
	}
	if !exists {
		return
	}

	previous, pending := user.PictureKey, user.PendingPicture
	user.PictureKey, user.PendingPicture = pending, ""
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to store uploaded profile picture")
		user.PictureKey, user.PendingPicture = previous, pending
		return
	}
	if previous != "" {
		s.deleteObject(ctx, previous)
	}
}

func (s *profileService) deleteObject(ctx context.Context, key string) {
	if err := s.files.DeleteObject(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to delete profile picture object")
	}
}
