package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/metrics"
	"wellvantage/fitness-app/internal/repository"
	"wellvantage/fitness-app/internal/validate"
)

// AvailabilityCache is a read cache for availability lists.
type AvailabilityCache interface {
	Get(ctx context.Context, userID, startDate, endDate string) ([]domain.Availability, bool, error)
	Set(ctx context.Context, userID, startDate, endDate string, items []domain.Availability) error
	Invalidate(ctx context.Context, userID string) error
}

// AvailabilityService manages a trainer's availability windows.
type AvailabilityService interface {
	List(ctx context.Context, userID, startDate, endDate string) ([]domain.Availability, error)
	Create(ctx context.Context, userID string, in domain.AvailabilityInput) (*domain.Availability, error)
	Update(ctx context.Context, userID, id string, patch domain.AvailabilityPatch) (*domain.Availability, error)
	// Delete removes the window and every booking made against it.
	Delete(ctx context.Context, userID, id string) error
}

type availabilityService struct {
	availabilityRepo repository.AvailabilityRepository
	bookingRepo      repository.BookingRepository
	cache            AvailabilityCache // nil disables caching
	logger           zerolog.Logger
}

func NewAvailabilityService(
	availabilityRepo repository.AvailabilityRepository,
	bookingRepo repository.BookingRepository,
	cache AvailabilityCache,
	logger zerolog.Logger,
) AvailabilityService {
	return &availabilityService{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		cache:            cache,
		logger:           logger.With().Str("component", "availability").Logger(),
	}
}

func (s *availabilityService) List(ctx context.Context, userID, startDate, endDate string) ([]domain.Availability, error) {
	if err := checkRange(startDate, endDate); err != nil {
		return nil, err
	}

	if s.cache != nil {
		items, ok, err := s.cache.Get(ctx, userID, startDate, endDate)
		switch {
		case err != nil:
			metrics.IncCache("error")
			s.logger.Warn().Err(err).Msg("availability cache read failed")
		case ok:
			metrics.IncCache("hit")
			return items, nil
		default:
			metrics.IncCache("miss")
		}
	}

	items, err := s.availabilityRepo.ListByUser(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, startDate, endDate, items); err != nil {
			s.logger.Warn().Err(err).Msg("availability cache write failed")
		}
	}
	return items, nil
}

func (s *availabilityService) Create(ctx context.Context, userID string, in domain.AvailabilityInput) (*domain.Availability, error) {
	if err := validate.Availability(in, validate.Options{}).Err(); err != nil {
		return nil, InputError(err.Error())
	}

	a := &domain.Availability{
		UserID:      userID,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		SessionName: in.SessionName,
		IsRecurring: in.IsRecurring,
	}
	if _, err := s.availabilityRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return a, nil
}

func (s *availabilityService) Update(ctx context.Context, userID, id string, patch domain.AvailabilityPatch) (*domain.Availability, error) {
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	in := patch.Apply(a.Input())
	if err := validate.Availability(in, validate.Options{}).Err(); err != nil {
		return nil, InputError(err.Error())
	}
	a.Date, a.StartTime, a.EndTime = in.Date, in.StartTime, in.EndTime
	a.SessionName, a.IsRecurring = in.SessionName, in.IsRecurring

	if err := s.availabilityRepo.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, userID)
	return a, nil
}

func (s *availabilityService) Delete(ctx context.Context, userID, id string) error {
	if err := s.availabilityRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAvailabilityNotFound
		}
		return err
	}
	s.invalidate(ctx, userID)

	n, err := s.bookingRepo.DeleteByAvailability(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("availability_id", id).Msg("failed to delete bookings of removed availability")
		return nil
	}
	if n > 0 {
		metrics.AddBooking("deleted", n)
		s.logger.Info().Str("availability_id", id).Int64("bookings", n).Msg("deleted bookings of removed availability")
	}
	return nil
}

// owned loads a window and hides windows of other users.
func (s *availabilityService) owned(ctx context.Context, userID, id string) (*domain.Availability, error) {
	a, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrAvailabilityNotFound
	}
	return a, nil
}

func (s *availabilityService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("availability cache invalidation failed")
	}
}

func checkRange(startDate, endDate string) error {
	var start, end time.Time
	var err error
	if startDate != "" {
		if start, err = domain.ParseDate(startDate, time.UTC); err != nil {
			return InputError(err.Error())
		}
	}
	if endDate != "" {
		if end, err = domain.ParseDate(endDate, time.UTC); err != nil {
			return InputError(err.Error())
		}
	}
	if startDate != "" && endDate != "" && end.Before(start) {
		return InputError("endDate must not be before startDate")
	}
	return nil
}
