package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/metrics"
	"wellvantage/fitness-app/internal/repository"
)

// BookingService manages bookings against availability windows.
type BookingService interface {
	List(ctx context.Context, userID string) ([]domain.Booking, error)
	ListByAvailability(ctx context.Context, userID, availabilityID string) ([]domain.Booking, error)
	// Create rejects bookings outside the window (ErrBookingOutsideWindow) and
	// second bookings of a slot (ErrBookingConflict).
	Create(ctx context.Context, userID string, in domain.BookingInput) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, userID, id string, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, userID, id string) error
	// PurgeOpenBefore removes OPEN bookings of every user dated before date.
	PurgeOpenBefore(ctx context.Context, date time.Time) (int64, error)
}

type bookingService struct {
	bookingRepo      repository.BookingRepository
	availabilityRepo repository.AvailabilityRepository
	logger           zerolog.Logger
}

func NewBookingService(bookingRepo repository.BookingRepository, availabilityRepo repository.AvailabilityRepository, logger zerolog.Logger) BookingService {
	return &bookingService{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		logger:           logger.With().Str("component", "booking").Logger(),
	}
}

func (s *bookingService) List(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

func (s *bookingService) ListByAvailability(ctx context.Context, userID, availabilityID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByAvailability(ctx, availabilityID, userID)
}

func (s *bookingService) Create(ctx context.Context, userID string, in domain.BookingInput) (*domain.Booking, error) {
	if in.AvailabilityID == "" || in.BookingDate == "" || in.StartTime == "" || in.EndTime == "" {
		return nil, InputError("availabilityId, bookingDate, startTime and endTime are required")
	}
	if in.Status == "" {
		in.Status = domain.BookingOpen
	}
	if !in.Status.Valid() {
		return nil, InputError(fmt.Sprintf("invalid status %q", in.Status))
	}
	if _, err := domain.ParseDate(in.BookingDate, time.UTC); err != nil {
		return nil, InputError(err.Error())
	}
	for _, clock := range []string{in.StartTime, in.EndTime} {
		if _, err := domain.ParseClock(clock); err != nil {
			return nil, InputError(err.Error())
		}
	}

	a, err := s.availabilityRepo.GetByID(ctx, in.AvailabilityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrAvailabilityNotFound
	}
	if in.BookingDate != a.Date || !a.Contains(in.StartTime, in.EndTime) {
		return nil, ErrBookingOutsideWindow
	}

	b := &domain.Booking{
		AvailabilityID: in.AvailabilityID,
		UserID:         userID,
		BookingDate:    in.BookingDate,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		Status:         in.Status,
	}
	if _, err := s.bookingRepo.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			metrics.IncBooking("conflict")
			return nil, ErrBookingConflict
		}
		return nil, err
	}
	metrics.IncBooking("created")
	return b, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, userID, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, InputError(fmt.Sprintf("invalid status %q", status))
	}
	b, err := s.bookingRepo.UpdateStatus(ctx, id, userID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	metrics.IncBooking("status_changed")
	return b, nil
}

func (s *bookingService) Delete(ctx context.Context, userID, id string) error {
	if err := s.bookingRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	metrics.IncBooking("deleted")
	return nil
}

func (s *bookingService) PurgeOpenBefore(ctx context.Context, date time.Time) (int64, error) {
	n, err := s.bookingRepo.DeleteOpenBefore(ctx, domain.FormatDate(date))
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale open bookings: %w", err)
	}
	if n > 0 {
		metrics.AddBooking("purged", n)
	}
	return n, nil
}
