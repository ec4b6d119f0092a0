package store

import (
	"context"

	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/slots"
)

// BookingAPI is the backend the booking store talks to.
type BookingAPI interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	ListBookingsByAvailability(ctx context.Context, availabilityID string) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, in domain.BookingInput) (*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// BookingStore caches bookings made against availability windows.
type BookingStore struct {
	*list[domain.Booking]
	api BookingAPI
}

func NewBookingStore(api BookingAPI, logger zerolog.Logger) *BookingStore {
	return &BookingStore{
		list: newList(func(b domain.Booking) string { return b.ID },
			logger.With().Str("component", "booking-store").Logger()),
		api: api,
	}
}

// Fetch replaces the list with every booking of the user.
func (s *BookingStore) Fetch(ctx context.Context) error {
	if err := s.begin(""); err != nil {
		return err
	}
	items, err := s.api.ListBookings(ctx)
	s.finish("", err, "Failed to fetch bookings", func() { s.replaceAll(items) })
	return err
}

// FetchByAvailability replaces the list with the bookings of one window.
func (s *BookingStore) FetchByAvailability(ctx context.Context, availabilityID string) error {
	if err := s.begin(""); err != nil {
		return err
	}
	items, err := s.api.ListBookingsByAvailability(ctx, availabilityID)
	s.finish("", err, "Failed to fetch bookings", func() { s.replaceAll(items) })
	return err
}

// Create books a slot. New bookings start open unless in says otherwise. Two
// concurrent bookings of the same slot from this store are not allowed.
func (s *BookingStore) Create(ctx context.Context, in domain.BookingInput) (*domain.Booking, error) {
	if in.Status == "" {
		in.Status = domain.BookingOpen
	}
	key := domain.SlotKey(in.AvailabilityID, in.StartTime, in.BookingDate)
	if err := s.begin(key); err != nil {
		return nil, err
	}
	created, err := s.api.CreateBooking(ctx, in)
	s.finish(key, err, "Failed to create booking", func() { s.upsert(*created) })
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus sets the status of a booking.
func (s *BookingStore) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if err := s.begin(id); err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateBookingStatus(ctx, id, status)
	s.finish(id, err, "Failed to update booking", func() { s.upsert(*updated) })
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Toggle flips a loaded booking between open and booked.
func (s *BookingStore) Toggle(ctx context.Context, id string) (*domain.Booking, error) {
	current, ok := s.Find(id)
	if !ok {
		return nil, ErrNotLoaded
	}
	return s.UpdateStatus(ctx, id, current.Status.Toggle())
}

// Delete cancels a booking.
func (s *BookingStore) Delete(ctx context.Context, id string) error {
	if err := s.begin(id); err != nil {
		return err
	}
	err := s.api.DeleteBooking(ctx, id)
	s.finish(id, err, "Failed to delete booking", func() { s.remove(id) })
	return err
}

// OpenSessions counts loaded bookings that are still open.
func (s *BookingStore) OpenSessions() int {
	return slots.OpenSessions(s.State().Items)
}
