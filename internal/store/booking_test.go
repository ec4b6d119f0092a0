package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wellvantage/fitness-app/internal/domain"
)

func loadedBookingStore(t *testing.T, api *mockBookingAPI, items []domain.Booking) *BookingStore {
	t.Helper()
	api.On("ListBookings", mock.Anything).Return(items, nil).Once()
	s := NewBookingStore(api, zerolog.Nop())
	require.NoError(t, s.Fetch(context.Background()))
	return s
}

func TestCreateBookingDefaultsToOpen(t *testing.T) {
	api := &mockBookingAPI{}
	want := domain.BookingInput{
		AvailabilityID: "a1",
		BookingDate:    "2025-03-12",
		StartTime:      "09:00",
		EndTime:        "10:00",
		Status:         domain.BookingOpen,
	}
	api.On("CreateBooking", mock.Anything, want).
		Return(&domain.Booking{ID: "b1", AvailabilityID: "a1", BookingDate: "2025-03-12", StartTime: "09:00", EndTime: "10:00", Status: domain.BookingOpen}, nil)
	s := NewBookingStore(api, zerolog.Nop())

	in := want
	in.Status = ""
	b, err := s.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingOpen, b.Status)
	assert.Equal(t, 1, s.OpenSessions())
	api.AssertExpectations(t)
}

func TestDeleteBookingLeavesOthersUnchanged(t *testing.T) {
	windows := []domain.Availability{
		{ID: "a1", Date: "2025-03-12", StartTime: "09:00", EndTime: "10:00", SessionName: "PT"},
		{ID: "a2", Date: "2025-03-12", StartTime: "10:00", EndTime: "11:00", SessionName: "Yoga"},
	}
	availabilityAPI := &mockAvailabilityAPI{}
	availabilityAPI.On("ListAvailability", mock.Anything).Return(windows, nil)
	availability := newAvailabilityStore(availabilityAPI)
	require.NoError(t, availability.Fetch(context.Background()))

	api := &mockBookingAPI{}
	items := []domain.Booking{
		{ID: "b1", AvailabilityID: "a1", Status: domain.BookingOpen},
		{ID: "b2", AvailabilityID: "a2", Status: domain.BookingBooked},
		{ID: "b3", AvailabilityID: "a1", Status: domain.BookingOpen},
	}
	s := loadedBookingStore(t, api, items)
	api.On("DeleteBooking", mock.Anything, "b2").Return(nil)

	require.NoError(t, s.Delete(context.Background(), "b2"))
	assert.Equal(t, []domain.Booking{items[0], items[2]}, s.State().Items)

	st := availability.State()
	assert.Equal(t, windows, st.Items)
	assert.Empty(t, st.Error)
	availabilityAPI.AssertNumberOfCalls(t, "ListAvailability", 1)
	availabilityAPI.AssertNotCalled(t, "DeleteAvailability", mock.Anything, mock.Anything)
}

func TestFailedDeleteKeepsBooking(t *testing.T) {
	api := &mockBookingAPI{}
	s := loadedBookingStore(t, api, []domain.Booking{{ID: "b1"}})
	api.On("DeleteBooking", mock.Anything, "b1").Return(errors.New("Booking not found"))

	require.Error(t, s.Delete(context.Background(), "b1"))
	st := s.State()
	assert.Len(t, st.Items, 1)
	assert.Equal(t, "Booking not found", st.Error)
}

func TestToggleFlipsStatus(t *testing.T) {
	api := &mockBookingAPI{}
	s := loadedBookingStore(t, api, []domain.Booking{{ID: "b1", Status: domain.BookingOpen}})
	api.On("UpdateBookingStatus", mock.Anything, "b1", domain.BookingBooked).
		Return(&domain.Booking{ID: "b1", Status: domain.BookingBooked}, nil)

	b, err := s.Toggle(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingBooked, b.Status)
	assert.Equal(t, 0, s.OpenSessions())
}

func TestToggleUnknownBooking(t *testing.T) {
	s := NewBookingStore(&mockBookingAPI{}, zerolog.Nop())
	_, err := s.Toggle(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestSecondMutationOfSameBookingRejected(t *testing.T) {
	api := &mockBookingAPI{}
	s := loadedBookingStore(t, api, []domain.Booking{{ID: "b1", Status: domain.BookingOpen}, {ID: "b2"}})
	release := make(chan struct{})
	api.On("UpdateBookingStatus", mock.Anything, "b1", domain.BookingBooked).
		Return(&domain.Booking{ID: "b1", Status: domain.BookingBooked}, nil).
		Run(func(mock.Arguments) { <-release })
	api.On("DeleteBooking", mock.Anything, "b2").Return(nil)

	done := make(chan error)
	go func() {
		_, err := s.UpdateStatus(context.Background(), "b1", domain.BookingBooked)
		done <- err
	}()
	require.Eventually(t, func() bool { return s.State().Loading }, time.Second, time.Millisecond)

	assert.ErrorIs(t, s.Delete(context.Background(), "b1"), ErrMutationInFlight)
	assert.NoError(t, s.Delete(context.Background(), "b2"), "other bookings are not blocked")

	close(release)
	require.NoError(t, <-done)
	api.On("DeleteBooking", mock.Anything, "b1").Return(nil)
	assert.NoError(t, s.Delete(context.Background(), "b1"))
	assert.Empty(t, s.State().Items)
}

func TestConcurrentBookingOfSameSlotRejected(t *testing.T) {
	api := &mockBookingAPI{}
	release := make(chan struct{})
	in := domain.BookingInput{AvailabilityID: "a1", BookingDate: "2025-03-12", StartTime: "09:00", EndTime: "10:00", Status: domain.BookingOpen}
	api.On("CreateBooking", mock.Anything, in).
		Return(&domain.Booking{ID: "b1"}, nil).
		Run(func(mock.Arguments) { <-release })
	s := NewBookingStore(api, zerolog.Nop())

	done := make(chan error)
	go func() {
		_, err := s.Create(context.Background(), in)
		done <- err
	}()
	require.Eventually(t, func() bool { return s.State().Loading }, time.Second, time.Millisecond)

	_, err := s.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrMutationInFlight)

	close(release)
	require.NoError(t, <-done)
	api.AssertNumberOfCalls(t, "CreateBooking", 1)
}

func TestFetchByAvailabilityReplacesList(t *testing.T) {
	api := &mockBookingAPI{}
	s := loadedBookingStore(t, api, []domain.Booking{{ID: "b1"}, {ID: "b2"}})
	api.On("ListBookingsByAvailability", mock.Anything, "a9").Return([]domain.Booking{{ID: "b9", AvailabilityID: "a9"}}, nil)

	require.NoError(t, s.FetchByAvailability(context.Background(), "a9"))
	assert.Equal(t, []domain.Booking{{ID: "b9", AvailabilityID: "a9"}}, s.State().Items)
}
