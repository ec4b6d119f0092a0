package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/notice"
)

// fakeBackend is an in-memory AvailabilityAPI and BookingAPI.
type fakeBackend struct {
	mu           sync.Mutex
	availability []domain.Availability
	bookings     []domain.Booking
	seq          int
	fail         error
	calls        int
}

func (f *fakeBackend) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

func (f *fakeBackend) begin() error {
	f.mu.Lock()
	f.calls++
	return f.fail
}

func (f *fakeBackend) ListAvailability(context.Context) ([]domain.Availability, error) {
	if err := f.begin(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	return append([]domain.Availability(nil), f.availability...), nil
}

func (f *fakeBackend) ListAvailabilityRange(ctx context.Context, _, _ string) ([]domain.Availability, error) {
	return f.ListAvailability(ctx)
}

func (f *fakeBackend) CreateAvailability(_ context.Context, in domain.AvailabilityInput) (*domain.Availability, error) {
	if err := f.begin(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	a := domain.Availability{
		ID: f.nextID("a"), Date: in.Date, StartTime: in.StartTime, EndTime: in.EndTime,
		SessionName: in.SessionName, IsRecurring: in.IsRecurring,
	}
	f.availability = append(f.availability, a)
	return &a, nil
}

func (f *fakeBackend) UpdateAvailability(_ context.Context, id string, patch domain.AvailabilityPatch) (*domain.Availability, error) {
	if err := f.begin(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	for i, a := range f.availability {
		if a.ID == id {
			in := patch.Apply(a.Input())
			a.Date, a.StartTime, a.EndTime, a.SessionName, a.IsRecurring = in.Date, in.StartTime, in.EndTime, in.SessionName, in.IsRecurring
			f.availability[i] = a
			return &a, nil
		}
	}
	return nil, errors.New("Availability not found")
}

func (f *fakeBackend) DeleteAvailability(_ context.Context, id string) error {
	if err := f.begin(); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	for i, a := range f.availability {
		if a.ID == id {
			f.availability = append(f.availability[:i], f.availability[i+1:]...)
			return nil
		}
	}
	return errors.New("Availability not found")
}

func (f *fakeBackend) ListBookings(context.Context) ([]domain.Booking, error) {
	if err := f.begin(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	return append([]domain.Booking(nil), f.bookings...), nil
}

func (f *fakeBackend) ListBookingsByAvailability(_ context.Context, availabilityID string) ([]domain.Booking, error) {
	if err := f.begin(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.AvailabilityID == availabilityID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateBooking(_ context.Context, in domain.BookingInput) (*domain.Booking, error) {
	if err := f.begin(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	b := domain.Booking{
		ID: f.nextID("b"), AvailabilityID: in.AvailabilityID, BookingDate: in.BookingDate,
		StartTime: in.StartTime, EndTime: in.EndTime, Status: in.Status,
	}
	f.bookings = append(f.bookings, b)
	return &b, nil
}

func (f *fakeBackend) UpdateBookingStatus(_ context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if err := f.begin(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, errors.New("Booking not found")
}

func (f *fakeBackend) DeleteBooking(_ context.Context, id string) error {
	if err := f.begin(); err != nil {
		f.mu.Unlock()
		return err
	}
	defer f.mu.Unlock()
	for i, b := range f.bookings {
		if b.ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return errors.New("Booking not found")
}

// recorder collects shown notices.
type recorder struct {
	mu    sync.Mutex
	shown []notice.Notice
}

func (r *recorder) Show(n notice.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, n)
}

func (r *recorder) last() notice.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.shown) == 0 {
		return nil
	}
	return r.shown[len(r.shown)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shown)
}
