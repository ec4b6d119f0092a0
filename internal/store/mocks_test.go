package store

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wellvantage/fitness-app/internal/domain"
)

type mockAvailabilityAPI struct{ mock.Mock }

func (m *mockAvailabilityAPI) ListAvailability(ctx context.Context) ([]domain.Availability, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]domain.Availability)
	return items, args.Error(1)
}

func (m *mockAvailabilityAPI) ListAvailabilityRange(ctx context.Context, startDate, endDate string) ([]domain.Availability, error) {
	args := m.Called(ctx, startDate, endDate)
	items, _ := args.Get(0).([]domain.Availability)
	return items, args.Error(1)
}

func (m *mockAvailabilityAPI) CreateAvailability(ctx context.Context, in domain.AvailabilityInput) (*domain.Availability, error) {
	args := m.Called(ctx, in)
	a, _ := args.Get(0).(*domain.Availability)
	return a, args.Error(1)
}

func (m *mockAvailabilityAPI) UpdateAvailability(ctx context.Context, id string, patch domain.AvailabilityPatch) (*domain.Availability, error) {
	args := m.Called(ctx, id, patch)
	a, _ := args.Get(0).(*domain.Availability)
	return a, args.Error(1)
}

func (m *mockAvailabilityAPI) DeleteAvailability(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockBookingAPI struct{ mock.Mock }

func (m *mockBookingAPI) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]domain.Booking)
	return items, args.Error(1)
}

func (m *mockBookingAPI) ListBookingsByAvailability(ctx context.Context, availabilityID string) ([]domain.Booking, error) {
	args := m.Called(ctx, availabilityID)
	items, _ := args.Get(0).([]domain.Booking)
	return items, args.Error(1)
}

func (m *mockBookingAPI) CreateBooking(ctx context.Context, in domain.BookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, in)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingAPI) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingAPI) DeleteBooking(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockWorkoutAPI struct{ mock.Mock }

func (m *mockWorkoutAPI) ListWorkoutPlans(ctx context.Context) ([]domain.WorkoutPlan, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]domain.WorkoutPlan)
	return items, args.Error(1)
}

func (m *mockWorkoutAPI) CreateWorkoutPlan(ctx context.Context, in domain.WorkoutPlanInput) (*domain.WorkoutPlan, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(*domain.WorkoutPlan)
	return p, args.Error(1)
}

func (m *mockWorkoutAPI) UpdateWorkoutPlan(ctx context.Context, id string, in domain.WorkoutPlanInput) (*domain.WorkoutPlan, error) {
	args := m.Called(ctx, id, in)
	p, _ := args.Get(0).(*domain.WorkoutPlan)
	return p, args.Error(1)
}

func (m *mockWorkoutAPI) DeleteWorkoutPlan(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
