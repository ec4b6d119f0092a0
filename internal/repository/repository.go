package repository

import (
	"context"

	"wellvantage/fitness-app/internal/domain"
)

// Error constants for the repository layer
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error) // ErrConflict on a taken email
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// AvailabilityRepository defines the interface for a trainer's availability windows.
type AvailabilityRepository interface {
	Create(ctx context.Context, availability *domain.Availability) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Availability, error)
	// ListByUser returns windows ordered by date and start time. Empty bounds are open.
	ListByUser(ctx context.Context, userID, startDate, endDate string) ([]domain.Availability, error)
	Update(ctx context.Context, availability *domain.Availability) error
	Delete(ctx context.Context, id, userID string) error // Ensure the user owns the window
}

// BookingRepository defines the interface for bookings made against availability windows.
type BookingRepository interface {
	// Create returns ErrConflict when the (availabilityId, startTime, bookingDate) slot is taken.
	Create(ctx context.Context, booking *domain.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ListByAvailability(ctx context.Context, availabilityID, userID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id, userID string, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id, userID string) error
	DeleteByAvailability(ctx context.Context, availabilityID string) (int64, error)
	// DeleteOpenBefore removes OPEN bookings dated strictly before date.
	DeleteOpenBefore(ctx context.Context, date string) (int64, error)
}

// WorkoutPlanRepository defines the interface for interacting with workout plans.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (string, error)
	GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error)
	ListByUser(ctx context.Context, userID string) ([]domain.WorkoutPlan, error)
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	Delete(ctx context.Context, id, userID string) error
}
