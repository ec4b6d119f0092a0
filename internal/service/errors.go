package service

import "errors"

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrInvalidIdentityToken = errors.New("invalid Google identity token")
	ErrGoogleDisabled       = errors.New("Google sign-in is not configured")
	ErrUserNotFound         = errors.New("user not found")

	ErrAvailabilityNotFound = errors.New("Availability not found")
	ErrBookingNotFound      = errors.New("Booking not found")
	ErrBookingConflict      = errors.New("This slot is already booked")
	ErrBookingOutsideWindow = errors.New("Booking must fall within the availability window")
	ErrWorkoutNotFound      = errors.New("Workout not found")

	ErrStorageDisabled = errors.New("profile picture uploads are not configured")
)

// InputError is a client mistake in a request body or query. Its text is
// safe to show to the user.
type InputError string

func (e InputError) Error() string {
	return string(e)
}
