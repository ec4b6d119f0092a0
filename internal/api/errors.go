package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/service"
)

// statusFor maps a service error to the HTTP status it is reported with.
func statusFor(err error) int {
	var input service.InputError
	switch {
	case errors.As(err, &input),
		errors.Is(err, service.ErrBookingOutsideWindow):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuthenticationFailed),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidIdentityToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrAvailabilityNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrBookingConflict),
		errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrGoogleDisabled),
		errors.Is(err, service.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError aborts with the status and message for err. Unexpected errors
// are logged and replaced by fallback so internals never reach the client.
func respondError(c *gin.Context, logger zerolog.Logger, err error, fallback string) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error().Err(err).Str("route", c.FullPath()).Msg(fallback)
		abortWithError(c, code, fallback)
		return
	}
	abortWithError(c, code, err.Error())
}
