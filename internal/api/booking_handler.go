package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/service"
)

type BookingHandler struct {
	bookingService service.BookingService
	logger         zerolog.Logger
}

func NewBookingHandler(bookingService service.BookingService, logger zerolog.Logger) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, logger: logger}
}

// ListBookings godoc
// @Summary List the user's bookings
// @Tags Booking
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Booking
// @Router /booking [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	items, err := h.bookingService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, nonNilBookings(items))
}

// ListBookingsByAvailability godoc
// @Summary List bookings made against one availability window
// @Tags Booking
// @Produce json
// @Security BearerAuth
// @Param id path string true "Availability ID"
// @Success 200 {array} domain.Booking
// @Router /booking/availability/{id} [get]
func (h *BookingHandler) ListBookingsByAvailability(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	items, err := h.bookingService.ListByAvailability(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, nonNilBookings(items))
}

// CreateBooking godoc
// @Summary Book a slot
// @Tags Booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.BookingInput true "Slot"
// @Success 201 {object} domain.Booking
// @Failure 400 {object} gin.H "Outside the availability window"
// @Failure 409 {object} gin.H "Slot already booked"
// @Router /booking [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req domain.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	b, err := h.bookingService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create booking")
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateBookingStatus godoc
// @Summary Set a booking's status to open or booked
// @Tags Booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param body body domain.StatusUpdate true "New status"
// @Success 200 {object} domain.Booking
// @Failure 404 {object} gin.H "Booking not found"
// @Router /booking/{id}/status [patch]
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req domain.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	b, err := h.bookingService.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update booking status")
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBooking godoc
// @Summary Cancel a booking
// @Tags Booking
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 404 {object} gin.H "Booking not found"
// @Router /booking/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.bookingService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete booking")
		return
	}
	c.Status(http.StatusNoContent)
}

func nonNilBookings(items []domain.Booking) []domain.Booking {
	if items == nil {
		return []domain.Booking{}
	}
	return items
}
