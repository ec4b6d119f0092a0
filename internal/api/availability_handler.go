package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/service"
)

type AvailabilityHandler struct {
	availabilityService service.AvailabilityService
	logger              zerolog.Logger
}

func NewAvailabilityHandler(availabilityService service.AvailabilityService, logger zerolog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService, logger: logger}
}

// ListAvailability godoc
// @Summary List the trainer's availability windows
// @Description Optionally restricted to startDate <= date <= endDate.
// @Tags Availability
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {array} domain.Availability
// @Router /availability [get]
func (h *AvailabilityHandler) ListAvailability(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	items, err := h.availabilityService.List(c.Request.Context(), userID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch availabilities")
		return
	}
	if items == nil {
		items = []domain.Availability{} // Return empty JSON array, not null
	}
	c.JSON(http.StatusOK, items)
}

// CreateAvailability godoc
// @Summary Add an availability window
// @Tags Availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.AvailabilityInput true "Window"
// @Success 201 {object} domain.Availability
// @Failure 400 {object} gin.H "Validation error"
// @Router /availability [post]
func (h *AvailabilityHandler) CreateAvailability(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req domain.AvailabilityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	a, err := h.availabilityService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create availability")
		return
	}
	c.JSON(http.StatusCreated, a)
}

// UpdateAvailability godoc
// @Summary Change fields of an availability window
// @Tags Availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Availability ID"
// @Param body body domain.AvailabilityPatch true "Fields to change"
// @Success 200 {object} domain.Availability
// @Failure 404 {object} gin.H "Availability not found"
// @Router /availability/{id} [patch]
func (h *AvailabilityHandler) UpdateAvailability(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req domain.AvailabilityPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	a, err := h.availabilityService.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update availability")
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteAvailability godoc
// @Summary Remove an availability window and its bookings
// @Tags Availability
// @Security BearerAuth
// @Param id path string true "Availability ID"
// @Success 204
// @Failure 404 {object} gin.H "Availability not found"
// @Router /availability/{id} [delete]
func (h *AvailabilityHandler) DeleteAvailability(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.availabilityService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete availability")
		return
	}
	c.Status(http.StatusNoContent)
}
