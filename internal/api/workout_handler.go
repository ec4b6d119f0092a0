package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/service"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
	logger         zerolog.Logger
}

func NewWorkoutHandler(workoutService service.WorkoutService, logger zerolog.Logger) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, logger: logger}
}

// ListWorkouts godoc
// @Summary List the user's workout plans
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.WorkoutPlan
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plans, err := h.workoutService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch workouts")
		return
	}
	if plans == nil {
		plans = []domain.WorkoutPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// CreateWorkout godoc
// @Summary Create a workout plan
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.WorkoutPlanInput true "Plan"
// @Success 201 {object} domain.WorkoutPlan
// @Failure 400 {object} gin.H "Validation error"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req domain.WorkoutPlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan, err := h.workoutService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to save workout")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// UpdateWorkout godoc
// @Summary Replace a workout plan's title, days and notes
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout plan ID"
// @Param body body domain.WorkoutPlanInput true "Plan"
// @Success 200 {object} domain.WorkoutPlan
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id} [patch]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req domain.WorkoutPlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan, err := h.workoutService.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to save workout")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeleteWorkout godoc
// @Summary Delete a workout plan
// @Tags Workouts
// @Security BearerAuth
// @Param id path string true "Workout plan ID"
// @Success 204
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete workout")
		return
	}
	c.Status(http.StatusNoContent)
}
