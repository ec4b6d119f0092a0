package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/config"
	"wellvantage/fitness-app/internal/service"
)

// Services are the dependencies of the HTTP layer.
type Services struct {
	Auth         service.AuthService
	Availability service.AvailabilityService
	Booking      service.BookingService
	Workout      service.WorkoutService
	Profile      service.ProfileService
}

func SetupRoutes(
	router *gin.Engine,
	services Services,
	rateLimit config.RateLimitConfig,
	logger zerolog.Logger,
) {
	authHandler := NewAuthHandler(services.Auth, logger)
	availabilityHandler := NewAvailabilityHandler(services.Availability, logger)
	bookingHandler := NewBookingHandler(services.Booking, logger)
	workoutHandler := NewWorkoutHandler(services.Workout, logger)
	profileHandler := NewProfileHandler(services.Profile, logger)

	authMiddleware := AuthMiddleware(services.Auth)

	router.Use(RequestLogger(logger))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := router.Group("/auth")
	authGroup.Use(RateLimitMiddleware(rateLimit.RPS, rateLimit.Burst, logger))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/google/verify", authHandler.VerifyGoogle)
	}

	protected := router.Group("")
	protected.Use(authMiddleware)
	{
		usersGroup := protected.Group("/users")
		{
			usersGroup.GET("/profile", profileHandler.GetProfile)
			usersGroup.POST("/profile/picture", profileHandler.RequestPictureUpload)
		}

		availabilityGroup := protected.Group("/availability")
		{
			availabilityGroup.GET("", availabilityHandler.ListAvailability)
			availabilityGroup.POST("", availabilityHandler.CreateAvailability)
			availabilityGroup.PATCH("/:id", availabilityHandler.UpdateAvailability)
			availabilityGroup.DELETE("/:id", availabilityHandler.DeleteAvailability)
		}

		bookingGroup := protected.Group("/booking")
		{
			bookingGroup.GET("", bookingHandler.ListBookings)
			bookingGroup.GET("/availability/:id", bookingHandler.ListBookingsByAvailability)
			bookingGroup.POST("", bookingHandler.CreateBooking)
			bookingGroup.PATCH("/:id/status", bookingHandler.UpdateBookingStatus)
			bookingGroup.DELETE("/:id", bookingHandler.DeleteBooking)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.PATCH("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
		}
	}
}
