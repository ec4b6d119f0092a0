package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/api"
	"wellvantage/fitness-app/internal/cache"
	"wellvantage/fitness-app/internal/config"
	"wellvantage/fitness-app/internal/logging"
	"wellvantage/fitness-app/internal/metrics"
	"wellvantage/fitness-app/internal/repository"
	"wellvantage/fitness-app/internal/repository/memory"
	"wellvantage/fitness-app/internal/repository/mongo"
	"wellvantage/fitness-app/internal/service"
	"wellvantage/fitness-app/internal/storage"
)

type repositories struct {
	users        repository.UserRepository
	availability repository.AvailabilityRepository
	bookings     repository.BookingRepository
	workouts     repository.WorkoutPlanRepository
	close        func()
}

// @title WellVantage API
// @version 1.0
// @description Availability, booking and workout plan API for the WellVantage app.
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		bootLogger := logging.New(config.LogConfig{}, "server", os.Stderr)
		bootLogger.Fatal().Err(err).Msg("could not load config")
	}
	logger := logging.New(cfg.Log, "server", os.Stdout)
	logger.Info().Str("address", cfg.Server.Address).Str("driver", cfg.Database.Driver).Msg("starting WellVantage server")

	metrics.Register()

	// --- Repositories ---
	repos, err := openRepositories(cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not open database")
	}
	defer repos.close()

	// --- Optional Redis cache ---
	var availabilityCache service.AvailabilityCache
	if cfg.Redis.Address != "" {
		redisClient := cache.NewRedisClient(cfg.Redis)
		defer redisClient.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn().Err(err).Str("address", cfg.Redis.Address).Msg("redis unreachable, availability cache disabled")
		} else {
			availabilityCache = cache.NewAvailabilityCache(redisClient, cfg.Redis.CacheTTL)
			logger.Info().Str("address", cfg.Redis.Address).Msg("availability cache enabled")
		}
		cancel()
	}

	// --- Optional S3 storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize S3 storage")
		}
	} else {
		logger.Info().Msg("s3.bucket_name not set, profile picture uploads disabled")
	}

	// --- Services ---
	var verifier service.IdentityVerifier
	if cfg.Google.ClientID != "" {
		verifier = service.NewGoogleVerifier(cfg.Google.ClientID)
	} else {
		logger.Info().Msg("google.client_id not set, Google sign-in disabled")
	}
	authService := service.NewAuthService(repos.users, verifier, cfg.JWT.Secret, cfg.JWT.Expiration, logger)
	availabilityService := service.NewAvailabilityService(repos.availability, repos.bookings, availabilityCache, logger)
	bookingService := service.NewBookingService(repos.bookings, repos.availability, logger)
	workoutService := service.NewWorkoutService(repos.workouts)
	profileService := service.NewProfileService(repos.users, fileStorage, logger)

	// --- Housekeeping ---
	housekeeper := service.NewHousekeeper(bookingService, cfg.Housekeeping.RetentionDays, logger)
	if cfg.Housekeeping.Schedule != "" {
		if err := housekeeper.Start(cfg.Housekeeping.Schedule); err != nil {
			logger.Fatal().Err(err).Str("schedule", cfg.Housekeeping.Schedule).Msg("invalid housekeeping schedule")
		}
		defer housekeeper.Stop()
	}

	// --- Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	if len(cfg.Server.CORSOrigins) > 0 {
		router.Use(api.CORSMiddleware(cfg.Server.CORSOrigins))
	}
	api.SetupRoutes(router, api.Services{
		Auth:         authService,
		Availability: availabilityService,
		Booking:      bookingService,
		Workout:      workoutService,
		Profile:      profileService,
	}, cfg.RateLimit, logger.With().Str("component", "http").Logger())

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
	logger.Info().Msg("server exiting")
}

func openRepositories(cfg config.DatabaseConfig, logger zerolog.Logger) (repositories, error) {
	if cfg.Driver == "memory" {
		logger.Warn().Msg("using in-memory store, data is lost on exit")
		return repositories{
			users:        memory.NewUserRepository(),
			availability: memory.NewAvailabilityRepository(),
			bookings:     memory.NewBookingRepository(),
			workouts:     memory.NewWorkoutPlanRepository(),
			close:        func() {},
		}, nil
	}

	db, err := mongo.Open(context.Background(), cfg, logger)
	if err != nil {
		return repositories{}, err
	}

	return repositories{
		users:        mongo.NewMongoUserRepository(db.Database),
		availability: mongo.NewMongoAvailabilityRepository(db.Database),
		bookings:     mongo.NewMongoBookingRepository(db.Database),
		workouts:     mongo.NewMongoWorkoutPlanRepository(db.Database),
		close:        db.Close,
	}, nil
}
