package api_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellvantage/fitness-app/internal/api"
	"wellvantage/fitness-app/internal/client"
	"wellvantage/fitness-app/internal/config"
	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/repository/memory"
	"wellvantage/fitness-app/internal/service"
	"wellvantage/fitness-app/internal/session"
	"wellvantage/fitness-app/internal/slots"
	"wellvantage/fitness-app/internal/store"
)

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := memory.NewUserRepository()
	avails := memory.NewAvailabilityRepository()
	bookings := memory.NewBookingRepository()
	logger := zerolog.Nop()

	router := gin.New()
	api.SetupRoutes(router, api.Services{
		Auth:         service.NewAuthService(users, nil, "e2e-secret", time.Hour, logger),
		Availability: service.NewAvailabilityService(avails, bookings, nil, logger),
		Booking:      service.NewBookingService(bookings, avails, logger),
		Workout:      service.NewWorkoutService(memory.NewWorkoutPlanRepository()),
		Profile:      service.NewProfileService(users, nil, logger),
	}, config.RateLimitConfig{}, logger)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientBooksSlotsAgainstServer(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()
	sess := session.NewMemoryStore()
	c := client.New(config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, sess, zerolog.Nop())

	_, err := c.Register(ctx, domain.Credentials{Name: "Trainer", Email: "trainer@example.com", Password: "password123"})
	require.NoError(t, err)
	token, err := sess.Token()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	avails := store.NewAvailabilityStore(c, zerolog.Nop())
	books := store.NewBookingStore(c, zerolog.Nop())
	t.Cleanup(avails.Close)
	t.Cleanup(books.Close)

	date := domain.FormatDate(time.Now().AddDate(0, 0, 7))
	window, err := avails.Create(ctx, domain.AvailabilityInput{
		Date: date, StartTime: "11:45", EndTime: "18:45", SessionName: "PT",
	})
	require.NoError(t, err)

	slot := domain.BookingInput{AvailabilityID: window.ID, BookingDate: date, StartTime: "11:45", EndTime: "18:45"}
	_, err = books.Create(ctx, slot)
	require.NoError(t, err)

	require.NoError(t, avails.Fetch(ctx))
	require.NoError(t, books.Fetch(ctx))
	board := slots.Match(date, avails.State().Items, books.State().Items)
	require.Len(t, board, 1)
	assert.True(t, board[0].Booked())
	assert.Equal(t, domain.BookingOpen, board[0].Status())
	assert.Equal(t, 1, books.OpenSessions())

	_, err = books.Create(ctx, slot)
	require.Error(t, err)
	assert.Equal(t, "This slot is already booked", err.Error())
	assert.Equal(t, "This slot is already booked", books.State().Error)
	assert.Len(t, books.State().Items, 1, "failed create leaves the list untouched")

	toggled, err := books.Toggle(ctx, board[0].Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingBooked, toggled.Status)
	assert.Equal(t, 0, books.OpenSessions())
}

func TestUnauthorizedResponseClearsSession(t *testing.T) {
	srv := startServer(t)
	ctx := context.Background()
	sess := session.NewMemoryStore()
	require.NoError(t, sess.SaveToken("expired-token"))
	require.NoError(t, sess.SaveUser(domain.User{ID: "u1", Email: "gone@example.com"}))

	c := client.New(config.APIConfig{BaseURL: srv.URL}, sess, zerolog.Nop())
	_, err := c.Profile(ctx)
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))

	token, err := sess.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
	user, err := sess.User()
	require.NoError(t, err)
	assert.Nil(t, user)
}
