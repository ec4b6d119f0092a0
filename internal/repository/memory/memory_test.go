package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/repository"
)

func TestBookingSlotIsUnique(t *testing.T) {
	repo := NewBookingRepository()
	ctx := context.Background()

	first := &domain.Booking{AvailabilityID: "a1", UserID: "u1", BookingDate: "2025-03-12", StartTime: "09:00"}
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingOpen, first.Status)

	_, err = repo.Create(ctx, &domain.Booking{AvailabilityID: "a1", UserID: "u1", BookingDate: "2025-03-12", StartTime: "09:00"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	require.NoError(t, repo.Delete(ctx, first.ID, "u1"))
	_, err = repo.Create(ctx, &domain.Booking{AvailabilityID: "a1", UserID: "u1", BookingDate: "2025-03-12", StartTime: "09:00"})
	assert.NoError(t, err, "slot is free again after delete")
}

func TestBookingOwnership(t *testing.T) {
	repo := NewBookingRepository()
	ctx := context.Background()
	b := &domain.Booking{AvailabilityID: "a1", UserID: "u1", BookingDate: "2025-03-12", StartTime: "09:00"}
	_, err := repo.Create(ctx, b)
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, b.ID, "intruder", domain.BookingBooked)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID, "intruder"), repository.ErrNotFound)

	updated, err := repo.UpdateStatus(ctx, b.ID, "u1", domain.BookingBooked)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingBooked, updated.Status)
}

func TestDeleteOpenBefore(t *testing.T) {
	repo := NewBookingRepository()
	ctx := context.Background()
	for _, b := range []domain.Booking{
		{AvailabilityID: "a1", UserID: "u1", BookingDate: "2025-01-01", StartTime: "09:00", Status: domain.BookingOpen},
		{AvailabilityID: "a2", UserID: "u1", BookingDate: "2025-01-01", StartTime: "09:00", Status: domain.BookingBooked},
		{AvailabilityID: "a3", UserID: "u1", BookingDate: "2025-03-01", StartTime: "09:00", Status: domain.BookingOpen},
	} {
		b := b
		_, err := repo.Create(ctx, &b)
		require.NoError(t, err)
	}

	n, err := repo.DeleteOpenBefore(ctx, "2025-02-01")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	left, _ := repo.ListByUser(ctx, "u1")
	require.Len(t, left, 2)
	assert.Equal(t, "a2", left[0].AvailabilityID)
	assert.Equal(t, "a3", left[1].AvailabilityID)
}

func TestAvailabilityRange(t *testing.T) {
	repo := NewAvailabilityRepository()
	ctx := context.Background()
	for _, d := range []string{"2025-03-20", "2025-02-27", "2025-03-01", "2025-04-01"} {
		_, err := repo.Create(ctx, &domain.Availability{UserID: "u1", Date: d, StartTime: "09:00", EndTime: "10:00"})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &domain.Availability{UserID: "u2", Date: "2025-03-05"})
	require.NoError(t, err)

	items, err := repo.ListByUser(ctx, "u1", "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2025-03-01", items[0].Date)
	assert.Equal(t, "2025-03-20", items[1].Date)

	all, _ := repo.ListByUser(ctx, "u1", "", "")
	assert.Len(t, all, 4)
}

func TestUserEmailConflict(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	_, err := repo.Create(ctx, &domain.User{Email: "demo@wellvantage.com"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.User{Email: "Demo@WellVantage.com"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}
