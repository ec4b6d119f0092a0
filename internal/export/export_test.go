package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"wellvantage/fitness-app/internal/domain"
)

func TestScheduleListsEverySlotWithStatus(t *testing.T) {
	avails := []domain.Availability{
		{ID: "a3", Date: "2025-03-20", StartTime: "07:00", EndTime: "08:00", SessionName: "PT"},
		{ID: "a2", Date: "2025-03-12", StartTime: "11:00", EndTime: "12:00", SessionName: "Yoga"},
		{ID: "a1", Date: "2025-03-12", StartTime: "09:00", EndTime: "10:00", SessionName: "PT"},
		{ID: "a0", Date: "2025-02-28", StartTime: "09:00", EndTime: "10:00", SessionName: "Old"},
	}
	bookings := []domain.Booking{
		{ID: "b1", AvailabilityID: "a1", BookingDate: "2025-03-12", StartTime: "09:00", Status: domain.BookingOpen},
		{ID: "b2", AvailabilityID: "a2", BookingDate: "2025-03-12", StartTime: "11:00", Status: domain.BookingBooked},
		{ID: "b3", AvailabilityID: "a3", BookingDate: "2025-03-21", StartTime: "07:00", Status: domain.BookingBooked},
	}

	var buf bytes.Buffer
	require.NoError(t, Schedule(&buf, Range{Start: "2025-03-01", End: "2025-03-31"}, avails, bookings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Schedule: 2025-03-01 - 2025-03-31", rows[0][0])
	assert.Equal(t, headers, rows[1])
	assert.Equal(t, []string{"2025-03-12", "09:00", "10:00", "PT", "open", "b1"}, rows[2])
	assert.Equal(t, []string{"2025-03-12", "11:00", "12:00", "Yoga", "booked", "b2"}, rows[3])
	assert.Equal(t, []string{"2025-03-20", "07:00", "08:00", "PT", StatusFree}, rows[4], "booking on another date does not match")
}

func TestScheduleFileName(t *testing.T) {
	dir := t.TempDir()

	path, err := ScheduleFile(dir, Range{Start: "2025-03-01"}, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, path, "schedule_2025-03-01_to_all.xlsx")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetName}, f.GetSheetList())
}
