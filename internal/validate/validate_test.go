package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellvantage/fitness-app/internal/domain"
)

var today = time.Date(2025, 2, 6, 15, 30, 0, 0, time.UTC)

func form(start, end string) domain.AvailabilityInput {
	return domain.AvailabilityInput{
		Date:        "2025-02-06",
		StartTime:   start,
		EndTime:     end,
		SessionName: "PT",
	}
}

func TestAvailabilityTimeRange(t *testing.T) {
	errs := Availability(form("10:00", "09:00"), Options{Today: today})
	assert.Equal(t, MsgEndBeforeStart, errs["endTime"])

	errs = Availability(form("09:00", "10:00"), Options{Today: today})
	assert.Empty(t, errs)
	assert.NoError(t, errs.Err())
}

func TestAvailabilityEqualTimesRejected(t *testing.T) {
	errs := Availability(form("09:00", "09:00"), Options{Today: today})
	assert.Equal(t, MsgEndBeforeStart, errs["endTime"])
}

func TestAvailabilityRequiredFields(t *testing.T) {
	errs := Availability(domain.AvailabilityInput{Date: "2025-02-06"}, Options{Today: today})
	assert.Equal(t, FieldErrors{
		"sessionName": MsgSessionNameRequired,
		"startTime":   MsgStartTimeRequired,
		"endTime":     MsgEndTimeRequired,
	}, errs)

	var fe FieldErrors
	require.True(t, errors.As(errs.Err(), &fe))
	assert.Equal(t, "End time is required; Session name is required; Start time is required", fe.Error())
}

func TestAvailabilityBlankSessionName(t *testing.T) {
	in := form("09:00", "10:00")
	in.SessionName = "   "
	errs := Availability(in, Options{Today: today})
	assert.Equal(t, MsgSessionNameRequired, errs["sessionName"])
}

func TestAvailabilityMalformedTime(t *testing.T) {
	errs := Availability(form("9 o'clock", "10:00"), Options{Today: today})
	assert.Contains(t, errs["startTime"], "expected HH:MM")

	errs = Availability(form("09:00", "9:30"), Options{Today: today})
	assert.Contains(t, errs["endTime"], "expected HH:MM")

	errs = Availability(form("9:00", "17:00"), Options{Today: today})
	assert.Contains(t, errs["startTime"], "expected HH:MM")
}

func TestAvailabilityPastDates(t *testing.T) {
	in := form("09:00", "10:00")
	in.Date = "2025-02-05"

	assert.Empty(t, Availability(in, Options{Today: today}), "rule is off by default")

	errs := Availability(in, Options{Today: today, RejectPastDates: true})
	assert.Equal(t, MsgDateInPast, errs["date"])

	// Today itself is allowed even though the clock has moved past the slot.
	in.Date = "2025-02-06"
	in.StartTime, in.EndTime = "07:00", "08:00"
	assert.Empty(t, Availability(in, Options{Today: today, RejectPastDates: true}))
}

func TestAvailabilityPatch(t *testing.T) {
	str := func(s string) *string { return &s }

	assert.Empty(t, AvailabilityPatch(domain.AvailabilityPatch{SessionName: str("Boxing")}, Options{Today: today}))
	assert.Empty(t, AvailabilityPatch(domain.AvailabilityPatch{EndTime: str("07:00")}, Options{Today: today}),
		"a lone end time has nothing to be compared with")

	errs := AvailabilityPatch(domain.AvailabilityPatch{
		SessionName: str(""),
		StartTime:   str("10:00"),
		EndTime:     str("09:00"),
		Date:        str("2025-02-05"),
	}, Options{RejectPastDates: true, Today: today})
	assert.Equal(t, FieldErrors{
		"sessionName": MsgSessionNameRequired,
		"endTime":     MsgEndBeforeStart,
		"date":        MsgDateInPast,
	}, errs)

	errs = AvailabilityPatch(domain.AvailabilityPatch{StartTime: str("")}, Options{Today: today})
	assert.Equal(t, MsgStartTimeRequired, errs["startTime"])
}

func TestWorkoutPlan(t *testing.T) {
	errs := WorkoutPlan(domain.WorkoutPlanInput{})
	assert.Equal(t, MsgTitleRequired, errs["title"])
	assert.Equal(t, MsgNoDays, errs["days"])

	errs = WorkoutPlan(domain.WorkoutPlanInput{
		Title: "Beginner's Full Body",
		Days:  []domain.WorkoutDay{{DayNumber: 1, Name: "Full Body"}, {DayNumber: 2}},
	})
	assert.Equal(t, FieldErrors{"days": MsgUnnamedDay}, errs)

	errs = WorkoutPlan(domain.WorkoutPlanInput{
		Title: "Beginner's Full Body",
		Days:  []domain.WorkoutDay{{DayNumber: 1, Name: "Full Body"}},
	})
	assert.NoError(t, errs.Err())
}
