// Package validate holds the form rules applied before anything is submitted
// to the backend.
package validate

import (
	"sort"
	"strings"
	"time"

	"wellvantage/fitness-app/internal/domain"
)

// Field error messages shown next to form inputs.
const (
	MsgSessionNameRequired = "Session name is required"
	MsgStartTimeRequired   = "Start time is required"
	MsgEndTimeRequired     = "End time is required"
	MsgEndBeforeStart      = "End time must be after start time"
	MsgDateRequired        = "Date is required"
	MsgDateInPast          = "Date cannot be in the past"

	MsgTitleRequired = "Please enter a workout title"
	MsgNoDays        = "You must have at least one day"
	MsgUnnamedDay    = "Please name all days"
)

// FieldErrors maps a form field to its message. A nil or empty value means the form is valid.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = e[f]
	}
	return strings.Join(msgs, "; ")
}

// Err returns e as an error, or nil when there is nothing to report.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Options tune the availability rules.
type Options struct {
	// RejectPastDates turns on the calendar-day check against Today.
	RejectPastDates bool
	Today           time.Time
}

// Availability checks an availability form. Start and end are compared as
// times of day; the date rule compares calendar days and ignores the clock.
func Availability(in domain.AvailabilityInput, opts Options) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(in.SessionName) == "" {
		errs["sessionName"] = MsgSessionNameRequired
	}
	if in.StartTime == "" {
		errs["startTime"] = MsgStartTimeRequired
	}
	if in.EndTime == "" {
		errs["endTime"] = MsgEndTimeRequired
	}

	if in.StartTime != "" && in.EndTime != "" {
		start, startErr := domain.ParseClock(in.StartTime)
		end, endErr := domain.ParseClock(in.EndTime)
		switch {
		case startErr != nil:
			errs["startTime"] = startErr.Error()
		case endErr != nil:
			errs["endTime"] = endErr.Error()
		case !start.Before(end):
			errs["endTime"] = MsgEndBeforeStart
		}
	}

	if in.Date == "" {
		errs["date"] = MsgDateRequired
	} else {
		loc := opts.Today.Location()
		day, err := domain.ParseDate(in.Date, loc)
		if err != nil {
			errs["date"] = err.Error()
		} else if opts.RejectPastDates && !domain.SameDayOrAfter(day, opts.Today) {
			errs["date"] = MsgDateInPast
		}
	}

	return errs
}

// AvailabilityPatch checks the fields a patch sets, for when the window it
// applies to is not at hand. Fields left nil are not checked.
func AvailabilityPatch(p domain.AvailabilityPatch, opts Options) FieldErrors {
	errs := FieldErrors{}

	if p.SessionName != nil && strings.TrimSpace(*p.SessionName) == "" {
		errs["sessionName"] = MsgSessionNameRequired
	}

	var start, end time.Time
	var haveStart, haveEnd bool
	if p.StartTime != nil {
		t, err := domain.ParseClock(*p.StartTime)
		switch {
		case *p.StartTime == "":
			errs["startTime"] = MsgStartTimeRequired
		case err != nil:
			errs["startTime"] = err.Error()
		default:
			start, haveStart = t, true
		}
	}
	if p.EndTime != nil {
		t, err := domain.ParseClock(*p.EndTime)
		switch {
		case *p.EndTime == "":
			errs["endTime"] = MsgEndTimeRequired
		case err != nil:
			errs["endTime"] = err.Error()
		default:
			end, haveEnd = t, true
		}
	}
	if haveStart && haveEnd && !start.Before(end) {
		errs["endTime"] = MsgEndBeforeStart
	}

	if p.Date != nil {
		day, err := domain.ParseDate(*p.Date, opts.Today.Location())
		switch {
		case *p.Date == "":
			errs["date"] = MsgDateRequired
		case err != nil:
			errs["date"] = err.Error()
		case opts.RejectPastDates && !domain.SameDayOrAfter(day, opts.Today):
			errs["date"] = MsgDateInPast
		}
	}

	return errs
}

// WorkoutPlan checks a workout plan form.
func WorkoutPlan(in domain.WorkoutPlanInput) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.Title) == "" {
		errs["title"] = MsgTitleRequired
	}
	if len(in.Days) == 0 {
		errs["days"] = MsgNoDays
	} else {
		for _, d := range in.Days {
			if strings.TrimSpace(d.Name) == "" {
				errs["days"] = MsgUnnamedDay
				break
			}
		}
	}
	return errs
}
