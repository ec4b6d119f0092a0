// Package slots joins availability windows with bookings to produce the
// per-date board shown on the booking screen.
package slots

import (
	"time"

	"wellvantage/fitness-app/internal/domain"
)

// Action is something the user may do with a slot.
type Action string

const (
	ActionBook   Action = "book"
	ActionToggle Action = "toggle"
	ActionCancel Action = "cancel"
)

// Slot is one availability window of the selected date and the booking matched to it, if any.
type Slot struct {
	Availability domain.Availability
	Booking      *domain.Booking
}

// Booked reports whether a booking was matched to the slot.
func (s Slot) Booked() bool {
	return s.Booking != nil
}

// Status returns the matched booking's status, or "" for an unbooked slot.
func (s Slot) Status() domain.BookingStatus {
	if s.Booking == nil {
		return ""
	}
	return s.Booking.Status
}

// Actions lists what the user may do: book an unbooked slot, or toggle and
// cancel the booking of a booked one.
func (s Slot) Actions() []Action {
	if s.Booking == nil {
		return []Action{ActionBook}
	}
	return []Action{ActionToggle, ActionCancel}
}

// Match returns the availability windows whose date equals date, in input order,
// each annotated with its booking. A booking matches when its availabilityId,
// startTime and bookingDate equal the window's id, startTime and date; the first
// match in bookings order wins when there are duplicates.
func Match(date string, availabilities []domain.Availability, bookings []domain.Booking) []Slot {
	var out []Slot
	for _, a := range availabilities {
		if a.Date != date {
			continue
		}
		out = append(out, Slot{
			Availability: a,
			Booking:      FindBooking(bookings, a.ID, a.StartTime, date),
		})
	}
	return out
}

// FindBooking returns a copy of the first booking occupying the given slot, or nil.
func FindBooking(bookings []domain.Booking, availabilityID, startTime, date string) *domain.Booking {
	for i := range bookings {
		b := bookings[i]
		if b.AvailabilityID == availabilityID && b.StartTime == startTime && b.BookingDate == date {
			return &b
		}
	}
	return nil
}

// HasAvailability reports whether any window falls on date. Only such dates are selectable.
func HasAvailability(availabilities []domain.Availability, date string) bool {
	for _, a := range availabilities {
		if a.Date == date {
			return true
		}
	}
	return false
}

// MonthDays returns the days of month that carry at least one availability window.
func MonthDays(availabilities []domain.Availability, year int, month time.Month) map[int]bool {
	days := make(map[int]bool)
	for _, a := range availabilities {
		d, err := domain.ParseDate(a.Date, time.UTC)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			days[d.Day()] = true
		}
	}
	return days
}

// OpenSessions counts bookings still in the open state.
func OpenSessions(bookings []domain.Booking) int {
	n := 0
	for _, b := range bookings {
		if b.Status == domain.BookingOpen {
			n++
		}
	}
	return n
}
